package isochrone

import (
	"fmt"
	"time"

	"github.com/fastreach/fastreach-go/graph"
)

const minutesPerDay = 24 * 60

// ValidOn reports whether an operating period is valid on date d. Bits
// beyond the period's own date range carry no meaning (the file format
// never asks about them), but an index that lands inside [start, end] yet
// outside the stored bitmap means the graph's byte content disagrees with
// its own date range — a computation failure, not a silent "not valid".
func ValidOn(p graph.OperatingPeriod, d graph.Date) (bool, error) {
	start, err := p.StartDate()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrComputationFailure, err)
	}
	end, err := p.EndDate()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrComputationFailure, err)
	}
	if d.Before(start) || d.After(end) {
		return false, nil
	}
	days := d.DaysSince(start)
	validDays := p.ValidDays()
	byteIdx, bit := days/8, uint(days%8)
	if byteIdx >= len(validDays) {
		return false, fmt.Errorf("%w: operating period valid_days too short for day offset %d", ErrComputationFailure, days)
	}
	return (validDays[byteIdx]>>bit)&1 == 1, nil
}

// nextJourney scans every journey on e and returns the one with the
// smallest departure minute that still qualifies: its departure must be at
// or after now's minute-of-day, and its operating period must be valid on
// now's date. Journeys are never considered across a day boundary — a
// journey whose departure has already passed today is not retried tomorrow
// within the same traversal step.
func nextJourney(e graph.Edge, now time.Time) (j graph.Journey, ok bool, err error) {
	minuteOfDay := uint16(now.Hour()*60 + now.Minute())
	date := graph.DateFromTime(now)

	it := e.Journeys()
	for {
		candidate, more := it.Next()
		if !more {
			break
		}
		if candidate.DepartureMinute() < minuteOfDay {
			continue
		}
		period, perr := e.Period(candidate.OperatingPeriodIndex())
		if perr != nil {
			return graph.Journey{}, false, fmt.Errorf("%w: %v", ErrComputationFailure, perr)
		}
		valid, verr := ValidOn(period, date)
		if verr != nil {
			return graph.Journey{}, false, verr
		}
		if !valid {
			continue
		}
		if !ok || candidate.DepartureMinute() < j.DepartureMinute() {
			j, ok = candidate, true
		}
	}
	return j, ok, nil
}

// rideDuration returns the elapsed time from now until the chosen journey's
// arrival. A journey whose arrival minute is numerically before now's
// minute-of-day is taken to wrap past midnight into the following day.
//
// Midnight-wrap convention: elapsed = (minutesPerDay - minuteOfDay(now)) +
// arrivalMinute. This is the "clean +1 day" reading of the wrap rather than
// the source's one-second-short convention; both are valid readings of the
// same wire format, and this one is pinned and tested (see
// TestRideDurationWrapsPastMidnight in schedule_test.go and the package's
// open-question note in DESIGN.md).
func rideDuration(now time.Time, arrivalMinute uint16) time.Duration {
	minuteOfDay := now.Hour()*60 + now.Minute()
	if int(arrivalMinute) >= minuteOfDay {
		return time.Duration(int(arrivalMinute)-minuteOfDay) * time.Minute
	}
	return time.Duration(minutesPerDay-minuteOfDay+int(arrivalMinute)) * time.Minute
}
