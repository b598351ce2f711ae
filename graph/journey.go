package graph

import "encoding/binary"

// journeyRecordSize is the width, in bytes, of one tiled journey record:
// arrival_minute(2) | departure_minute(2) | operating_period_index(2).
const journeyRecordSize = 6

// Journey is a single scheduled departure/arrival pair on an edge, valid
// only on the dates its OperatingPeriod marks.
type Journey struct {
	raw []byte
}

// ArrivalMinute is the minute-of-day the ride lands at the edge's destination.
func (j Journey) ArrivalMinute() uint16 { return binary.LittleEndian.Uint16(j.raw[0:2]) }

// DepartureMinute is the minute-of-day the ride leaves the edge's source.
func (j Journey) DepartureMinute() uint16 { return binary.LittleEndian.Uint16(j.raw[2:4]) }

// OperatingPeriodIndex indexes into the owning edge's own operating-period
// list, not a graph-wide table.
func (j Journey) OperatingPeriodIndex() uint16 { return binary.LittleEndian.Uint16(j.raw[4:6]) }

// JourneyIter walks an edge's journey table. It is cheap to construct and
// safe to restart: call the edge's Journeys method again for a fresh pass.
type JourneyIter struct {
	data []byte
	pos  int
}

// Next advances the iterator, returning false once exhausted.
func (it *JourneyIter) Next() (Journey, bool) {
	if it.pos+journeyRecordSize > len(it.data) {
		return Journey{}, false
	}
	j := Journey{raw: it.data[it.pos : it.pos+journeyRecordSize]}
	it.pos += journeyRecordSize
	return j, true
}

// Count returns the total number of journeys the iterator will yield.
func (it *JourneyIter) Count() int { return len(it.data) / journeyRecordSize }
