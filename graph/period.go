package graph

import (
	"encoding/binary"
	"fmt"
)

// OperatingPeriod is a calendar window plus a per-day validity bitmap: a
// journey only runs on dates its operating period marks valid.
type OperatingPeriod struct {
	raw []byte // start_date(4) | end_date(4) | valid_days_len(4) | valid_days
}

// StartDate is the first date the period could possibly be valid on.
func (p OperatingPeriod) StartDate() (Date, error) {
	d, err := DecodeDate(binary.LittleEndian.Uint32(p.raw[0:4]))
	if err != nil {
		return Date{}, fmt.Errorf("operating period start: %w", err)
	}
	return d, nil
}

// EndDate is the last date the period could possibly be valid on.
func (p OperatingPeriod) EndDate() (Date, error) {
	d, err := DecodeDate(binary.LittleEndian.Uint32(p.raw[4:8]))
	if err != nil {
		return Date{}, fmt.Errorf("operating period end: %w", err)
	}
	return d, nil
}

// ValidDays is the raw per-day bitmap: bit (k mod 8) of byte (k / 8) tells
// whether the period is valid k days after StartDate. Bits beyond
// EndDate-StartDate carry no meaning.
func (p OperatingPeriod) ValidDays() []byte {
	n := binary.LittleEndian.Uint32(p.raw[8:12])
	return p.raw[12 : 12+n]
}

// PeriodIter walks an edge's operating-period table.
type PeriodIter struct {
	data []byte
	pos  int
}

// Next advances the iterator, returning false once exhausted.
func (it *PeriodIter) Next() (OperatingPeriod, bool) {
	if it.pos+12 > len(it.data) {
		return OperatingPeriod{}, false
	}
	start := it.pos
	n := int(binary.LittleEndian.Uint32(it.data[start+8 : start+12]))
	end := start + 12 + n
	if end > len(it.data) {
		return OperatingPeriod{}, false
	}
	it.pos = end
	return OperatingPeriod{raw: it.data[start:end]}, true
}
