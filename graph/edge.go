package graph

import (
	"encoding/binary"
	"fmt"
)

// noWalk marks a walk_seconds field as "no direct walking connection",
// per the file format.
const noWalk = 0xFFFF

// Edge is a directed connection from one node to another, reachable either
// by a fixed walking time, a timetable of scheduled journeys, or both.
type Edge struct {
	raw []byte
}

// SourceIndex is the node-table index of the edge's origin.
func (e Edge) SourceIndex() uint32 { return binary.LittleEndian.Uint32(e.raw[0:4]) }

// DestinationIndex is the node-table index of the edge's destination.
func (e Edge) DestinationIndex() uint32 { return binary.LittleEndian.Uint32(e.raw[4:8]) }

// WalkSeconds returns the fixed walking time for this edge, if any.
func (e Edge) WalkSeconds() (seconds uint16, ok bool) {
	s := binary.LittleEndian.Uint16(e.raw[8:10])
	if s == noWalk {
		return 0, false
	}
	return s, true
}

func (e Edge) journeysBytes() []byte {
	n := binary.LittleEndian.Uint32(e.raw[10:14])
	return e.raw[14 : 14+n]
}

func (e Edge) periodsBytes() []byte {
	jLen := binary.LittleEndian.Uint32(e.raw[10:14])
	periodsOffset := 14 + int(jLen)
	n := binary.LittleEndian.Uint32(e.raw[periodsOffset : periodsOffset+4])
	return e.raw[periodsOffset+4 : periodsOffset+4+int(n)]
}

// Journeys returns a fresh, restartable iterator over the edge's timetable.
func (e Edge) Journeys() *JourneyIter {
	return &JourneyIter{data: e.journeysBytes()}
}

// OperatingPeriods returns a fresh, restartable iterator over the edge's
// operating periods, in the order a Journey's OperatingPeriodIndex refers to.
func (e Edge) OperatingPeriods() *PeriodIter {
	return &PeriodIter{data: e.periodsBytes()}
}

// Period looks up the idx-th operating period belonging to this edge. It
// requires a linear scan because periods are variable-length.
func (e Edge) Period(idx uint16) (OperatingPeriod, error) {
	it := e.OperatingPeriods()
	var k uint16
	for {
		p, ok := it.Next()
		if !ok {
			return OperatingPeriod{}, fmt.Errorf("operating period index %d out of range", idx)
		}
		if k == idx {
			return p, nil
		}
		k++
	}
}

// hasUsableConnection reports whether the edge carries a walking time, at
// least one journey, or both. An edge with neither can never be traversed
// and signals a malformed graph file (invariant 4).
func (e Edge) hasUsableConnection() bool {
	if _, ok := e.WalkSeconds(); ok {
		return true
	}
	return e.Journeys().Count() > 0
}
