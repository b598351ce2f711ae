// Package graph decodes the fastreach binary graph format in place: a
// single []byte (typically a memory-mapped file) is parsed once into a
// table of Node and Edge views that borrow from it for the rest of the
// process's lifetime. Nothing beyond fixed-width scalars and validated
// names is ever copied out of the backing slice.
package graph

import (
	"encoding/binary"
	"fmt"
)

// Graph is an immutable, parsed view over a binary graph blob. A *Graph is
// safe for concurrent read access from many goroutines: nothing about it
// changes after New returns.
type Graph struct {
	nodes []Node
	ids   map[uint64]uint32
}

// reader is a small bounds-checked cursor over the parse-time byte slice.
// Unlike the accessor methods on Node/Edge/Journey/OperatingPeriod, it never
// panics: a truncated or corrupt file is reported once here as
// ErrMalformedGraph instead of panicking deep inside a later lookup.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) need(n int) error {
	if r.pos+n > len(r.data) {
		return fmt.Errorf("%w: unexpected end of file at offset %d", ErrMalformedGraph, r.pos)
	}
	return nil
}

func (r *reader) u16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) u64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *reader) skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// New parses data as a complete graph file. The returned Graph borrows data
// for its entire lifetime; the caller must keep it alive (and, if it backs a
// memory-mapped file, mapped) for as long as the Graph is in use.
func New(data []byte) (*Graph, error) {
	r := &reader{data: data}

	nodeCount, err := r.u32()
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, nodeCount)
	ids := make(map[uint64]uint32, nodeCount)

	for i := uint32(0); i < nodeCount; i++ {
		start := r.pos
		id, err := r.u64()
		if err != nil {
			return nil, err
		}
		if err := r.skip(8); err != nil { // lat + lon
			return nil, err
		}
		nameLen, err := r.u32()
		if err != nil {
			return nil, err
		}
		if err := r.skip(int(nameLen)); err != nil {
			return nil, err
		}
		if _, exists := ids[id]; exists {
			return nil, fmt.Errorf("%w: duplicate station id %d", ErrMalformedGraph, id)
		}
		ids[id] = i
		nodes = append(nodes, Node{raw: data[start:r.pos], index: i})
	}

	edgeCount, err := r.u32()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < edgeCount; i++ {
		start := r.pos
		srcIdx, err := r.u32()
		if err != nil {
			return nil, err
		}
		dstIdx, err := r.u32()
		if err != nil {
			return nil, err
		}
		if srcIdx >= nodeCount || dstIdx >= nodeCount {
			return nil, fmt.Errorf("%w: edge %d references out-of-range node index", ErrMalformedGraph, i)
		}
		if _, err := r.u16(); err != nil { // walk_seconds
			return nil, err
		}
		journeysLen, err := r.u32()
		if err != nil {
			return nil, err
		}
		if journeysLen%journeyRecordSize != 0 {
			return nil, fmt.Errorf("%w: edge %d has a journey table not a multiple of %d bytes", ErrMalformedGraph, i, journeyRecordSize)
		}
		if err := r.skip(int(journeysLen)); err != nil {
			return nil, err
		}
		periodsLen, err := r.u32()
		if err != nil {
			return nil, err
		}
		if err := r.skip(int(periodsLen)); err != nil {
			return nil, err
		}

		e := Edge{raw: data[start:r.pos]}
		if !e.hasUsableConnection() {
			return nil, fmt.Errorf("%w: edge %d has neither a walking time nor any journeys", ErrMalformedGraph, i)
		}
		nodes[srcIdx].outgoing = append(nodes[srcIdx].outgoing, e)
	}

	return &Graph{nodes: nodes, ids: ids}, nil
}

// Len returns the number of stations in the graph.
func (g *Graph) Len() int { return len(g.nodes) }

// NodeByIndex returns the node at the given table index. It panics if idx
// is out of range, matching the accessor contract used throughout this
// package: bounds violations after a successful parse indicate a caller bug.
func (g *Graph) NodeByIndex(idx uint32) *Node { return &g.nodes[idx] }

// IndexByID resolves a station's external ID to its table index.
func (g *Graph) IndexByID(id uint64) (uint32, bool) {
	idx, ok := g.ids[id]
	return idx, ok
}
