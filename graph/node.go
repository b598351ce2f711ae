package graph

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// Node is a station: a fixed geographic point with a display name and a set
// of outgoing edges. Its bytes are a borrowed window into the graph's
// backing slice; nothing here is copied except what an accessor explicitly
// returns.
type Node struct {
	raw      []byte // id(8) | lat(4) | lon(4) | name_len(4) | name
	index    uint32
	outgoing []Edge
}

// ID returns the station's stable external identifier, as carried in
// isochrone requests.
func (n *Node) ID() uint64 {
	return binary.LittleEndian.Uint64(n.raw[0:8])
}

// Lat returns the station's latitude in degrees.
func (n *Node) Lat() float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(n.raw[8:12]))
}

// Lon returns the station's longitude in degrees.
func (n *Node) Lon() float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(n.raw[12:16]))
}

// Name returns the station's display name. It is validated lazily: the
// bytes are not checked at parse time, but for well-formed UTF-8 on every
// call.
func (n *Node) Name() (string, error) {
	nameLen := binary.LittleEndian.Uint32(n.raw[16:20])
	name := n.raw[20 : 20+nameLen]
	if !utf8.Valid(name) {
		return "", fmt.Errorf("%w: station %d has a non-UTF-8 name", ErrMalformedGraph, n.ID())
	}
	return string(name), nil
}

// Index returns the node's position in the graph's node table. Stable for
// the lifetime of the Graph it came from.
func (n *Node) Index() uint32 { return n.index }

// Outgoing returns the node's outgoing edges in file order. The returned
// slice must not be mutated.
func (n *Node) Outgoing() []Edge { return n.outgoing }
