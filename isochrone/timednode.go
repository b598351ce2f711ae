package isochrone

import (
	"time"

	"github.com/fastreach/fastreach-go/graph"
)

// TimedNode is a station reached within a travel budget, together with how
// much of that budget is left once the traveller arrives.
type TimedNode struct {
	Index     uint32
	Node      *graph.Node
	Remaining time.Duration
}
