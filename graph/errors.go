package graph

import "errors"

// ErrMalformedGraph is the sentinel wrapped by every parse-time failure.
// A graph file that triggers it is never served: the caller is expected to
// refuse startup rather than run with a partially decoded graph.
var ErrMalformedGraph = errors.New("graph: malformed graph file")
