package isochrone

import "errors"

// ErrInvalidInput marks a request that is wrong on its face: an out-of-range
// source station or a negative travel budget. It is a client error, not a
// sign anything is wrong with the server or the graph.
var ErrInvalidInput = errors.New("isochrone: invalid input")

// ErrComputationFailure marks an internal invariant violated while walking
// the graph: an operating-period index an edge claims but does not have, or
// a date byte that decodes to an impossible calendar date. Unlike a graph
// file that fails to parse at all, this is only discoverable lazily while
// traversing a particular edge, so it surfaces as a per-request failure
// rather than a startup refusal to serve.
var ErrComputationFailure = errors.New("isochrone: computation failure")
