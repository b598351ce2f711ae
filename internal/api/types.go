package api

import "github.com/paulmach/orb/geojson"

// IsochroneRequest is the decoded JSON body of POST /api/v1/isochrone.
type IsochroneRequest struct {
	ID      string `json:"id"`
	Start   int64  `json:"start"`
	Minutes int64  `json:"minutes"`
}

// IsochroneReply is the JSON body returned on success.
type IsochroneReply struct {
	AreaKm2  float64          `json:"area"`
	Diameter float64          `json:"diameter"`
	Geometry *geojson.Feature `json:"geometry"`
}

// errorReply is the JSON body returned on a client or server error.
type errorReply struct {
	Error string `json:"error"`
}
