// Package api exposes the isochrone pipeline over HTTP: one POST endpoint,
// JSON in and out, admission-controlled so a burst of requests queues
// FIFO-fair on a bounded number of concurrent computations rather than
// running unbounded goroutines against the graph.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fastreach/fastreach-go/graph"
	"github.com/fastreach/fastreach-go/internal/admission"
	"github.com/fastreach/fastreach-go/internal/logging"
	"github.com/fastreach/fastreach-go/internal/observability"
	"github.com/fastreach/fastreach-go/isochrone"
	"github.com/fastreach/fastreach-go/region"
	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
)

const requestIDHeader = "X-Request-Id"

var tracer = otel.Tracer("github.com/fastreach/fastreach-go/internal/api")

// Handler serves the isochrone API against a single, shared Graph.
type Handler struct {
	Graph      *graph.Graph
	Dijkstra   *isochrone.Dijkstra
	MaxMinutes int64
	Admission  *admission.Semaphore
	Log        logging.Logger
	Metrics    *observability.IsochroneCollector
}

// Mux builds a ServeMux wiring the isochrone endpoint and, when staticDir is
// non-empty, a static file server for everything else.
func (h *Handler) Mux(staticDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/v1/isochrone", h.withRequestLogger(http.HandlerFunc(h.serveIsochrone)))
	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}
	return mux
}

// withRequestLogger ensures a request_id exists on the context (sourced
// from an inbound header if the caller provided one) and attaches a
// per-request logger annotated with it and the path, mirroring the
// teacher's gRPC request-ID interceptor at the HTTP boundary.
func (h *Handler) withRequestLogger(next http.Handler) http.Handler {
	base := h.Log
	if base == nil {
		base = logging.Noop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if incoming := r.Header.Get(requestIDHeader); incoming != "" {
			ctx = logging.ContextWithRequestID(ctx, incoming)
		}
		ctx, reqLog := logging.WithRequestLogger(ctx, base.With(logging.String("path", r.URL.Path)))
		ctx = logging.ContextWithLogger(ctx, reqLog)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) serveIsochrone(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := loggerOrNoop(ctx)

	if r.Method != http.MethodPost {
		h.writeError(ctx, w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	var req IsochroneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn(ctx, "malformed request body", logging.String("error", err.Error()))
		h.writeError(ctx, w, http.StatusBadRequest, errors.New("malformed request body"))
		return
	}

	sourceIndex, startTime, budget, err := h.validate(req)
	if err != nil {
		log.Warn(ctx, "request failed validation",
			logging.String("id", req.ID),
			logging.String("error", err.Error()),
		)
		h.writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	if h.Admission != nil {
		if err := h.Admission.Acquire(ctx); err != nil {
			// The client went away while queued; there is no one left to
			// answer, so just stop without writing a response.
			return
		}
		defer h.Admission.Release()
	}

	ctx, span := tracer.Start(ctx, "dijkstra.expand")
	result, visited, removed, err := isochrone.Compute(h.Dijkstra, sourceIndex, startTime, budget)
	span.End()
	if err != nil {
		elapsed := time.Since(start)
		if errors.Is(err, isochrone.ErrInvalidInput) {
			log.Warn(ctx, "request failed validation", logging.String("id", req.ID), logging.String("error", err.Error()))
			h.writeError(ctx, w, http.StatusBadRequest, err)
			return
		}
		log.Error(ctx, "isochrone computation failed",
			logging.String("id", req.ID),
			logging.Duration("elapsed", elapsed),
			logging.String("error", err.Error()),
		)
		h.recordRequest(http.StatusInternalServerError, elapsed)
		h.writeJSON(ctx, w, http.StatusInternalServerError, errorReply{Error: "computation failed"})
		return
	}

	elapsed := time.Since(start)
	if h.Metrics != nil {
		h.Metrics.RecordPipeline(visited, removed)
	}
	h.recordRequest(http.StatusOK, elapsed)

	log.Info(ctx, "isochrone request served",
		logging.String("id", req.ID),
		logging.Int("minutes", int(req.Minutes)),
		logging.Int("stations", len(result.Stations)),
		logging.Duration("elapsed", elapsed),
	)

	h.writeJSON(ctx, w, http.StatusOK, IsochroneReply{
		AreaKm2:  result.AreaKm2,
		Diameter: result.Diameter,
		Geometry: region.Feature(result.Region),
	})
}

// validate checks the request's bounds and resolves it into the primitives
// Compute needs: a graph index, a wall-clock start time, and a travel budget.
func (h *Handler) validate(req IsochroneRequest) (uint32, time.Time, time.Duration, error) {
	maxMinutes := h.MaxMinutes
	if maxMinutes <= 0 {
		maxMinutes = 120
	}
	if req.Minutes < 0 || req.Minutes > maxMinutes {
		return 0, time.Time{}, 0, errors.New("minutes out of range")
	}

	id, err := strconv.ParseUint(req.ID, 10, 64)
	if err != nil {
		return 0, time.Time{}, 0, errors.New("id is not a valid station identifier")
	}
	index, ok := h.Graph.IndexByID(id)
	if !ok {
		return 0, time.Time{}, 0, errors.New("unknown station id")
	}

	startTime := time.UnixMilli(req.Start).UTC()
	if startTime.Year() < 1 || startTime.Year() > 9998 {
		return 0, time.Time{}, 0, errors.New("start is not a valid calendar instant")
	}

	return index, startTime, time.Duration(req.Minutes) * time.Minute, nil
}

func (h *Handler) recordRequest(code int, elapsed time.Duration) {
	if h.Metrics == nil {
		return
	}
	h.Metrics.RecordRequest(strconv.Itoa(code), elapsed.Seconds())
}

func (h *Handler) writeJSON(_ context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	h.recordRequest(status, 0)
	h.writeJSON(ctx, w, status, errorReply{Error: err.Error()})
}

func loggerOrNoop(ctx context.Context) logging.Logger {
	if log := logging.LoggerFromContext(ctx); log != nil {
		return log
	}
	return logging.Noop()
}
