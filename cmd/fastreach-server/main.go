// Command fastreach-server serves the isochrone HTTP API against a single,
// memory-mapped graph file for the lifetime of the process.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edsrzf/mmap-go"
	"github.com/fastreach/fastreach-go/graph"
	"github.com/fastreach/fastreach-go/internal/admission"
	"github.com/fastreach/fastreach-go/internal/api"
	"github.com/fastreach/fastreach-go/internal/config"
	"github.com/fastreach/fastreach-go/internal/logging"
	"github.com/fastreach/fastreach-go/internal/observability"
	"github.com/fastreach/fastreach-go/isochrone"
)

func main() {
	cfg := config.Load()
	log := logging.New(logging.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, nil); err != nil {
		log.Error(context.Background(), "fastreach-server exited with error", logging.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log logging.Logger, lis net.Listener) error {
	if log == nil {
		log = logging.Noop()
	}

	traceShutdown := func(context.Context) error { return nil }
	if shutdown, err := observability.InitTracing(ctx, cfg.Tracing, log); err != nil {
		log.Warn(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
	} else {
		traceShutdown = shutdown
	}
	defer observability.ShutdownWithTimeout(context.Background(), traceShutdown, log)

	collector, err := observability.NewIsochroneCollector(nil)
	if err != nil {
		return fmt.Errorf("init metrics collector: %w", err)
	}

	f, err := os.Open(cfg.GraphPath)
	if err != nil {
		return fmt.Errorf("open graph file %q: %w", cfg.GraphPath, err)
	}
	defer f.Close()

	region, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("mmap graph file %q: %w", cfg.GraphPath, err)
	}
	defer region.Unmap()

	g, err := graph.New(region)
	if err != nil {
		return fmt.Errorf("parse graph file %q: %w", cfg.GraphPath, err)
	}
	collector.SetGraphNodes(g.Len())

	var metricsSrv *http.Server
	if cfg.MetricsAddress != "" {
		metricsSrv = serveMetrics(cfg.MetricsAddress, collector, log)
	}

	handler := &api.Handler{
		Graph:      g,
		Dijkstra:   isochrone.New(g),
		MaxMinutes: cfg.MaxMinutes,
		Admission:  admission.New(cfg.Parallel),
		Log:        log,
		Metrics:    collector,
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: handler.Mux(cfg.StaticPath),
	}

	if lis == nil {
		var err error
		lis, err = net.Listen("tcp", cfg.ListenAddress)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.ListenAddress, err)
		}
	}

	log.Info(ctx, "starting fastreach-server",
		logging.String("addr", lis.Addr().String()),
		logging.Int("nodes", g.Len()),
		logging.Int("parallel", int(cfg.Parallel)),
	)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(lis)
	}()

	var retErr error
	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			retErr = err
		}
	case <-ctx.Done():
		log.Info(ctx, "shutdown requested", logging.String("reason", ctx.Err().Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "HTTP server shutdown failed", logging.String("error", err.Error()))
		if retErr == nil {
			retErr = err
		}
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}

	return retErr
}

func serveMetrics(addr string, collector *observability.IsochroneCollector, log logging.Logger) *http.Server {
	if collector == nil || addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
