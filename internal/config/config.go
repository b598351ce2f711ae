// Package config loads fastreach-server's configuration from flags seeded
// by environment variables, read through the envOrDefault/envBool/envInt64/
// envFloat helpers below: environment variables are the documented default,
// flags exist for local overrides.
package config

import (
	"flag"
	"os"
	"strconv"
)

// Config holds everything fastreach-server needs to start.
type Config struct {
	GraphPath      string
	StaticPath     string
	MaxMinutes     int64
	Parallel       int64
	ListenAddress  string
	MetricsAddress string
	LogLevel       string
	LogFormat      string
	Tracing        TracingConfig
}

// TracingConfig controls how OpenTelemetry tracing is initialised. See
// observability.InitTracing, which consumes this directly.
type TracingConfig struct {
	Enabled     bool
	Exporter    string
	ServiceName string
	Endpoint    string
	SampleRatio float64
}

// Load reads Config from the environment, allowing command-line flags to
// override. flag.Parse is called by this function; call it at most once
// per process.
func Load() Config {
	defaultGraph := envOrDefault("GRAPH_PATH", "graph.bin")
	defaultStatic := envOrDefault("STATIC_PATH", "")
	defaultMaxMinutes := envInt64("MAX_MINUTES", 120)
	defaultParallel := envInt64("PARALLEL", 2)
	defaultListen := envOrDefault("LISTEN_ADDRESS", "0.0.0.0:8080")
	defaultMetrics := envOrDefault("METRICS_ADDRESS", ":9090")
	defaultLogLevel := envOrDefault("LOG_LEVEL", "info")
	defaultLogFormat := envOrDefault("LOG_FORMAT", "text")
	defaultTracingEnabled := envBool("FASTREACH_TRACING_ENABLED", false)
	defaultTracingExporter := envOrDefault("FASTREACH_TRACING_EXPORTER", "stdout")
	defaultTracingService := envOrDefault("FASTREACH_TRACING_SERVICE_NAME", "fastreach-server")
	defaultTracingEndpoint := envOrDefault("FASTREACH_TRACING_OTLP_ENDPOINT", "")
	defaultTracingSampleRatio := envFloat("FASTREACH_TRACING_SAMPLE_RATIO", 1.0)

	graphPath := flag.String("graph-path", defaultGraph, "Path to the binary graph file")
	staticPath := flag.String("static-path", defaultStatic, "Optional directory of static files to serve (empty to disable)")
	maxMinutes := flag.Int64("max-minutes", defaultMaxMinutes, "Largest travel budget, in minutes, a request may ask for")
	parallel := flag.Int64("parallel", defaultParallel, "Maximum number of isochrone requests computed concurrently")
	listenAddr := flag.String("listen-address", defaultListen, "TCP address the HTTP server listens on")
	metricsAddr := flag.String("metrics-address", defaultMetrics, "HTTP address for Prometheus /metrics (empty to disable)")
	logLevel := flag.String("log-level", defaultLogLevel, "Log level: debug, info, warn")
	logFormat := flag.String("log-format", defaultLogFormat, "Log format: text or json")
	tracingEnabled := flag.Bool("tracing-enabled", defaultTracingEnabled, "Enable OpenTelemetry tracing")
	tracingExporter := flag.String("tracing-exporter", defaultTracingExporter, "Trace exporter: stdout or otlpgrpc")
	tracingService := flag.String("tracing-service-name", defaultTracingService, "Service name reported in traces")
	tracingEndpoint := flag.String("tracing-otlp-endpoint", defaultTracingEndpoint, "OTLP gRPC collector endpoint")
	tracingSampleRatio := flag.Float64("tracing-sample-ratio", defaultTracingSampleRatio, "Fraction of traces to sample, 0.0-1.0")

	flag.Parse()

	if *parallel <= 0 {
		*parallel = 1
	}

	return Config{
		GraphPath:      *graphPath,
		StaticPath:     *staticPath,
		MaxMinutes:     *maxMinutes,
		Parallel:       *parallel,
		ListenAddress:  *listenAddr,
		MetricsAddress: *metricsAddr,
		LogLevel:       *logLevel,
		LogFormat:      *logFormat,
		Tracing: TracingConfig{
			Enabled:     *tracingEnabled,
			Exporter:    *tracingExporter,
			ServiceName: *tracingService,
			Endpoint:    *tracingEndpoint,
			SampleRatio: *tracingSampleRatio,
		},
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
