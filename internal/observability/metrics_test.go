package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordRequestIncrementsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewIsochroneCollector(reg)
	if err != nil {
		t.Fatalf("NewIsochroneCollector: %v", err)
	}

	c.RecordRequest("200", 0.05)
	c.RecordRequest("200", 0.12)
	c.RecordRequest("400", 0.01)

	if got := testutil.ToFloat64(c.Requests.WithLabelValues("200")); got != 2 {
		t.Fatalf("fastreach_requests_total{code=200} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Requests.WithLabelValues("400")); got != 1 {
		t.Fatalf("fastreach_requests_total{code=400} = %v, want 1", got)
	}

	if count := histogramSampleCount(t, reg, "fastreach_request_duration_seconds", map[string]string{"code": "200"}); count != 2 {
		t.Fatalf("fastreach_request_duration_seconds{code=200} sample_count = %d, want 2", count)
	}
}

func TestRecordPipelineObservesBothHistograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewIsochroneCollector(reg)
	if err != nil {
		t.Fatalf("NewIsochroneCollector: %v", err)
	}

	c.RecordPipeline(120, 37)

	if count := histogramSampleCount(t, reg, "fastreach_dijkstra_visited_total", nil); count != 1 {
		t.Fatalf("fastreach_dijkstra_visited_total sample_count = %d, want 1", count)
	}
	if count := histogramSampleCount(t, reg, "fastreach_coverage_reduced_total", nil); count != 1 {
		t.Fatalf("fastreach_coverage_reduced_total sample_count = %d, want 1", count)
	}
}

func TestMetricsHandlerExposesGraphNodesGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewIsochroneCollector(reg)
	if err != nil {
		t.Fatalf("NewIsochroneCollector: %v", err)
	}
	c.SetGraphNodes(4321)
	c.RecordRequest("200", 0.02)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"fastreach_requests_total",
		"fastreach_request_duration_seconds",
		"fastreach_graph_nodes",
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("expected %q in /metrics output", metric)
		}
	}
	if !strings.Contains(body, "4321") {
		t.Fatalf("/metrics output missing graph node count: %s", body)
	}
}

func TestNewIsochroneCollectorToleratesDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewIsochroneCollector(reg); err != nil {
		t.Fatalf("first NewIsochroneCollector: %v", err)
	}
	if _, err := NewIsochroneCollector(reg); err != nil {
		t.Fatalf("second NewIsochroneCollector against the same registry: %v", err)
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	metrics, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	if len(got) < len(want) {
		return false
	}
	matched := 0
	for _, lp := range got {
		if val, ok := want[lp.GetName()]; ok && val == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
