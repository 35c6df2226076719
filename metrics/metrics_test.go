package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordRequest(t *testing.T) {
	tests := []struct {
		name       string
		tool       string
		duration   float64
		success    bool
		wantStatus string
	}{
		{
			name:       "successful request",
			tool:       "test_tool",
			duration:   0.5,
			success:    true,
			wantStatus: "success",
		},
		{
			name:       "failed request",
			tool:       "test_tool",
			duration:   1.0,
			success:    false,
			wantStatus: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordRequest(tt.tool, tt.duration, tt.success)

			counter, err := RequestsTotal.GetMetricWithLabelValues(tt.tool, tt.wantStatus)
			if err != nil {
				t.Fatalf("failed to get metric: %v", err)
			}
			if getCounterValue(t, counter) < 1 {
				t.Error("expected counter to be incremented")
			}
		})
	}
}

func TestRecordToolError(t *testing.T) {
	counter := ToolErrors.WithLabelValues("test_tool", "invalid_arguments")
	before := getCounterValue(t, counter)

	RecordToolError("test_tool", "invalid_arguments")

	if got := getCounterValue(t, counter); got != before+1 {
		t.Errorf("tool errors = %v, want %v", got, before+1)
	}
}

func TestRecordUpstreamCall(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		wantCode    string
		wantOutcome string
	}{
		{"success", 200, "200", "success"},
		{"not found", 404, "404", "http_error"},
		{"transport failure", 0, "0", "transport_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := UpstreamRequestsTotal.WithLabelValues(tt.wantCode)
			before := getCounterValue(t, counter)

			RecordUpstreamCall(tt.statusCode, 0.2)

			if got := getCounterValue(t, counter); got != before+1 {
				t.Errorf("upstream requests = %v, want %v", got, before+1)
			}

			obs, err := UpstreamLatency.GetMetricWithLabelValues(tt.wantOutcome)
			if err != nil {
				t.Fatalf("failed to get histogram: %v", err)
			}
			var m dto.Metric
			if err := obs.(prometheus.Metric).Write(&m); err != nil {
				t.Fatalf("failed to write metric: %v", err)
			}
			if m.Histogram.GetSampleCount() < 1 {
				t.Errorf("expected a latency sample for outcome %q", tt.wantOutcome)
			}
		})
	}
}

func TestRecordContentSize(t *testing.T) {
	RecordContentSize("json", 2048)

	obs, err := ContentSize.GetMetricWithLabelValues("json")
	if err != nil {
		t.Fatalf("failed to get histogram: %v", err)
	}
	var m dto.Metric
	if err := obs.(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if m.Histogram.GetSampleSum() < 2048 {
		t.Errorf("sample sum = %v, want >= 2048", m.Histogram.GetSampleSum())
	}
}

func TestHandler(t *testing.T) {
	RecordRequest("handler_tool", 0.1, true)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), Namespace+"_requests_total") {
		t.Error("expected requests_total in exposition output")
	}
}

func TestMetricsRegistered(t *testing.T) {
	metrics := []prometheus.Collector{
		RequestsTotal,
		RequestDuration,
		RequestInFlight,
		ToolErrors,
		UpstreamLatency,
		UpstreamRequestsTotal,
		ContentSize,
		PanicsRecovered,
	}

	for i, m := range metrics {
		if m == nil {
			t.Errorf("metric at index %d is nil", i)
		}
	}
}

func TestNamespace(t *testing.T) {
	if Namespace != "jina_reader_mcp" {
		t.Errorf("expected namespace 'jina_reader_mcp', got '%s'", Namespace)
	}
}

// Helper to get counter value
func getCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.Counter.GetValue()
}
