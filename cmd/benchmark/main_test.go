package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/olgasafonova/jina-reader-mcp-server/internal/reader"
	"github.com/olgasafonova/jina-reader-mcp-server/tools"
)

func TestSummarize(t *testing.T) {
	durations := []time.Duration{
		40 * time.Millisecond,
		10 * time.Millisecond,
		30 * time.Millisecond,
		20 * time.Millisecond,
		50 * time.Millisecond,
	}

	s := summarize(durations, 2)

	if s.Count != 5 || s.Errors != 2 {
		t.Errorf("Count = %d, Errors = %d", s.Count, s.Errors)
	}
	if s.Min != 10*time.Millisecond {
		t.Errorf("Min = %v", s.Min)
	}
	if s.Max != 50*time.Millisecond {
		t.Errorf("Max = %v", s.Max)
	}
	if s.Mean != 30*time.Millisecond {
		t.Errorf("Mean = %v", s.Mean)
	}
	if s.P50 != 30*time.Millisecond {
		t.Errorf("P50 = %v", s.P50)
	}
	if s.P95 != 40*time.Millisecond {
		t.Errorf("P95 = %v", s.P95)
	}

	// Input order is preserved.
	if durations[0] != 40*time.Millisecond {
		t.Error("summarize modified its input")
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := summarize(nil, 3)
	if s.Count != 0 || s.Errors != 3 || s.Mean != 0 {
		t.Errorf("unexpected stats: %+v", s)
	}
}

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		n, concurrency int
		wantErr        bool
	}{
		{5, 5, false},
		{1, 1, false},
		{5, 0, true},
		{5, -1, true},
		{0, 5, true},
		{-3, 5, true},
	}

	for _, tt := range tests {
		err := validateFlags(tt.n, tt.concurrency)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateFlags(%d, %d) error = %v, wantErr %v", tt.n, tt.concurrency, err, tt.wantErr)
		}
	}
}

func TestMeasureParallel(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := reader.NewClient(&reader.Config{APIKey: "k"},
		reader.WithHTTPClient(server.Client()),
		reader.WithLogger(logger),
		reader.WithBaseURL(server.URL+"/"),
	)
	gateway := tools.NewGateway(client, logger)

	args := json.RawMessage(`{"url":"https://example.com"}`)
	s, wall := measureParallel(context.Background(), gateway, args, 6, 3)

	if got := atomic.LoadInt32(&calls); got != 6 {
		t.Errorf("upstream calls = %d, want 6", got)
	}
	if s.Count != 5 || s.Errors != 1 {
		t.Errorf("Count = %d, Errors = %d, want 5 and 1", s.Count, s.Errors)
	}
	if wall <= 0 {
		t.Errorf("wall = %v", wall)
	}
}
