// Command benchmark measures read_url latency against the live reader service.
// It needs JINAAI_API_KEY in the environment or a .env file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/olgasafonova/jina-reader-mcp-server/internal/reader"
	"github.com/olgasafonova/jina-reader-mcp-server/tools"
	"golang.org/x/sync/errgroup"
)

// stats summarizes a set of call latencies
type stats struct {
	Count  int
	Errors int
	Min    time.Duration
	Max    time.Duration
	Mean   time.Duration
	P50    time.Duration
	P95    time.Duration
}

func summarize(durations []time.Duration, errors int) stats {
	s := stats{Count: len(durations), Errors: errors}
	if len(durations) == 0 {
		return s
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Mean = total / time.Duration(len(sorted))
	s.P50 = percentile(sorted, 0.50)
	s.P95 = percentile(sorted, 0.95)
	return s
}

// percentile expects sorted input
func percentile(sorted []time.Duration, p float64) time.Duration {
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}

func (s stats) print(label string) {
	fmt.Printf("%s:\n", label)
	fmt.Printf("   Calls:  %d (%d failed)\n", s.Count+s.Errors, s.Errors)
	if s.Count == 0 {
		fmt.Println()
		return
	}
	fmt.Printf("   Min:    %v\n", s.Min.Round(time.Millisecond))
	fmt.Printf("   Mean:   %v\n", s.Mean.Round(time.Millisecond))
	fmt.Printf("   P50:    %v\n", s.P50.Round(time.Millisecond))
	fmt.Printf("   P95:    %v\n", s.P95.Round(time.Millisecond))
	fmt.Printf("   Max:    %v\n", s.Max.Round(time.Millisecond))
	fmt.Println()
}

// measureSequential calls the tool n times, one after another
func measureSequential(ctx context.Context, gateway *tools.Gateway, args json.RawMessage, n int) stats {
	var durations []time.Duration
	errors := 0
	for i := 0; i < n; i++ {
		start := time.Now()
		if _, err := gateway.Invoke(ctx, reader.ToolName, args); err != nil {
			fmt.Printf("   Error: %v\n", err)
			errors++
			continue
		}
		durations = append(durations, time.Since(start))
	}
	return summarize(durations, errors)
}

// measureParallel calls the tool n times with at most concurrency in flight
func measureParallel(ctx context.Context, gateway *tools.Gateway, args json.RawMessage, n, concurrency int) (stats, time.Duration) {
	var (
		mu        sync.Mutex
		durations []time.Duration
		errors    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	wall := time.Now()
	for i := 0; i < n; i++ {
		g.Go(func() error {
			start := time.Now()
			_, err := gateway.Invoke(gctx, reader.ToolName, args)
			elapsed := time.Since(start)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fmt.Printf("   Error: %v\n", err)
				errors++
				return nil
			}
			durations = append(durations, elapsed)
			return nil
		})
	}
	_ = g.Wait()

	return summarize(durations, errors), time.Since(wall)
}

// validateFlags rejects settings that would hang or do nothing useful
func validateFlags(n, concurrency int) error {
	if n < 1 {
		return fmt.Errorf("-n must be at least 1, got %d", n)
	}
	if concurrency < 1 {
		return fmt.Errorf("-concurrency must be at least 1, got %d", concurrency)
	}
	return nil
}

func main() {
	target := flag.String("url", "https://example.com", "URL to read")
	n := flag.Int("n", 5, "number of calls per phase")
	concurrency := flag.Int("concurrency", 5, "maximum parallel calls")
	noCache := flag.Bool("no-cache", false, "bypass the reader cache")
	format := flag.String("format", reader.FormatJSON, "response format (json or stream)")
	flag.Parse()

	if err := validateFlags(*n, *concurrency); err != nil {
		fmt.Printf("Error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	if err := reader.LoadDotEnv(".env"); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}
	config, err := reader.LoadConfig()
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	gateway := tools.NewGateway(reader.NewClient(config, reader.WithLogger(logger)), logger)

	args, err := json.Marshal(map[string]any{
		"url":      *target,
		"no_cache": *noCache,
		"format":   *format,
	})
	if err != nil {
		fmt.Printf("Error encoding arguments: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	fmt.Println("Jina Reader MCP Server - Latency Measurements")
	fmt.Println("=============================================")
	fmt.Printf("Target: %s (no_cache=%v, format=%s)\n\n", *target, *noCache, *format)

	seq := measureSequential(ctx, gateway, args, *n)
	seq.print("1. Sequential calls")

	par, wall := measureParallel(ctx, gateway, args, *n, *concurrency)
	par.print(fmt.Sprintf("2. Parallel calls (concurrency %d)", *concurrency))

	fmt.Println("=== Summary ===")
	fmt.Println()
	if seq.Count > 0 && par.Count > 0 {
		sequentialTotal := seq.Mean * time.Duration(seq.Count)
		fmt.Printf("Sequential wall time: %v\n", sequentialTotal.Round(time.Millisecond))
		fmt.Printf("Parallel wall time:   %v\n", wall.Round(time.Millisecond))
		fmt.Printf("Parallel speedup:     %.1fx\n", float64(sequentialTotal)/float64(wall))
	} else {
		fmt.Println("Not enough successful calls to compare")
	}
}
