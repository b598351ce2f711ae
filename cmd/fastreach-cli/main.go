// Command fastreach-cli loads a graph file and computes a single isochrone
// from the command line, printing its area, diameter, and station count.
// It supplements fastreach-server's HTTP API for local debugging and
// benchmarking without standing up a server.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/edsrzf/mmap-go"
	"github.com/fastreach/fastreach-go/graph"
	"github.com/fastreach/fastreach-go/isochrone"
)

func main() {
	graphPath := flag.String("graph-path", "graph.bin", "Path to the binary graph file")
	stationID := flag.String("station", "", "Decimal station ID to expand from")
	startStr := flag.String("start", "", "RFC3339 start time (defaults to now, UTC)")
	minutes := flag.Int64("minutes", 30, "Travel budget, in minutes")
	flag.Parse()

	if *stationID == "" {
		fmt.Fprintln(os.Stderr, "fastreach-cli: -station is required")
		os.Exit(2)
	}

	id, err := strconv.ParseUint(*stationID, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fastreach-cli: invalid -station %q: %v\n", *stationID, err)
		os.Exit(2)
	}

	start := time.Now().UTC()
	if *startStr != "" {
		parsed, err := time.Parse(time.RFC3339, *startStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fastreach-cli: invalid -start %q: %v\n", *startStr, err)
			os.Exit(2)
		}
		start = parsed.UTC()
	}

	if err := run(*graphPath, id, start, time.Duration(*minutes)*time.Minute); err != nil {
		fmt.Fprintf(os.Stderr, "fastreach-cli: %v\n", err)
		os.Exit(1)
	}
}

func run(graphPath string, stationID uint64, start time.Time, budget time.Duration) error {
	f, err := os.Open(graphPath)
	if err != nil {
		return fmt.Errorf("open graph file %q: %w", graphPath, err)
	}
	defer f.Close()

	region, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("mmap graph file %q: %w", graphPath, err)
	}
	defer region.Unmap()

	g, err := graph.New(region)
	if err != nil {
		return fmt.Errorf("parse graph file %q: %w", graphPath, err)
	}

	index, ok := g.IndexByID(stationID)
	if !ok {
		return fmt.Errorf("unknown station id %d", stationID)
	}

	d := isochrone.New(g)
	result, visited, removed, err := isochrone.Compute(d, index, start, budget)
	if err != nil {
		return fmt.Errorf("compute isochrone: %w", err)
	}

	fmt.Printf("stations visited:  %d\n", visited)
	fmt.Printf("stations removed:  %d (coverage reduction)\n", removed)
	fmt.Printf("stations retained: %d\n", len(result.Stations))
	fmt.Printf("area:              %.3f km^2\n", result.AreaKm2)
	fmt.Printf("diameter:          %.3f km\n", result.Diameter)
	return nil
}
