package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestGraph(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	u32 := func(v uint32) { binary.Write(&buf, binary.LittleEndian, v) }
	u64 := func(v uint64) { binary.Write(&buf, binary.LittleEndian, v) }
	u16 := func(v uint16) { binary.Write(&buf, binary.LittleEndian, v) }
	f32 := func(v float32) { binary.Write(&buf, binary.LittleEndian, math.Float32bits(v)) }
	name := func(s string) { u32(uint32(len(s))); buf.WriteString(s) }

	u32(2)
	u64(100)
	f32(50.90)
	f32(11.00)
	name("A")
	u64(200)
	f32(50.91)
	f32(11.01)
	name("B")

	u32(1)
	u32(0)
	u32(1)
	u16(300)
	u32(0)
	u32(0)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write test graph: %v", err)
	}
}

func TestRunPrintsIsochroneForKnownStation(t *testing.T) {
	dir := t.TempDir()
	graphPath := filepath.Join(dir, "graph.bin")
	writeTestGraph(t, graphPath)

	if err := run(graphPath, 100, time.Now().UTC(), 10*time.Minute); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunRejectsUnknownStation(t *testing.T) {
	dir := t.TempDir()
	graphPath := filepath.Join(dir, "graph.bin")
	writeTestGraph(t, graphPath)

	if err := run(graphPath, 999, time.Now().UTC(), 10*time.Minute); err == nil {
		t.Fatal("run: want error for unknown station, got nil")
	}
}
