package isochrone

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/fastreach/fastreach-go/graph"
)

// fixtureBuilder assembles binary graph files for tests in this package.
// It duplicates the graph package's own test builder rather than importing
// it, since accessor-level graph tests and algorithm-level isochrone tests
// should be able to drift independently.
type fixtureBuilder struct {
	buf bytes.Buffer
}

func (b *fixtureBuilder) u16(v uint16) { binary.Write(&b.buf, binary.LittleEndian, v) }
func (b *fixtureBuilder) u32(v uint32) { binary.Write(&b.buf, binary.LittleEndian, v) }
func (b *fixtureBuilder) u64(v uint64) { binary.Write(&b.buf, binary.LittleEndian, v) }
func (b *fixtureBuilder) f32(v float32) {
	binary.Write(&b.buf, binary.LittleEndian, math.Float32bits(v))
}
func (b *fixtureBuilder) name(s string) {
	b.u32(uint32(len(s)))
	b.buf.WriteString(s)
}
func (b *fixtureBuilder) node(id uint64, lat, lon float32, name string) {
	b.u64(id)
	b.f32(lat)
	b.f32(lon)
	b.name(name)
}

type fixtureJourney struct{ arrival, departure, periodIdx uint16 }
type fixturePeriod struct {
	start, end uint32
	validDays  []byte
}

func (b *fixtureBuilder) edge(src, dst uint32, walk uint16, journeys []fixtureJourney, periods []fixturePeriod) {
	b.u32(src)
	b.u32(dst)
	b.u16(walk)

	var jb bytes.Buffer
	for _, j := range journeys {
		binary.Write(&jb, binary.LittleEndian, j.arrival)
		binary.Write(&jb, binary.LittleEndian, j.departure)
		binary.Write(&jb, binary.LittleEndian, j.periodIdx)
	}
	b.u32(uint32(jb.Len()))
	b.buf.Write(jb.Bytes())

	var pb bytes.Buffer
	for _, p := range periods {
		binary.Write(&pb, binary.LittleEndian, p.start)
		binary.Write(&pb, binary.LittleEndian, p.end)
		binary.Write(&pb, binary.LittleEndian, uint32(len(p.validDays)))
		pb.Write(p.validDays)
	}
	b.u32(uint32(pb.Len()))
	b.buf.Write(pb.Bytes())
}

func encDate(year, month, day int) uint32 {
	return uint32((year-2000)*10000 + month*100 + day)
}

func alwaysValidPeriod() fixturePeriod {
	return fixturePeriod{start: encDate(2000, 1, 1), end: encDate(2127, 12, 31), validDays: bytes.Repeat([]byte{0xFF}, 6000)}
}

func singleEdgeGraphWithPeriod(t *testing.T, start, end uint32, validDays []byte) *graph.Graph {
	t.Helper()
	var b fixtureBuilder
	b.u32(2)
	b.node(1, 50.9, 11.0, "A")
	b.node(2, 50.95, 11.05, "B")
	b.u32(1)
	b.edge(0, 1, 60, []fixtureJourney{{arrival: 0, departure: 0, periodIdx: 0}}, []fixturePeriod{{start: start, end: end, validDays: validDays}})

	g, err := graph.New(b.buf.Bytes())
	if err != nil {
		t.Fatalf("graph.New: %v", err)
	}
	return g
}
