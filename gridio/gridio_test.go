package gridio

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stanislc/crimm/grid"
	"gonum.org/v1/gonum/floats"
)

func testChannels(Te *testing.T) (*grid.Geometry, *grid.Channels) {
	s, err := grid.NewShape(4, 3, 5)
	if err != nil {
		Te.Fatal(err)
	}
	G, err := grid.NewGeometry(s, 0.75, -1.0, 2.0, 0.5)
	if err != nil {
		Te.Fatal(err)
	}
	c := grid.NewChannels(s, 2)
	for ch := 0; ch < c.NChannels(); ch++ {
		d := c.Grid(ch).Data()
		for i := range d {
			d[i] = float64((i*(3+2*ch))%17) - 7.5
		}
	}
	return G, c
}

func TestGridFileRoundTrip(Te *testing.T) {
	fmt.Println("TestGridFileRoundTrip!")
	G, c := testChannels(Te)
	dir := Te.TempDir()
	//pot.grd and pot.bin both take the zstd branch, the others
	//each exercise one of the remaining compressors.
	for _, name := range []string{"pot.grd", "pot.grl", "pot.grz", "pot.grr", "pot.bin"} {
		path := filepath.Join(dir, name)
		if err := Write(path, G, c); err != nil {
			Te.Fatalf("writing %s: %v", name, err)
		}
		G2, c2, err := Read(path)
		if err != nil {
			Te.Fatalf("reading %s: %v", name, err)
		}
		if G2.Shape() != G.Shape() {
			Te.Errorf("%s: extents changed: got %v, want %v", name, G2.Shape(), G.Shape())
		}
		if G2.Spacing() != G.Spacing() {
			Te.Errorf("%s: spacing changed: got %v, want %v", name, G2.Spacing(), G.Spacing())
		}
		ox, oy, oz := G2.Origin()
		wx, wy, wz := G.Origin()
		if ox != wx || oy != wy || oz != wz {
			Te.Errorf("%s: origin changed: got %v %v %v", name, ox, oy, oz)
		}
		if c2.NChannels() != c.NChannels() {
			Te.Fatalf("%s: got %d channels, want %d", name, c2.NChannels(), c.NChannels())
		}
		for ch := 0; ch < c.NChannels(); ch++ {
			if !floats.Equal(c2.Grid(ch).Data(), c.Grid(ch).Data()) {
				Te.Errorf("%s: channel %d did not survive the round trip", name, ch)
			}
		}
		fmt.Println("round-tripped", name)
	}
}

func TestGridFileCompressionLevel(Te *testing.T) {
	fmt.Println("TestGridFileCompressionLevel!")
	G, c := testChannels(Te)
	path := filepath.Join(Te.TempDir(), "fast.grz")
	if err := Write(path, G, c, 1); err != nil {
		Te.Fatal(err)
	}
	_, c2, err := Read(path)
	if err != nil {
		Te.Fatal(err)
	}
	for ch := 0; ch < c.NChannels(); ch++ {
		if !floats.Equal(c2.Grid(ch).Data(), c.Grid(ch).Data()) {
			Te.Errorf("channel %d did not survive the round trip at level 1", ch)
		}
	}
}

func TestGridFileWriteErrors(Te *testing.T) {
	fmt.Println("TestGridFileWriteErrors!")
	G, c := testChannels(Te)
	path := filepath.Join(Te.TempDir(), "bad.grd")
	if err := Write(path, nil, c); err == nil {
		Te.Error("nil geometry was accepted")
	}
	if err := Write(path, G, nil); err == nil {
		Te.Error("nil channels were accepted")
	}
	s2, _ := grid.NewShape(2, 2, 2)
	if err := Write(path, G, grid.NewChannels(s2, 1)); err == nil {
		Te.Error("mismatched geometry and channel extents were accepted")
	}
}

func TestGridFileBadHeader(Te *testing.T) {
	fmt.Println("TestGridFileBadHeader!")
	dir := Te.TempDir()
	if _, _, err := Read(filepath.Join(dir, "nope.grd")); err == nil {
		Te.Error("reading a missing file did not fail")
	}

	//not a grid file at all: compressed junk where the header should be
	junk := filepath.Join(dir, "junk.grz")
	f, err := os.Create(junk)
	if err != nil {
		Te.Fatal(err)
	}
	w := gzip.NewWriter(f)
	w.Write(bytes.Repeat([]byte{0xAB}, 64))
	w.Close()
	f.Close()
	if _, _, err := Read(junk); err == nil {
		Te.Error("junk payload was accepted")
	} else {
		fmt.Println("junk payload rejected with:", err)
	}

	writeHeader := func(name string, hdr header, payload []float64) string {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			Te.Fatal(err)
		}
		w, err := flate.NewWriter(f, 9)
		if err != nil {
			Te.Fatal(err)
		}
		if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
			Te.Fatal(err)
		}
		if payload != nil {
			if err := binary.Write(w, binary.LittleEndian, payload); err != nil {
				Te.Fatal(err)
			}
		}
		w.Close()
		f.Close()
		return path
	}
	good := header{Magic: magic, Version: formatVersion, NChannels: 1, NX: 2, NY: 2, NZ: 2, Spacing: 1.0}

	future := good
	future.Version = 99
	if _, _, err := Read(writeHeader("future.grr", future, make([]float64, 8))); err == nil {
		Te.Error("unsupported version was accepted")
	}

	empty := good
	empty.NChannels = 0
	if _, _, err := Read(writeHeader("empty.grr", empty, nil)); err == nil {
		Te.Error("channel-less file was accepted")
	}

	//claims three channels but carries one
	short := good
	short.NChannels = 3
	if _, _, err := Read(writeHeader("short.grr", short, make([]float64, 8))); err == nil {
		Te.Error("truncated payload was accepted")
	} else {
		fmt.Println("truncated payload rejected with:", err)
	}
}
