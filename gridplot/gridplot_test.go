package gridplot

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stanislc/crimm/grid"
)

func checkPlotFile(Te *testing.T, path string) {
	st, err := os.Stat(path)
	if err != nil {
		Te.Errorf("plot %s was not written: %v", path, err)
		return
	}
	if st.Size() == 0 {
		Te.Errorf("plot %s is empty", path)
	}
}

func TestSliceHeatMap(Te *testing.T) {
	fmt.Println("TestSliceHeatMap!")
	s, err := grid.NewShape(8, 7, 6)
	if err != nil {
		Te.Fatal(err)
	}
	G, err := grid.NewGeometry(s, 0.5, -2.0, -1.75, -1.5)
	if err != nil {
		Te.Fatal(err)
	}
	g := grid.New(s)
	//a radial well, so the map has some structure to show
	cx, cy, cz := G.Center().At(0, 0), G.Center().At(0, 1), G.Center().At(0, 2)
	for i := 0; i < s.N(); i++ {
		x, y, z := G.Point(i)
		g.Data()[i] = math.Sqrt((x-cx)*(x-cx) + (y-cy)*(y-cy) + (z-cz)*(z-cz))
	}
	dir := Te.TempDir()
	name := filepath.Join(dir, "slice.png")
	if err := SliceHeatMap(G, g, -1, "Radial test grid", name); err != nil {
		Te.Error(err)
	}
	checkPlotFile(Te, name)
	if err := SliceHeatMap(G, g, 6, "", filepath.Join(dir, "bad.png")); err == nil {
		Te.Error("out-of-range plane was accepted")
	}
	s2, _ := grid.NewShape(2, 2, 2)
	if err := SliceHeatMap(G, grid.New(s2), 0, "", filepath.Join(dir, "bad.png")); err == nil {
		Te.Error("mismatched geometry and grid were accepted")
	}
}

func TestChannelHeatMaps(Te *testing.T) {
	fmt.Println("TestChannelHeatMaps!")
	s, err := grid.NewShape(5, 5, 5)
	if err != nil {
		Te.Fatal(err)
	}
	G, err := grid.NewGeometry(s, 1.0)
	if err != nil {
		Te.Fatal(err)
	}
	c := grid.NewChannels(s, 2)
	for ch := 0; ch < c.NChannels(); ch++ {
		d := c.Grid(ch).Data()
		for i := range d {
			d[i] = float64((i*(ch+2))%11) - 5.0
		}
	}
	base := filepath.Join(Te.TempDir(), "channels")
	if err := ChannelHeatMaps(G, c, -1, base); err != nil {
		Te.Error(err)
	}
	checkPlotFile(Te, base+"_ch0.png")
	checkPlotFile(Te, base+"_ch1.png")
}

func TestScoreHistogram(Te *testing.T) {
	fmt.Println("TestScoreHistogram!")
	scores := make([]float64, 200)
	x := 0.42
	for i := range scores {
		x = math.Mod(x*997+3.1, 13)
		scores[i] = x - 6
	}
	name := filepath.Join(Te.TempDir(), "scores.png")
	if err := ScoreHistogram(scores, 12, "", name); err != nil {
		Te.Error(err)
	}
	checkPlotFile(Te, name)
	if err := ScoreHistogram([]float64{}, 5, "", name); err == nil {
		Te.Error("empty scores were accepted")
	}
	if err := ScoreHistogram(scores, 0, "", name); err == nil {
		Te.Error("zero bins were accepted")
	}
}
