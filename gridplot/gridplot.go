package gridplot

import (
	"fmt"

	"github.com/stanislc/crimm/grid"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//zslice adapts one constant-z plane of a potential grid to the
//plotter.GridXYZ interface, with the axes in real-space coordinates.
type zslice struct {
	g *grid.Grid
	G *grid.Geometry
	z int
}

func (s zslice) Dims() (c, r int) {
	sh := s.g.Shape()
	return sh.NX, sh.NY
}

func (s zslice) Z(c, r int) float64 {
	return s.g.At(c, r, s.z)
}

func (s zslice) X(c int) float64 {
	ox, _, _ := s.G.Origin()
	return ox + float64(c)*s.G.Spacing()
}

func (s zslice) Y(r int) float64 {
	_, oy, _ := s.G.Origin()
	return oy + float64(r)*s.G.Spacing()
}

//SliceHeatMap saves a heat map of the xy plane of g at the given z index
//to plotname. The format is taken from the extension of plotname (png,
//pdf, svg...). A negative z selects the middle plane. Returns an error
//or nil.
func SliceHeatMap(G *grid.Geometry, g *grid.Grid, z int, title, plotname string) error {
	if G == nil || g == nil {
		panic("Given nil data")
	}
	if G.Shape() != g.Shape() {
		return fmt.Errorf("SliceHeatMap: geometry and grid extents differ: %v vs %v", G.Shape(), g.Shape())
	}
	if z < 0 {
		z = g.Shape().NZ / 2
	}
	if z >= g.Shape().NZ {
		return fmt.Errorf("SliceHeatMap: plane %d requested, but the grid only has %d", z, g.Shape().NZ)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X (Å)"
	p.Y.Label.Text = "Y (Å)"
	h := plotter.NewHeatMap(zslice{g: g, G: G, z: z}, palette.Heat(12, 1))
	p.Add(h)
	return p.Save(14*vg.Centimeter, 14*vg.Centimeter, plotname)
}

//ChannelHeatMaps saves one heat map per channel of c, at the given z
//index (negative means the middle plane), to files named
//basename_ch0.png, basename_ch1.png and so on.
func ChannelHeatMaps(G *grid.Geometry, c *grid.Channels, z int, basename string) error {
	if G == nil || c == nil {
		panic("Given nil data")
	}
	for i := 0; i < c.NChannels(); i++ {
		title := fmt.Sprintf("Channel %d", i)
		name := fmt.Sprintf("%s_ch%d.png", basename, i)
		if err := SliceHeatMap(G, c.Grid(i), z, title, name); err != nil {
			return err
		}
	}
	return nil
}

//ScoreHistogram saves a histogram of the given scores to plotname,
//with the mean and standard deviation in the title. scores is
//typically the flat data of a composite score grid. Returns an error
//or nil.
func ScoreHistogram(scores []float64, nbins int, title, plotname string) error {
	if scores == nil {
		panic("Given nil data")
	}
	if len(scores) == 0 {
		return fmt.Errorf("ScoreHistogram: no scores given")
	}
	if nbins < 1 {
		return fmt.Errorf("ScoreHistogram: at least one bin is needed, %d requested", nbins)
	}
	p := plot.New()
	if title == "" {
		title = "Score distribution"
	}
	m := stat.Mean(scores, nil)
	sd := stat.StdDev(scores, nil)
	p.Title.Text = fmt.Sprintf("%s (mean %.2f, sd %.2f)", title, m, sd)
	p.X.Label.Text = "Score"
	p.Y.Label.Text = "Cells"
	h, err := plotter.NewHist(plotter.Values(scores), nbins)
	if err != nil {
		return err
	}
	p.Add(h)
	return p.Save(14*vg.Centimeter, 10*vg.Centimeter, plotname)
}
