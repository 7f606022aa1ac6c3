package correlate

import (
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/stanislc/crimm/grid"
)

//plan holds the transform machinery for one lattice shape: a real
//transform along z, the contiguous axis, and full complex transforms
//along y and x, with the line scratch the strided axes need. The
//fourier transformers keep internal state, so a plan must never be
//shared between goroutines; the Correlator builds one per worker, all
//of them serially, before any parallel work starts.
type plan struct {
	shape      grid.Shape
	nzc        int //coefficients along z, the half-spectrum axis
	zr         *fourier.FFT
	yc, xc     *fourier.CmplxFFT
	ybuf, yout []complex128
	xbuf, xout []complex128
}

func newPlan(s grid.Shape) *plan {
	return &plan{
		shape: s,
		nzc:   s.NZ/2 + 1,
		zr:    fourier.NewFFT(s.NZ),
		yc:    fourier.NewCmplxFFT(s.NY),
		xc:    fourier.NewCmplxFFT(s.NX),
		ybuf:  make([]complex128, s.NY),
		yout:  make([]complex128, s.NY),
		xbuf:  make([]complex128, s.NX),
		xout:  make([]complex128, s.NX),
	}
}

//nspec returns the length of the half-spectrum of a grid of the plan's
//shape: full extents along x and y, nz/2+1 along z.
func (p *plan) nspec() int {
	return p.shape.NX * p.shape.NY * p.nzc
}

//forward fills spec with the half-spectrum of g. Nothing is normalized
//here nor in inverse: the whole round trip scales by the number of grid
//points, which the conjugate multiply divides back out.
func (p *plan) forward(g *grid.Grid, spec []complex128) {
	nx, ny, nz := p.shape.NX, p.shape.NY, p.shape.NZ
	nzc := p.nzc
	data := g.Data()
	//z lines are contiguous in the row-major data
	for xy := 0; xy < nx*ny; xy++ {
		p.zr.Coefficients(spec[xy*nzc:xy*nzc+nzc], data[xy*nz:xy*nz+nz])
	}
	for x := 0; x < nx; x++ {
		for sz := 0; sz < nzc; sz++ {
			base := x*ny*nzc + sz
			for y := 0; y < ny; y++ {
				p.ybuf[y] = spec[base+y*nzc]
			}
			p.yc.Coefficients(p.yout, p.ybuf)
			for y := 0; y < ny; y++ {
				spec[base+y*nzc] = p.yout[y]
			}
		}
	}
	stride := ny * nzc
	for yz := 0; yz < stride; yz++ {
		for x := 0; x < nx; x++ {
			p.xbuf[x] = spec[yz+x*stride]
		}
		p.xc.Coefficients(p.xout, p.xbuf)
		for x := 0; x < nx; x++ {
			spec[yz+x*stride] = p.xout[x]
		}
	}
}

//inverse overwrites g with the real field of the half-spectrum spec,
//undoing the axis passes of forward in reverse order. spec is used as
//scratch and left clobbered.
func (p *plan) inverse(spec []complex128, g *grid.Grid) {
	nx, ny, nz := p.shape.NX, p.shape.NY, p.shape.NZ
	nzc := p.nzc
	stride := ny * nzc
	for yz := 0; yz < stride; yz++ {
		for x := 0; x < nx; x++ {
			p.xbuf[x] = spec[yz+x*stride]
		}
		p.xc.Sequence(p.xout, p.xbuf)
		for x := 0; x < nx; x++ {
			spec[yz+x*stride] = p.xout[x]
		}
	}
	for x := 0; x < nx; x++ {
		for sz := 0; sz < nzc; sz++ {
			base := x*ny*nzc + sz
			for y := 0; y < ny; y++ {
				p.ybuf[y] = spec[base+y*nzc]
			}
			p.yc.Sequence(p.yout, p.ybuf)
			for y := 0; y < ny; y++ {
				spec[base+y*nzc] = p.yout[y]
			}
		}
	}
	data := g.Data()
	for xy := 0; xy < nx*ny; xy++ {
		p.zr.Sequence(data[xy*nz:xy*nz+nz], spec[xy*nzc:xy*nzc+nzc])
	}
}
