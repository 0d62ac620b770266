// Package diffusion implements the explicit 2-D thermal migration
// integrator seeded by the defect footprint.
package diffusion

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/maskvox/maskvox/config"
	"github.com/maskvox/maskvox/setup"
	"github.com/maskvox/maskvox/stack"
)

var log = config.NamedLogger("diffusion")

// Gamma is the stability constant D·Δt/(Δx·Δy). The time step is
// derived as Δt = (Δx·Δy)/(4·D), which pins Gamma at exactly 1/4, the
// margin of explicit-stencil stability. It is not caller-overridable.
const Gamma = 0.25

// warmupSamples is the number of leading time samples discarded before
// resampling; the time origin is re-zeroed after the trim.
const warmupSamples = 2

// Params are the integrator constants derived from the compute
// settings and the assembled stack.
type Params struct {
	DeltaT float64
	Steps  int

	// Factor converts simulated time and intensity into physical
	// thickness units.
	Factor float64

	NX int
	NY int
}

// Series is the scaled simulation output: one intensity slice per time
// sample. Slices are flattened with y varying fastest (index x*NY+y).
type Series struct {
	Times  []float64
	Values [][]float64

	NX     int
	NY     int
	DeltaX float64
	DeltaY float64
}

// Derive computes the integrator constants. It rejects configurations
// whose simulation array would exceed the cell bound and time budgets
// too short to leave usable samples after the warm-up trim.
func Derive(c setup.Compute, maxCumulative float64) (Params, error) {
	if c.Diffusivity <= 0 {
		return Params{}, fmt.Errorf("[voxelizer] diffusion: diffusion coefficient must be positive, got %g", c.Diffusivity)
	}

	denominator := math.RoundToEven(maxCumulative * 1.25)
	if denominator <= 0 {
		return Params{}, fmt.Errorf("[voxelizer] diffusion: stack has no thickness above the defect plane")
	}

	deltaT := (c.DeltaX * c.DeltaY) / (4 * c.Diffusivity)
	steps := int(c.MaxTime / deltaT)
	nx, ny := c.NX(), c.NY()

	if cells := steps * nx * ny; cells > c.CellBound() {
		return Params{}, fmt.Errorf(
			"[voxelizer] diffusion: simulation array of %d cells (%d steps x %dx%d grid) exceeds the %d cell bound; coarsen the grid or reduce the time budget",
			cells, steps, nx, ny, c.CellBound(),
		)
	}
	if steps < warmupSamples+1 {
		return Params{}, fmt.Errorf(
			"[voxelizer] diffusion: time budget %g yields only %d time steps; extend the simulation time",
			c.MaxTime, steps,
		)
	}

	return Params{
		DeltaT: deltaT,
		Steps:  steps,
		Factor: c.MaxTime / denominator,
		NX:     nx,
		NY:     ny,
	}, nil
}

// Run integrates the heat equation over the full time budget and
// returns the scaled sample series with the warm-up samples dropped
// and the time origin reset to zero.
func Run(s setup.Setup, st stack.Stack) (Series, error) {
	p, err := Derive(s.Compute, st.MaxCumulative())
	if err != nil {
		return Series{}, err
	}

	log.Infof("heat equation: steps=%d grid=%dx%d dt=%g factor=%g",
		p.Steps, p.NX, p.NY, p.DeltaT, p.Factor)

	fields := make([]*mat.Dense, p.Steps)
	fields[0] = seedField(s.Defect, s.Compute, p, s.Defect.Thickness*p.Factor)
	for k := 1; k < p.Steps; k++ {
		fields[k] = stepField(fields[k-1], p)
	}

	series := Series{
		Times:  make([]float64, 0, p.Steps-warmupSamples),
		Values: make([][]float64, 0, p.Steps-warmupSamples),
		NX:     p.NX,
		NY:     p.NY,
		DeltaX: s.Compute.DeltaX,
		DeltaY: s.Compute.DeltaY,
	}
	for k := warmupSamples; k < p.Steps; k++ {
		series.Times = append(series.Times, float64(k-warmupSamples)*p.DeltaT/p.Factor)

		values := make([]float64, p.NX*p.NY)
		for x := 0; x < p.NX; x++ {
			for y := 0; y < p.NY; y++ {
				values[x*p.NY+y] = fields[k].At(x, y) / p.Factor
			}
		}
		series.Values = append(series.Values, values)
	}

	return series, nil
}

// seedField builds the initial condition: the rectangular defect
// footprint at the seed intensity, zero elsewhere, edges clamped.
func seedField(d setup.Defect, c setup.Compute, p Params, intensity float64) *mat.Dense {
	u := mat.NewDense(p.NX, p.NY, nil)
	for x := 0; x < p.NX; x++ {
		px := float64(x) * c.DeltaX
		if px < d.CenterX-d.SizeX/2 || px > d.CenterX+d.SizeX/2 {
			continue
		}
		for y := 0; y < p.NY; y++ {
			py := float64(y) * c.DeltaY
			if py < d.CenterY-d.SizeY/2 || py > d.CenterY+d.SizeY/2 {
				continue
			}
			u.Set(x, y, intensity)
		}
	}
	clampEdges(u, p)
	return u
}

// stepField applies the four-neighbor stencil to the interior. Edge
// rows and columns stay at zero, the heat-sink boundary condition.
func stepField(u *mat.Dense, p Params) *mat.Dense {
	next := mat.NewDense(p.NX, p.NY, nil)
	for x := 1; x < p.NX-1; x++ {
		for y := 1; y < p.NY-1; y++ {
			old := u.At(x, y)
			sum := u.At(x-1, y) + u.At(x+1, y) + u.At(x, y-1) + u.At(x, y+1)
			next.Set(x, y, Gamma*sum-4*Gamma*old+old)
		}
	}
	return next
}

func clampEdges(u *mat.Dense, p Params) {
	for x := 0; x < p.NX; x++ {
		u.Set(x, 0, 0)
		u.Set(x, p.NY-1, 0)
	}
	for y := 0; y < p.NY; y++ {
		u.Set(0, y, 0)
		u.Set(p.NX-1, y, 0)
	}
}
