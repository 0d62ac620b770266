// Package resample converts the simulated time series onto the
// physical thickness grid of the material stack.
package resample

import (
	"fmt"
	"math"
	"sort"

	"github.com/maskvox/maskvox/diffusion"
)


// Series holds one intensity slice per resolved depth value, in
// increasing depth order. Slices are flattened with y varying fastest
// (index x*NY+y).
type Series struct {
	Depths []float64
	Values [][]float64

	NX     int
	NY     int
	DeltaX float64
	DeltaY float64
}

// ToDepths restricts the simulated series to exactly the requested
// depth values; all other time samples are discarded. A depth matching
// a sampled time is reused unchanged; anything else is linearly
// interpolated between its two bracketing samples. A depth beyond the
// last sample is an insufficient-time failure.
func ToDepths(sim diffusion.Series, depths []float64) (Series, error) {
	out := Series{
		Depths: make([]float64, 0, len(depths)),
		Values: make([][]float64, 0, len(depths)),
		NX:     sim.NX,
		NY:     sim.NY,
		DeltaX: sim.DeltaX,
		DeltaY: sim.DeltaY,
	}

	for _, depth := range depths {
		values, err := sliceAt(sim, depth)
		if err != nil {
			return Series{}, err
		}
		out.Depths = append(out.Depths, depth)
		out.Values = append(out.Values, values)
	}

	sortByDepth(&out)
	return out, nil
}

func sliceAt(sim diffusion.Series, depth float64) ([]float64, error) {
	for i, t := range sim.Times {
		if t == depth {
			values := make([]float64, len(sim.Values[i]))
			copy(values, sim.Values[i])
			return values, nil
		}
	}

	nearest := nearestIndex(sim.Times, depth)
	lo, hi := nearest, nearest+1
	if sim.Times[nearest] > depth {
		lo, hi = nearest-1, nearest
	}
	if hi >= len(sim.Times) {
		return nil, fmt.Errorf(
			"[voxelizer] resample: insufficient simulated data to interpolate depth %g; extend the simulation time and retry",
			depth,
		)
	}

	tLo, tHi := sim.Times[lo], sim.Times[hi]
	vLo, vHi := sim.Values[lo], sim.Values[hi]
	values := make([]float64, len(vLo))
	for i := range values {
		values[i] = vLo[i] + (vHi[i]-vLo[i])/(tHi-tLo)*(depth-tLo)
	}
	return values, nil
}

func nearestIndex(times []float64, depth float64) int {
	nearest := 0
	best := math.Inf(1)
	for i, t := range times {
		if d := math.Abs(t - depth); d < best {
			best = d
			nearest = i
		}
	}
	return nearest
}

func sortByDepth(s *Series) {
	order := make([]int, len(s.Depths))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return s.Depths[order[i]] < s.Depths[order[j]]
	})

	depths := make([]float64, len(s.Depths))
	values := make([][]float64, len(s.Values))
	for i, idx := range order {
		depths[i] = s.Depths[idx]
		values[i] = s.Values[idx]
	}
	s.Depths = depths
	s.Values = values
}
