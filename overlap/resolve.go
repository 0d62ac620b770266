// Package overlap detects and corrects geometric inversions between
// adjacent resampled depth-slices.
package overlap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/maskvox/maskvox/config"
	"github.com/maskvox/maskvox/resample"
)

var log = config.NamedLogger("overlap")

// abortThreshold is the overlap fraction beyond which the run is
// aborted: the diffusion produced too many physically inconsistent
// slice orderings to patch over.
const abortThreshold = 0.25

// Resolve walks the depth-slices in increasing order and repairs
// height inversions between adjacent slices. The height of a cell is
// its intensity plus the slice depth; a later slice dipping below the
// previously accepted one is an overlap.
//
// The first inverted pair is merged into the elementwise minimum of
// the two raw slices, which replaces the output so far. Later
// inversions replace the offending slice with the average of its raw
// neighbors. When more than a quarter of the slices overlap the run
// fails: the diffusion coefficient (or time resolution) is too coarse.
func Resolve(in resample.Series) (resample.Series, error) {
	total := len(in.Depths)
	if total <= 2 {
		return in, nil
	}

	out := resample.Series{
		Depths: []float64{in.Depths[0]},
		Values: [][]float64{copySlice(in.Values[0])},
		NX:     in.NX,
		NY:     in.NY,
		DeltaX: in.DeltaX,
		DeltaY: in.DeltaY,
	}

	overlaps := 0
	for line := 1; line <= total-2; line++ {
		prevDepth := out.Depths[len(out.Depths)-1]
		prev := out.Values[len(out.Values)-1]
		cur := in.Values[line]
		next := in.Values[line+1]

		if !inverted(prev, prevDepth, cur, in.Depths[line]) {
			out.Depths = append(out.Depths, in.Depths[line])
			out.Values = append(out.Values, copySlice(cur))
		} else {
			overlaps++
			log.Infof("overlap exists at depth=%g", in.Depths[line])

			if line == 1 {
				merged := make([]float64, len(prev))
				for i := range merged {
					merged[i] = math.Min(prev[i], cur[i])
				}
				out.Depths = []float64{in.Depths[0]}
				out.Values = [][]float64{merged}
			} else {
				averaged := make([]float64, len(cur))
				for i := range averaged {
					averaged[i] = (prev[i] + next[i]) / 2
				}
				out.Depths = append(out.Depths, in.Depths[line])
				out.Values = append(out.Values, averaged)
			}
		}

		if fraction := float64(overlaps) / float64(total); fraction > abortThreshold {
			return resample.Series{}, fmt.Errorf(
				"[voxelizer] overlap: identified %.1f%% overlaps; too many overlaps, diffusion coefficient too high, reduce and try again",
				fraction*100,
			)
		}
	}

	out.Depths = append(out.Depths, in.Depths[total-1])
	out.Values = append(out.Values, copySlice(in.Values[total-1]))

	return out, nil
}

// inverted reports whether any cell of the current slice sits below
// the previously accepted slice once depths are added in.
func inverted(prev []float64, prevDepth float64, cur []float64, curDepth float64) bool {
	diff := make([]float64, len(cur))
	for i := range diff {
		diff[i] = (cur[i] + curDepth) - (prev[i] + prevDepth)
	}
	return floats.Min(diff) < 0
}

func copySlice(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	return out
}
