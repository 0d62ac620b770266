// Package pattern classifies voxel columns against the mask's absorber
// polygons and applies the tone convention.
package pattern

import (
	"github.com/ctessum/geom"

	"github.com/maskvox/maskvox/mtv"
	"github.com/maskvox/maskvox/setup"
	"github.com/maskvox/maskvox/stack"
	"github.com/maskvox/maskvox/validate"
)

// containTolerance buffers containment tests so points on a polygon
// edge count as contained, in mask units.
const containTolerance = 1e-9

// Apply tests every (x,y) column against the absorber polygons and
// substitutes air for absorber material where containment matches the
// tone: positive tone clears contained points, negative tone clears
// everything else. Non-absorber voxels pass through untouched.
func Apply(grid *mtv.Grid, mask setup.Mask, absorbers map[string]bool) {
	if len(absorbers) == 0 {
		return
	}

	contained := containedColumns(grid, mask)
	for xi := 0; xi < grid.NX; xi++ {
		for yi := 0; yi < grid.NY; yi++ {
			if contained[xi*grid.NY+yi] != mask.PosTone {
				continue
			}
			for zi := range grid.Zs {
				if absorbers[grid.At(xi, yi, zi)] {
					grid.Set(xi, yi, zi, stack.AmbientMaterialID)
				}
			}
		}
	}
}

// containedColumns evaluates point-in-polygon containment once per
// distinct (x,y) column; a column confirmed inside one polygon is
// never tested against the rest.
func containedColumns(grid *mtv.Grid, mask setup.Mask) []bool {
	contained := make([]bool, grid.NX*grid.NY)
	for _, polygon := range mask.Polygons {
		bounds := polygon.Bounds()
		for xi, x := range grid.Xs {
			for yi, y := range grid.Ys {
				if contained[xi*grid.NY+yi] {
					continue
				}
				if !validate.InRange(bounds.Min.X-containTolerance, bounds.Max.X+containTolerance, x) ||
					!validate.InRange(bounds.Min.Y-containTolerance, bounds.Max.Y+containTolerance, y) {
					continue
				}
				point := geom.Point{X: x, Y: y}
				if point.Within(polygon) != geom.Outside {
					contained[xi*grid.NY+yi] = true
				}
			}
		}
	}
	return contained
}
