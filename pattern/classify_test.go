package pattern

import (
	"testing"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/assert"

	"github.com/maskvox/maskvox/mtv"
	"github.com/maskvox/maskvox/setup"
	"github.com/maskvox/maskvox/stack"
)

// absorberGrid is a 3x3 grid with an absorber plane at z=0 and air
// above it.
func absorberGrid() *mtv.Grid {
	grid := mtv.NewGrid(
		[]float64{0, 1, 2},
		[]float64{0, 1, 2},
		[]float64{0, 1},
	)
	for xi := 0; xi < 3; xi++ {
		for yi := 0; yi < 3; yi++ {
			grid.Set(xi, yi, 0, "TaN")
		}
	}
	return grid
}

func rectangle(xMin, yMin, xMax, yMax float64) geom.Polygon {
	return geom.Polygon{{
		{X: xMin, Y: yMin}, {X: xMax, Y: yMin}, {X: xMax, Y: yMax}, {X: xMin, Y: yMax},
	}}
}

var absorbers = map[string]bool{"TaN": true}

func TestApplyPositiveTone(t *testing.T) {
	grid := absorberGrid()
	mask := setup.Mask{
		Polygons: []geom.Polygon{rectangle(-0.5, -0.5, 1.5, 2.5)},
		PosTone:  true,
	}

	Apply(grid, mask, absorbers)

	// Columns x=0,1 are inside the polygon and lose their absorber;
	// x=2 keeps it.
	for yi := 0; yi < 3; yi++ {
		assert.Equal(t, stack.AmbientMaterialID, grid.At(0, yi, 0))
		assert.Equal(t, stack.AmbientMaterialID, grid.At(1, yi, 0))
		assert.Equal(t, "TaN", grid.At(2, yi, 0))
	}
}

func TestApplyNegativeTone(t *testing.T) {
	grid := absorberGrid()
	mask := setup.Mask{
		Polygons: []geom.Polygon{rectangle(-0.5, -0.5, 1.5, 2.5)},
		PosTone:  false,
	}

	Apply(grid, mask, absorbers)

	for yi := 0; yi < 3; yi++ {
		assert.Equal(t, "TaN", grid.At(0, yi, 0))
		assert.Equal(t, "TaN", grid.At(1, yi, 0))
		assert.Equal(t, stack.AmbientMaterialID, grid.At(2, yi, 0))
	}
}

func TestApplyLeavesNonAbsorberVoxels(t *testing.T) {
	grid := absorberGrid()
	grid.Set(0, 0, 0, "Qz")
	grid.Set(0, 0, 1, "defect")
	mask := setup.Mask{
		Polygons: []geom.Polygon{rectangle(-0.5, -0.5, 2.5, 2.5)},
		PosTone:  true,
	}

	Apply(grid, mask, absorbers)

	assert.Equal(t, "Qz", grid.At(0, 0, 0))
	assert.Equal(t, "defect", grid.At(0, 0, 1))
	assert.Equal(t, stack.AmbientMaterialID, grid.At(1, 1, 0))
}

func TestApplyEdgePointCountsAsContained(t *testing.T) {
	grid := absorberGrid()
	// The left polygon edge runs exactly through the x=1 columns.
	mask := setup.Mask{
		Polygons: []geom.Polygon{rectangle(1, -0.5, 2.5, 2.5)},
		PosTone:  true,
	}

	Apply(grid, mask, absorbers)

	assert.Equal(t, "TaN", grid.At(0, 0, 0))
	assert.Equal(t, stack.AmbientMaterialID, grid.At(1, 0, 0))
	assert.Equal(t, stack.AmbientMaterialID, grid.At(2, 0, 0))
}

func TestApplyMultiplePolygons(t *testing.T) {
	grid := absorberGrid()
	mask := setup.Mask{
		Polygons: []geom.Polygon{
			rectangle(-0.5, -0.5, 0.5, 0.5),
			rectangle(1.5, 1.5, 2.5, 2.5),
		},
		PosTone: true,
	}

	Apply(grid, mask, absorbers)

	assert.Equal(t, stack.AmbientMaterialID, grid.At(0, 0, 0))
	assert.Equal(t, stack.AmbientMaterialID, grid.At(2, 2, 0))
	assert.Equal(t, "TaN", grid.At(1, 1, 0))
	assert.Equal(t, "TaN", grid.At(0, 2, 0))
}

func TestApplyNoAbsorbersIsNoop(t *testing.T) {
	grid := absorberGrid()
	mask := setup.Mask{
		Polygons: []geom.Polygon{rectangle(-0.5, -0.5, 2.5, 2.5)},
		PosTone:  true,
	}

	Apply(grid, mask, map[string]bool{})

	assert.Equal(t, "TaN", grid.At(0, 0, 0))
}

func TestApplyEmptyMaskNegativeToneClearsAll(t *testing.T) {
	grid := absorberGrid()

	// No polygons and negative tone: nothing is contained, so the
	// whole absorber plane is cleared.
	Apply(grid, setup.Mask{PosTone: false}, absorbers)

	for xi := 0; xi < 3; xi++ {
		for yi := 0; yi < 3; yi++ {
			assert.Equal(t, stack.AmbientMaterialID, grid.At(xi, yi, 0))
		}
	}
}
