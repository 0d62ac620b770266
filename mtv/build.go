// Package mtv merges the resolved depth-slices with the material stack
// onto a uniform z-resolution voxel grid and serializes the result to
// the MTVDAT grid format.
package mtv

import (
	"math"
	"sort"

	"github.com/maskvox/maskvox/config"
	"github.com/maskvox/maskvox/resample"
	"github.com/maskvox/maskvox/setup"
	"github.com/maskvox/maskvox/stack"
	"github.com/maskvox/maskvox/validate"
)

var log = config.NamedLogger("mtv")

// airHeadroom is the number of z-deltas of air kept above the highest
// material surface when the stack already exceeds the adjusted total.
const airHeadroom = 10

// Surface is one material surface: the absolute height of the top of a
// layer at every (x,y) column.
type Surface struct {
	LayerNumber float64
	Material    string
	Thickness   float64

	// Heights is flattened with y varying fastest (index x*NY+y).
	Heights []float64
}

// Grid is the final voxel grid: a material id per (x,y,z) cell.
type Grid struct {
	Xs []float64
	Ys []float64
	Zs []float64

	NX int
	NY int

	// materials is indexed [zi][yi*NX+xi], matching the (z,y,x)
	// serialization order.
	materials [][]string
}

// NewGrid allocates a grid over the given axes with every cell set to
// the ambient material.
func NewGrid(xs, ys, zs []float64) *Grid {
	grid := &Grid{Xs: xs, Ys: ys, Zs: zs, NX: len(xs), NY: len(ys)}
	grid.materials = make([][]string, len(zs))
	for zi := range grid.materials {
		grid.materials[zi] = make([]string, grid.NX*grid.NY)
		for i := range grid.materials[zi] {
			grid.materials[zi][i] = stack.AmbientMaterialID
		}
	}
	return grid
}

// At returns the material id at the given cell.
func (g *Grid) At(xi, yi, zi int) string {
	return g.materials[zi][yi*g.NX+xi]
}

// Set assigns the material id at the given cell.
func (g *Grid) Set(xi, yi, zi int, material string) {
	g.materials[zi][yi*g.NX+xi] = material
}

// Build joins the resolved depth-slices with their material layers,
// fills in the constant surfaces of the layers below the defect plane,
// caps the stack with ambient air sized to the parity-adjusted total,
// and quantizes everything onto the z-resolution grid.
func Build(res resample.Series, st stack.Stack, s setup.Setup) *Grid {
	if len(st.Layers) == 0 {
		return emptyGrid(res, s)
	}

	shift := math.Abs(st.Layers[0].Cumulative)
	surfaces := joinSlices(res, st, shift)

	// Without a defect pseudo-layer there is no defect-plane offset to
	// anchor against: push everything up by the first layer thickness.
	if !s.Defect.Present() {
		for _, surface := range surfaces {
			for i := range surface.Heights {
				surface.Heights[i] += st.Layers[0].Thickness
			}
		}
	}

	cells := res.NX * res.NY
	for _, layer := range st.Underlayers() {
		surfaces = append(surfaces, constantSurface(
			layer.Number, layer.Material, layer.Thickness,
			layer.Cumulative+shift+layer.Thickness, cells,
		))
	}

	surfaces = append(surfaces, airCap(surfaces, st, s, cells))

	sort.SliceStable(surfaces, func(i, j int) bool {
		return surfaces[i].LayerNumber < surfaces[j].LayerNumber
	})

	return quantize(surfaces, res, s)
}

// joinSlices matches each at/above-defect layer to the resolved slice
// at its cumulative thickness (both rounded to 0.1) and converts the
// slice intensities into absolute surface heights. Layers without a
// matching slice are skipped.
func joinSlices(res resample.Series, st stack.Stack, shift float64) []Surface {
	surfaces := []Surface{}
	for _, layer := range st.Layers {
		if layer.Cumulative < 0 {
			continue
		}

		matched := -1
		for j, depth := range res.Depths {
			if roundTenth(depth) == roundTenth(layer.Cumulative) {
				matched = j
				break
			}
		}
		if matched < 0 {
			log.Infof("no resolved slice for layer %g at depth %g", layer.Number, layer.Cumulative)
			continue
		}

		heights := make([]float64, len(res.Values[matched]))
		for i, v := range res.Values[matched] {
			heights[i] = v + res.Depths[matched] + shift
		}
		surfaces = append(surfaces, Surface{
			LayerNumber: layer.Number,
			Material:    layer.Material,
			Thickness:   layer.Thickness,
			Heights:     heights,
		})
	}
	return surfaces
}

// airCap sizes the ambient top layer: it reaches the parity-adjusted
// total thickness, or ten z-deltas above the highest material surface
// when that already exceeds the total.
func airCap(surfaces []Surface, st stack.Stack, s setup.Setup, cells int) Surface {
	total := OddTotal(st.Total, s.Compute.DeltaZ)

	current := 0.0
	maxNumber := 0.0
	for _, surface := range surfaces {
		for _, h := range surface.Heights {
			if h > current {
				current = h
			}
		}
		if surface.LayerNumber > maxNumber {
			maxNumber = surface.LayerNumber
		}
	}
	current += float64(airHeadroom) * s.Compute.DeltaZ

	height := total
	if current >= total {
		height = current
	}

	return constantSurface(
		maxNumber+0.1, stack.AmbientMaterialID, total-current, height, cells,
	)
}

// OddTotal strips rounding error from the total and keeps it an odd
// multiple of the z-delta.
func OddTotal(total float64, deltaZ float64) float64 {
	total -= deltaZ * (total/deltaZ - math.Floor(total/deltaZ))
	if int(math.Floor(total/deltaZ))%2 == 0 {
		total += deltaZ
	}
	return total
}

func constantSurface(number float64, material string, thickness, height float64, cells int) Surface {
	heights := make([]float64, cells)
	for i := range heights {
		heights[i] = height
	}
	return Surface{
		LayerNumber: number,
		Material:    material,
		Thickness:   thickness,
		Heights:     heights,
	}
}

// quantize forward-matches every (x,y,z) cell to the nearest surface
// at or above z. Duplicate surfaces at the same (x,y) height collapse
// to the lowest layer number.
func quantize(surfaces []Surface, res resample.Series, s setup.Setup) *Grid {
	grid := emptyGrid(res, s)

	zMax := 0.0
	for _, surface := range surfaces {
		for _, h := range surface.Heights {
			if h > zMax {
				zMax = h
			}
		}
	}
	for k := 0; float64(k)*s.Compute.DeltaZ < zMax+s.Compute.DeltaZ; k++ {
		grid.Zs = append(grid.Zs, float64(k)*s.Compute.DeltaZ)
	}
	grid.materials = make([][]string, len(grid.Zs))
	for zi := range grid.materials {
		grid.materials[zi] = make([]string, grid.NX*grid.NY)
	}

	type column struct {
		height   float64
		material string
	}
	for xi := 0; xi < grid.NX; xi++ {
		for yi := 0; yi < grid.NY; yi++ {
			entries := []column{}
			for _, surface := range surfaces {
				h := surface.Heights[xi*grid.NY+yi]
				duplicate := false
				for _, e := range entries {
					if validate.NearZero(e.height - h) {
						duplicate = true
						break
					}
				}
				if !duplicate {
					entries = append(entries, column{height: h, material: surface.Material})
				}
			}
			sort.SliceStable(entries, func(i, j int) bool {
				return entries[i].height < entries[j].height
			})

			next := 0
			for zi, z := range grid.Zs {
				for next < len(entries) && entries[next].height < z {
					next++
				}
				material := stack.AmbientMaterialID
				if next < len(entries) {
					material = entries[next].material
				}
				grid.Set(xi, yi, zi, material)
			}
		}
	}

	return grid
}

func emptyGrid(res resample.Series, s setup.Setup) *Grid {
	grid := &Grid{NX: res.NX, NY: res.NY}
	for xi := 0; xi < res.NX; xi++ {
		grid.Xs = append(grid.Xs, float64(xi)*s.Compute.DeltaX)
	}
	for yi := 0; yi < res.NY; yi++ {
		grid.Ys = append(grid.Ys, float64(yi)*s.Compute.DeltaY)
	}
	return grid
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
