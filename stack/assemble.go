// Package stack assembles the ordered bottom-to-top material stack
// with thickness bookkeeping relative to the defect plane.
package stack

import (
	"math"

	"github.com/maskvox/maskvox/setup"
)

// DefectMaterialID is the material id of the inserted defect pseudo-layer.
const DefectMaterialID = "defect"

// AmbientMaterialID is the material id of air and of the top cap layer.
const AmbientMaterialID = "air"

// Layer is one bottom-to-top entry of the assembled stack.
type Layer struct {
	// Number is strictly increasing; a fractional suffix marks the
	// inserted defect pseudo-layer.
	Number    float64
	Material  string
	Thickness float64 // nm
	N         float64
	K         float64

	// Cumulative is the total thickness accumulated outward from the
	// defect plane: zero at the defect, positive above, negative below.
	Cumulative float64
}

// Stack is the assembled material stack. The ambient cap is tracked by
// thickness only and is not part of Layers.
type Stack struct {
	Layers []Layer

	// DefectIndex is the position of the defect pseudo-layer in
	// Layers, or -1 when the defect has a zero dimension.
	DefectIndex int

	// AmbientThickness is the parity-adjusted air cap thickness.
	AmbientThickness float64

	// Total is the stack thickness including the ambient cap. The
	// parity adjustment makes Total an odd multiple of DeltaZ.
	Total float64
}

// Assemble builds the material stack from the input layer table:
// groups reversed to bottom-to-top order, the multilayer group
// repeated, the ambient cap sized for z-parity, the defect
// pseudo-layer inserted at its seed index, and cumulative thickness
// computed outward from the defect plane. Missing groups contribute
// nothing.
func Assemble(s setup.Setup) Stack {
	layers := physicalLayers(s)

	total := s.AmbientThickness
	for _, layer := range layers {
		total += layer.Thickness
	}

	// The rounded total divided by DeltaZ must be odd: round down to
	// the next-lower boundary on an even quotient, otherwise up.
	quotient := math.Ceil(total / s.Compute.DeltaZ)
	var rounded float64
	if int(quotient)%2 == 0 {
		rounded = s.Compute.DeltaZ * (quotient - 1)
	} else {
		rounded = s.Compute.DeltaZ * quotient
	}
	ambient := s.AmbientThickness + (rounded - total)

	defectIndex := -1
	if s.Defect.Present() && len(layers) > 0 {
		seed := s.Defect.SeedLayer(len(layers) + 1)
		defect := Layer{
			Number:    float64(seed) + 0.1,
			Material:  DefectMaterialID,
			Thickness: 0,
		}
		layers = append(layers, Layer{})
		copy(layers[seed+1:], layers[seed:])
		layers[seed] = defect
		defectIndex = seed
	}

	accumulate(layers, defectIndex)

	return Stack{
		Layers:           layers,
		DefectIndex:      defectIndex,
		AmbientThickness: ambient,
		Total:            rounded,
	}
}

// MaxCumulative returns the largest cumulative thickness above the
// defect plane.
func (s Stack) MaxCumulative() float64 {
	max := 0.0
	for _, layer := range s.Layers {
		if layer.Cumulative > max {
			max = layer.Cumulative
		}
	}
	return max
}

// DepthSeries returns the cumulative thickness of every at/above-defect
// layer in layer order. These are the depth values the resampler must
// produce.
func (s Stack) DepthSeries() []float64 {
	depths := []float64{}
	for _, layer := range s.Layers {
		if layer.Cumulative >= 0 {
			depths = append(depths, layer.Cumulative)
		}
	}
	return depths
}

// Underlayers returns the layers below the defect plane in layer order.
func (s Stack) Underlayers() []Layer {
	layers := []Layer{}
	for _, layer := range s.Layers {
		if layer.Cumulative < 0 {
			layers = append(layers, layer)
		}
	}
	return layers
}

func physicalLayers(s setup.Setup) []Layer {
	layers := []Layer{}

	appendGroup := func(rows []setup.LayerRow) {
		for _, row := range rows {
			layers = append(layers, Layer{
				Number:    float64(len(layers) + 1),
				Material:  row.Material,
				Thickness: row.Thickness,
				N:         row.N,
				K:         row.K,
			})
		}
	}

	appendGroup(s.Layers.GroupBottomUp(setup.Substrate))
	pair := s.Layers.GroupBottomUp(setup.Multilayer)
	for i := 0; i < s.MLRepeat; i++ {
		appendGroup(pair)
	}
	appendGroup(s.Layers.GroupBottomUp(setup.Capping))
	appendGroup(s.Layers.GroupBottomUp(setup.Absorber))

	return layers
}

// accumulate fills Cumulative outward from the defect plane. Without a
// defect pseudo-layer the first physical layer is the reference
// surface.
func accumulate(layers []Layer, defectIndex int) {
	if len(layers) == 0 {
		return
	}

	reference := defectIndex
	if reference < 0 {
		reference = 0
	}

	layers[reference].Cumulative = 0
	for i := reference + 1; i < len(layers); i++ {
		layers[i].Cumulative = layers[i].Thickness + layers[i-1].Cumulative
	}
	for i := reference - 1; i >= 0; i-- {
		layers[i].Cumulative = layers[i+1].Cumulative - layers[i].Thickness
	}
}
