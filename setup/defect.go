package setup

import (
	"github.com/maskvox/maskvox/validate"
)

// Defect describes the localized defect seeded into the material stack.
// All distances are in mask units (nm).
type Defect struct {
	CenterX float64
	CenterY float64

	SizeX     float64
	SizeY     float64
	Thickness float64

	// SeedPct positions the defect vertically as a percentage of the
	// stack layer count. Values above 100 are clamped.
	SeedPct float64

	// Material names the stack material the defect optical constants
	// are copied from.
	Material string
}

// Present reports whether the defect has positive extent in all three
// dimensions. A defect with any zero dimension contributes no
// pseudo-layer to the stack.
func (d Defect) Present() bool {
	return d.SizeX > 0 && d.SizeY > 0 && d.Thickness > 0
}

// SeedLayer converts the seed percentage to a concrete layer index in
// [1, maxLayers-1], with maxLayers-1 being the top surface.
func (d Defect) SeedLayer(maxLayers int) int {
	pct := validate.ClampMax(d.SeedPct, 100)
	return 1 + int(float64(maxLayers-2)*pct/100.0)
}
