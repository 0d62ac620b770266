// Package setup implement setup.Setup, which contains voxelizer input data.
package setup

// Model defaults carried over from the reference mask model.
const (
	DefaultMLRepeat         = 40
	DefaultAmbientThickness = 220 // nm
	DefaultDefectMaterial   = "Si"
)

// Setup contains all voxelizer input data. It is constructed once by
// the caller and passed into each pipeline stage; no stage reads
// ambient state.
type Setup struct {
	Layers LayerTable

	// MLRepeat is the repeat count applied to the multilayer group.
	MLRepeat int

	// AmbientThickness is the base thickness of the air cap appended
	// on top of the stack, before the parity adjustment.
	AmbientThickness float64

	Defect  Defect
	Compute Compute
	Mask    Mask
}

// NewSetup constructor with the model defaults.
func NewSetup() Setup {
	return Setup{
		Layers:           LayerTable{},
		MLRepeat:         DefaultMLRepeat,
		AmbientThickness: DefaultAmbientThickness,
		Defect: Defect{
			Material: DefaultDefectMaterial,
		},
	}
}
