package setup

import "math"

// DefaultMaxGridCells bounds the simulation array at about half a
// gigabyte of float64 cells. Degenerate grid/time configurations are
// rejected instead of allocated.
const DefaultMaxGridCells = 1 << 26

// Compute holds the grid resolution and diffusion parameters.
type Compute struct {
	DeltaX float64 // nm
	DeltaY float64 // nm
	DeltaZ float64 // nm

	// Diffusivity is the thermal diffusion coefficient D.
	Diffusivity float64

	// MaxTime is the simulated time budget. The iteration count is
	// proportional to it.
	MaxTime float64

	// MaxX, MaxY are the simulation domain extents in nm.
	MaxX float64
	MaxY float64

	// MaxGridCells overrides DefaultMaxGridCells when positive.
	MaxGridCells int
}

// Normalize pads the domain extents up by one grid delta where needed
// so that the cell counts along x and y come out odd.
func (c Compute) Normalize() Compute {
	nx := int(math.Ceil(c.MaxX / c.DeltaX))
	if nx%2 == 0 {
		c.MaxX = float64(nx+1) * c.DeltaX
	}
	ny := int(math.Ceil(c.MaxY / c.DeltaY))
	if ny%2 == 0 {
		c.MaxY = float64(ny+1) * c.DeltaY
	}
	return c
}

// NX returns the cell count along x.
func (c Compute) NX() int { return int(c.MaxX / c.DeltaX) }

// NY returns the cell count along y.
func (c Compute) NY() int { return int(c.MaxY / c.DeltaY) }

// CellBound returns the effective simulation array bound.
func (c Compute) CellBound() int {
	if c.MaxGridCells > 0 {
		return c.MaxGridCells
	}
	return DefaultMaxGridCells
}
