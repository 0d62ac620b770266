package maskvox

import (
	"github.com/maskvox/maskvox/stack"
)

// Result contains the serialized voxel grid output.
type Result struct {
	// FileName is the grid file name, encoding the run parameters the
	// way the solver tooling expects.
	FileName string

	// Files maps output file names to serialized content.
	Files map[string]string

	// Legend maps material ids to the material numbers used in the
	// grid stream.
	Legend stack.Legend
}
