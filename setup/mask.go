package setup

import (
	"github.com/ctessum/geom"
)

// Mask carries the absorber pattern for one mask layer: the extracted
// polygons in mask units and the tone convention.
type Mask struct {
	Polygons []geom.Polygon

	// PosTone selects positive tone: points contained in a polygon are
	// cleared from the absorber. Negative tone preserves them.
	PosTone bool
}
