// Package maskvox implements the photomask defect thermal-migration
// voxelizer: it models how a localized defect displaces the mask
// material stack and produces a voxel grid of material identifiers for
// an external electromagnetic solver.
package maskvox

import (
	"fmt"

	"github.com/maskvox/maskvox/config"
	"github.com/maskvox/maskvox/diffusion"
	"github.com/maskvox/maskvox/format"
	"github.com/maskvox/maskvox/mtv"
	"github.com/maskvox/maskvox/overlap"
	"github.com/maskvox/maskvox/pattern"
	"github.com/maskvox/maskvox/resample"
	"github.com/maskvox/maskvox/setup"
	"github.com/maskvox/maskvox/stack"
)

var log = config.NamedLogger("voxelizer")

const outputFilePrefix = "Binary_mask_2u"

// Convert runs the voxelization pipeline to completion: stack
// assembly, diffusion simulation, depth resampling, overlap
// resolution, mask classification and grid serialization. A failed run
// produces no output.
func Convert(s setup.Setup) (Result, error) {
	if err := checkSetupCompleteness(s); err != nil {
		return Result{}, err
	}
	s.Compute = s.Compute.Normalize()

	assembled := stack.Assemble(s)
	legend := stack.BuildLegend(s)
	log.Infof("(1) reading mask stack complete: %d layers, total thickness %gnm",
		len(assembled.Layers), assembled.Total)

	sim, err := diffusion.Run(s, assembled)
	if err != nil {
		return Result{}, err
	}
	log.Infof("(2) heat equation calculation complete")

	resampled, err := resample.ToDepths(sim, assembled.DepthSeries())
	if err != nil {
		return Result{}, err
	}
	log.Infof("(3) 2D heat data generation complete")

	resolved, err := overlap.Resolve(resampled)
	if err != nil {
		return Result{}, err
	}
	log.Infof("(4) detecting overlap complete")

	grid := mtv.Build(resolved, assembled, s)
	log.Infof("(5) merging thickness with material complete")

	pattern.Apply(grid, s.Mask, s.Layers.AbsorberMaterials())
	log.Infof("(6) applying mask to the absorber layer complete")

	content, err := mtv.Serialize(grid, legend)
	if err != nil {
		return Result{}, err
	}

	name := outputFileName(s, assembled)
	log.Infof("(7) writing output complete: %s", name)

	return Result{
		FileName: name,
		Files:    map[string]string{name: content},
		Legend:   legend,
	}, nil
}

func checkSetupCompleteness(s setup.Setup) error {
	switch {
	case len(s.Layers) == 0:
		return GeneralSetupError("material layer table is empty")
	case s.Compute.DeltaX <= 0 || s.Compute.DeltaY <= 0 || s.Compute.DeltaZ <= 0:
		return GeneralSetupError("grid deltas must be positive, got %gx%gx%g",
			s.Compute.DeltaX, s.Compute.DeltaY, s.Compute.DeltaZ)
	case s.Compute.MaxX <= 0 || s.Compute.MaxY <= 0:
		return GeneralSetupError("domain extents must be positive, got %gx%g",
			s.Compute.MaxX, s.Compute.MaxY)
	}
	return nil
}

// outputFileName encodes diffusivity, domain, resolution and defect
// parameters into the grid file name.
func outputFileName(s setup.Setup, st stack.Stack) string {
	seed := st.DefectIndex
	if seed < 0 {
		seed = s.Defect.SeedLayer(len(st.Layers) + 1)
	}

	resolution := s.Compute.DeltaX
	if s.Compute.DeltaY > resolution {
		resolution = s.Compute.DeltaY
	}
	if s.Compute.DeltaZ > resolution {
		resolution = s.Compute.DeltaZ
	}

	return fmt.Sprintf("%s%s_%sx%sx%s_r%s_d%sx%sx%s_l%dat%sx%s.mtvdat",
		outputFilePrefix,
		format.Float(s.Compute.Diffusivity),
		format.Float(s.Compute.MaxX),
		format.Float(s.Compute.MaxY),
		format.Float(mtv.OddTotal(st.Total, s.Compute.DeltaZ)),
		format.Float(resolution),
		format.Float(s.Defect.SizeX),
		format.Float(s.Defect.SizeY),
		format.Float(s.Defect.Thickness),
		seed,
		format.Float(s.Defect.CenterX),
		format.Float(s.Defect.CenterY),
	)
}
