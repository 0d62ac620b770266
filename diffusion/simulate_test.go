package diffusion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/maskvox/maskvox/setup"
	"github.com/maskvox/maskvox/stack"
)

func testSetup() setup.Setup {
	s := setup.NewSetup()
	s.Layers = setup.LayerTable{
		{Type: setup.Absorber, Material: "TaN", Thickness: 50, N: 0.93, K: 0.041},
		{Type: setup.Capping, Material: "Ru", Thickness: 3, N: 0.886, K: 0.017},
		{Type: setup.Multilayer, Material: "Si", Thickness: 2, N: 0.999, K: 0.001},
		{Type: setup.Multilayer, Material: "Mo", Thickness: 2, N: 0.921, K: 0.006},
		{Type: setup.Substrate, Material: "Qz", Thickness: 100, N: 0.978, K: 0.011},
	}
	s.MLRepeat = 2
	s.Defect = setup.Defect{
		CenterX: 16, CenterY: 16,
		SizeX: 15, SizeY: 15, Thickness: 5,
		SeedPct:  50,
		Material: "Si",
	}
	// D=0.25 with a 2nm grid makes dt exactly 4.
	s.Compute = setup.Compute{
		DeltaX: 2, DeltaY: 2, DeltaZ: 1,
		Diffusivity: 0.25,
		MaxTime:     100,
		MaxX:        34, MaxY: 34,
	}
	return s
}

func TestDerive(t *testing.T) {
	s := testSetup()
	assembled := stack.Assemble(s)

	p, err := Derive(s.Compute, assembled.MaxCumulative())
	require.NoError(t, err)

	assert.Equal(t, 4.0, p.DeltaT)
	assert.Equal(t, 25, p.Steps)
	assert.Equal(t, 17, p.NX)
	assert.Equal(t, 17, p.NY)
	// round(55 * 1.25) = 69
	assert.InDelta(t, 100.0/69.0, p.Factor, 1e-12)
}

func TestGammaIsExactlyOneQuarter(t *testing.T) {
	assert.Equal(t, 0.25, Gamma)

	// The derived dt reproduces Gamma for arbitrary D and grid deltas.
	for _, d := range []float64{0.01, 0.1, 0.25, 3.7} {
		deltaT := (2.0 * 2.0) / (4 * d)
		assert.InDelta(t, 0.25, d*deltaT/(2.0*2.0), 1e-12)
	}
}

func TestDeriveRejectsDegenerateConfigs(t *testing.T) {
	s := testSetup()

	t.Run("ZeroDiffusivity", func(t *testing.T) {
		c := s.Compute
		c.Diffusivity = 0
		_, err := Derive(c, 55)
		assert.Error(t, err)
	})

	t.Run("EmptyStack", func(t *testing.T) {
		_, err := Derive(s.Compute, 0)
		assert.Error(t, err)
	})

	t.Run("CellBoundExceeded", func(t *testing.T) {
		c := s.Compute
		c.MaxGridCells = 100
		_, err := Derive(c, 55)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cell bound")
	})

	t.Run("TooFewTimeSteps", func(t *testing.T) {
		c := s.Compute
		c.MaxTime = 8 // two steps, both eaten by the warm-up trim
		_, err := Derive(c, 55)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "extend the simulation time")
	})
}

func TestRunTrimsWarmupAndRezeroesTime(t *testing.T) {
	s := testSetup()
	assembled := stack.Assemble(s)

	series, err := Run(s, assembled)
	require.NoError(t, err)

	assert.Equal(t, 23, len(series.Times))
	assert.Equal(t, 23, len(series.Values))
	assert.Equal(t, 0.0, series.Times[0])

	p, derr := Derive(s.Compute, assembled.MaxCumulative())
	require.NoError(t, derr)
	for i := 1; i < len(series.Times); i++ {
		assert.InDelta(t, p.DeltaT/p.Factor, series.Times[i]-series.Times[i-1], 1e-9)
	}
}

func TestRunBoundaryZeroing(t *testing.T) {
	s := testSetup()
	// Park the defect footprint against the domain edge so the clamp
	// actually has something to clear.
	s.Defect.CenterX = 0
	s.Defect.CenterY = 0
	assembled := stack.Assemble(s)

	series, err := Run(s, assembled)
	require.NoError(t, err)

	for _, values := range series.Values {
		for x := 0; x < series.NX; x++ {
			assert.Equal(t, 0.0, values[x*series.NY+0])
			assert.Equal(t, 0.0, values[x*series.NY+series.NY-1])
		}
		for y := 0; y < series.NY; y++ {
			assert.Equal(t, 0.0, values[0*series.NY+y])
			assert.Equal(t, 0.0, values[(series.NX-1)*series.NY+y])
		}
	}
}

func TestRunStaysBoundedAndNonNegative(t *testing.T) {
	s := testSetup()
	assembled := stack.Assemble(s)

	series, err := Run(s, assembled)
	require.NoError(t, err)

	for _, values := range series.Values {
		min, max := floats.Min(values), floats.Max(values)
		assert.True(t, min >= 0, "intensity went negative: %g", min)
		// The scaled seed intensity is the defect thickness; diffusion
		// with a heat-sink boundary can only lower the peak.
		assert.True(t, max <= s.Defect.Thickness+1e-9, "intensity blew up: %g", max)
		for _, v := range values {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		}
	}
}

func TestRunZeroDefectProducesZeroField(t *testing.T) {
	s := testSetup()
	s.Defect.SizeX = 0
	assembled := stack.Assemble(s)

	series, err := Run(s, assembled)
	require.NoError(t, err)

	for _, values := range series.Values {
		assert.Equal(t, 0.0, floats.Max(values))
		assert.Equal(t, 0.0, floats.Min(values))
	}
}
