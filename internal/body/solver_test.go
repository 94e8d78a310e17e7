package body

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icebody/internal/eos"
	"icebody/internal/ice"
)

func enceladusBody() *Body {
	return &Body{
		Name: "enceladus",
		Bulk: Bulk{
			Radius: 252.1e3,
			Mass:   1.08022e20,
			TSurf:  75.0,
			PSurf:  0.0,
			MoI:    0.335,
		},
		Layers: []PhaseSetup{
			{Phase: ice.I, Steps: 100, TBot: 272.356, PBot: 20.0},
		},
		EquilibriumHeat: true,
	}
}

func titanLikeBody() *Body {
	return &Body{
		Name: "titan",
		Bulk: Bulk{
			Radius: 2574.7e3,
			Mass:   1.3452e23,
			TSurf:  93.7,
			PSurf:  0.15,
			MoI:    0.3414,
		},
		Layers: []PhaseSetup{
			{Phase: ice.I, Steps: 120, TBot: 255.0, PBot: 155.0},
			{Phase: ice.III, Steps: 40, TBot: 258.5, PBot: 350.0},
			{Phase: ice.V, Steps: 40, TBot: 268.0, PBot: 560.0},
		},
		EquilibriumHeat: true,
	}
}

func TestSolveSinglePhase(t *testing.T) {
	b := enceladusBody()
	s := NewSolver(nil, nil)

	res, err := s.Solve(b)
	require.NoError(t, err)
	require.Len(t, res.Phases, 1)

	st := res.Stack
	last := st.Len() - 1
	assert.Equal(t, b.ShellCount(), st.Len())

	// Boundary conditions pin both ends of the profile.
	assert.InDelta(t, 75.0, st.T[0], 1e-9)
	assert.InDelta(t, 272.356, st.T[last], 1e-9)
	assert.InDelta(t, 0.0, st.P[0], 1e-12)
	assert.InDelta(t, 20.0, st.P[last], 1e-9)

	// Structural invariants over the whole stack.
	require.NoError(t, st.Validate(0, last))
	assert.Less(t, st.Radius[last], st.Radius[0])
	for i := 0; i <= last; i++ {
		assert.Equal(t, ice.I, st.Phase[i], "shell %d", i)
		assert.Positive(t, st.T[i])
		assert.Positive(t, st.G[i])
	}

	reg := res.Phases[0].Regime
	assert.Positive(t, reg.HeatFlow)
	assert.Positive(t, reg.Rayleigh)
}

func TestSolveMultiPhase(t *testing.T) {
	b := titanLikeBody()
	s := NewSolver(nil, nil)

	res, err := s.Solve(b)
	require.NoError(t, err)
	require.Len(t, res.Phases, 3)

	st := res.Stack
	assert.Equal(t, 201, st.Len())

	// Each phase bottom sits at its transition pressure. The transition
	// temperature is reached there too, though a convecting deeper phase
	// may then pull the shared shell up toward its own interior
	// temperature through its lid law, so intermediate boundaries are
	// only bounded from below.
	start := 0
	for li, layer := range b.Layers {
		end := start + layer.Steps
		assert.InDelta(t, layer.PBot, st.P[end], 1e-9, "layer %d bottom pressure", li)
		assert.GreaterOrEqual(t, st.T[end], layer.TBot-1e-9, "layer %d bottom temperature", li)
		assert.Equal(t, layer.Phase, res.Phases[li].Phase)
		start = end
	}
	assert.InDelta(t, 268.0, st.T[200], 1e-9, "deepest transition temperature")

	// Shared boundary shells carry the deeper phase's tag.
	assert.Equal(t, ice.III, st.Phase[120])
	assert.Equal(t, ice.V, st.Phase[160])
	assert.Equal(t, ice.V, st.Phase[200])

	require.NoError(t, st.Validate(0, st.Len()-1))

	// Temperature never decreases inward across the whole body.
	for i := 1; i < st.Len(); i++ {
		assert.GreaterOrEqual(t, st.T[i], st.T[i-1], "shell %d", i)
	}
}

func TestSolveConstantOracleOverride(t *testing.T) {
	b := enceladusBody()
	oracles := Oracles{ice.I: eos.NewConstant(920, 2100, 1.6e-4, 2.3)}
	s := NewSolver(oracles, nil)

	res, err := s.Solve(b)
	require.NoError(t, err)

	st := res.Stack
	for i := 0; i < st.Len()-1; i++ {
		assert.Equal(t, 920.0, st.Rho[i], "shell %d", i)
		assert.Equal(t, 2.3, st.KTherm[i], "shell %d", i)
	}
}

func TestOraclesFallback(t *testing.T) {
	var o Oracles
	orc := o.forPhase(ice.III)
	require.NotNil(t, orc)

	// The fallback is the analytic ice fit for the requested phase.
	assert.InDelta(t, eos.NewIce(ice.III).Density(210, 250), orc.Density(210, 250), 1e-12)
}

func TestValidateRejectsBadBodies(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Body)
	}{
		{"zero radius", func(b *Body) { b.Bulk.Radius = 0 }},
		{"zero mass", func(b *Body) { b.Bulk.Mass = 0 }},
		{"zero surface temperature", func(b *Body) { b.Bulk.TSurf = 0 }},
		{"no layers", func(b *Body) { b.Layers = nil }},
		{"unknown phase", func(b *Body) { b.Layers[0].Phase = 2 }},
		{"too few steps", func(b *Body) { b.Layers[0].Steps = 1 }},
		{"out-of-order phases", func(b *Body) {
			b.Layers = []PhaseSetup{
				{Phase: ice.III, Steps: 10, TBot: 258.5, PBot: 350.0},
				{Phase: ice.I, Steps: 10, TBot: 272.0, PBot: 400.0},
			}
		}},
		{"non-increasing pressure", func(b *Body) {
			b.Layers = []PhaseSetup{
				{Phase: ice.I, Steps: 10, TBot: 255.0, PBot: 155.0},
				{Phase: ice.III, Steps: 10, TBot: 258.5, PBot: 155.0},
			}
		}},
		{"non-increasing temperature", func(b *Body) {
			b.Layers = []PhaseSetup{
				{Phase: ice.I, Steps: 10, TBot: 255.0, PBot: 155.0},
				{Phase: ice.III, Steps: 10, TBot: 255.0, PBot: 350.0},
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := enceladusBody()
			tt.mutate(b)
			assert.Error(t, b.Validate())
		})
	}
}

func TestShellCount(t *testing.T) {
	assert.Equal(t, 101, enceladusBody().ShellCount())
	assert.Equal(t, 201, titanLikeBody().ShellCount())
}
