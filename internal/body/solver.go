package body

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"icebody/internal/convect"
	"icebody/internal/shell"
)

// Solver orchestrates the per-phase classification and integration for a
// body, from the surface boundary condition down through the last
// configured ice phase. Phases run strictly in order; each consumes the
// temperature, mass, and gravity state the previous phase left at the
// shared boundary shell.
type Solver struct {
	Oracles    Oracles
	classifier *convect.Classifier
	integrator *convect.Integrator
	log        *zap.Logger
}

// NewSolver returns a solver using the given per-phase EOS oracles.
// A nil logger disables diagnostics.
func NewSolver(oracles Oracles, log *zap.Logger) *Solver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Solver{
		Oracles:    oracles,
		classifier: convect.NewClassifier(log),
		integrator: convect.NewIntegrator(log),
		log:        log,
	}
}

// Solve builds the pre-sized shell stack with its conductive initial
// guess, then walks the configured phases outside in, classifying and
// integrating each one.
func (s *Solver) Solve(b *Body) (*Result, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	st := s.buildInitialStack(b)
	res := &Result{Body: b, Stack: st}

	start := 0
	pTop := b.Bulk.PSurf
	for _, layer := range b.Layers {
		end := start + layer.Steps
		orc := s.Oracles.forPhase(layer.Phase)

		zTop := st.Depth[start]
		thickness := st.Depth[end-1] - zTop
		pMid := pTop + (layer.PBot-pTop)/2

		reg, err := s.classifier.Classify(convect.LayerInput{
			Phase:           layer.Phase,
			TTop:            st.T[start],
			TBot:            layer.TBot,
			TopRadius:       st.Radius[start],
			Thickness:       thickness,
			TopConductivity: st.KTherm[start],
			Gravity:         st.G[start],
			MidPressure:     pMid,
			EOS:             orc,
			EquilibriumHeat: b.EquilibriumHeat,
		})
		if err != nil {
			return nil, fmt.Errorf("classify %v layer of %s: %w", layer.Phase, b.Name, err)
		}

		job := convect.NewPhaseJob(layer.Phase, start, end, layer.TBot, layer.PBot, orc)
		reg, err = s.integrator.Integrate(st, job, reg)
		if err != nil {
			return nil, fmt.Errorf("integrate %v layer of %s: %w", layer.Phase, b.Name, err)
		}

		s.log.Info("phase integrated",
			zap.String("body", b.Name),
			zap.Stringer("phase", layer.Phase),
			zap.Stringer("mode", reg.Mode),
			zap.Float64("Tconv_K", reg.ConvectedTemp),
			zap.Float64("lid_km", reg.LidThickness/1e3),
			zap.Float64("tbl_km", reg.TBLThickness/1e3),
			zap.Float64("Ra", reg.Rayleigh),
			zap.Float64("Q_W", reg.HeatFlow))

		res.Phases = append(res.Phases, PhaseResult{Phase: layer.Phase, Regime: reg})
		start = end
		pTop = layer.PBot
	}

	return res, nil
}

// buildInitialStack lays down the fixed pressure grid, the conductive
// temperature guess, EOS-derived properties, and a full geometry walk
// from the surface. The pressure grid is linear within each phase and
// never recomputed afterwards.
func (s *Solver) buildInitialStack(b *Body) *shell.Stack {
	n := b.ShellCount()
	st := shell.New(n, b.Bulk.Radius, b.Bulk.Mass)

	start := 0
	pTop := b.Bulk.PSurf
	tTop := b.Bulk.TSurf
	st.P[0] = pTop
	st.T[0] = tTop
	for _, layer := range b.Layers {
		end := start + layer.Steps
		for i := start; i <= end; i++ {
			frac := float64(i-start) / float64(layer.Steps)
			st.P[i] = pTop + (layer.PBot-pTop)*frac
			// Conductive power-law guess anchored at the phase
			// endpoints; the integrator reshapes it where the layer
			// convects.
			st.T[i] = math.Pow(layer.TBot, frac) * math.Pow(tTop, 1-frac)
			if i < end || end == n-1 {
				st.Phase[i] = layer.Phase
			}
		}
		st.EvalProps(s.Oracles.forPhase(layer.Phase), start, end)
		start = end
		pTop = layer.PBot
		tTop = layer.TBot
	}

	mAbove := 0.0
	for i := 1; i < n; i++ {
		mAbove = st.Descend(i, mAbove)
	}
	return st
}
