package body

import (
	"fmt"

	"icebody/internal/convect"
	"icebody/internal/eos"
	"icebody/internal/ice"
	"icebody/internal/shell"
)

// Bulk holds the observational constraints on a body.
type Bulk struct {
	Radius         float64 // m
	Mass           float64 // kg
	TSurf          float64 // K
	PSurf          float64 // MPa
	MoI            float64 // measured moment-of-inertia factor C/MR^2
	MoIUncertainty float64
}

// PhaseSetup assigns one candidate ice phase its shell count and bottom
// transition conditions. Layers are listed outside in.
type PhaseSetup struct {
	Phase ice.Phase
	Steps int     // shells spanned by this phase, excluding the shared top shell
	TBot  float64 // K at the phase bottom
	PBot  float64 // MPa at the phase bottom
}

// Body is one candidate interior model: bulk constraints plus the
// ordered ice phase stack.
type Body struct {
	Name            string
	Bulk            Bulk
	Layers          []PhaseSetup
	EquilibriumHeat bool
}

// Validate checks that the body can be integrated: positive bulk values
// and a strictly ordered, monotonic phase stack.
func (b *Body) Validate() error {
	if b.Bulk.Radius <= 0 || b.Bulk.Mass <= 0 {
		return fmt.Errorf("body %s: radius and mass must be positive", b.Name)
	}
	if b.Bulk.TSurf <= 0 {
		return fmt.Errorf("body %s: surface temperature must be positive", b.Name)
	}
	if len(b.Layers) == 0 {
		return fmt.Errorf("body %s: no ice layers configured", b.Name)
	}
	prevPhase := ice.Phase(0)
	prevP := b.Bulk.PSurf
	prevT := b.Bulk.TSurf
	for _, l := range b.Layers {
		if !l.Phase.Valid() {
			return fmt.Errorf("body %s: unknown phase %v", b.Name, l.Phase)
		}
		if l.Phase <= prevPhase {
			return fmt.Errorf("body %s: phase %v out of order", b.Name, l.Phase)
		}
		if l.Steps < 2 {
			return fmt.Errorf("body %s: phase %v needs at least 2 steps, got %d",
				b.Name, l.Phase, l.Steps)
		}
		if l.PBot <= prevP {
			return fmt.Errorf("body %s: phase %v bottom pressure %.6g MPa does not increase past %.6g MPa",
				b.Name, l.Phase, l.PBot, prevP)
		}
		if l.TBot <= prevT {
			return fmt.Errorf("body %s: phase %v bottom temperature %.3f K does not increase past %.3f K",
				b.Name, l.Phase, l.TBot, prevT)
		}
		prevPhase, prevP, prevT = l.Phase, l.PBot, l.TBot
	}
	return nil
}

// ShellCount returns the total stack size: one shared boundary shell
// between consecutive phases plus the surface shell.
func (b *Body) ShellCount() int {
	n := 1
	for _, l := range b.Layers {
		n += l.Steps
	}
	return n
}

// PhaseResult pairs a phase with its computed convection regime.
type PhaseResult struct {
	Phase  ice.Phase
	Regime convect.Regime
}

// Result is a fully integrated interior model.
type Result struct {
	Body   *Body
	Stack  *shell.Stack
	Phases []PhaseResult
}

// Oracles maps each ice phase to its EOS table. Missing phases fall
// back to the built-in analytic ice properties.
type Oracles map[ice.Phase]eos.Oracle

func (o Oracles) forPhase(p ice.Phase) eos.Oracle {
	if o != nil {
		if orc, ok := o[p]; ok && orc != nil {
			return orc
		}
	}
	return eos.NewIce(p)
}
