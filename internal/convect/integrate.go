package convect

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"icebody/internal/eos"
	"icebody/internal/ice"
	"icebody/internal/shell"
)

// PhaseJob binds one candidate ice phase to its shell index range,
// bottom transition conditions, and per-zone EOS tables. Start is the
// first shell of the phase; End is the boundary shell shared with the
// next phase: its temperature and geometry are written here, but its
// material properties are left for the next phase's lid evaluation.
//
// The three zone oracles are explicit because a phase may legitimately
// bind a different table to its convecting interior than to its
// conductive sub-layers.
type PhaseJob struct {
	Phase      ice.Phase
	Start, End int
	TBot       float64 // K, transition temperature at the phase bottom
	PBot       float64 // MPa, transition pressure at the phase bottom
	LidEOS     eos.Oracle
	ConvectEOS eos.Oracle
	TBLEOS     eos.Oracle
}

// NewPhaseJob builds a job with all three zones bound to the same oracle.
func NewPhaseJob(p ice.Phase, start, end int, tBot, pBot float64, o eos.Oracle) PhaseJob {
	return PhaseJob{
		Phase: p, Start: start, End: end,
		TBot: tBot, PBot: pBot,
		LidEOS: o, ConvectEOS: o, TBLEOS: o,
	}
}

// Integrator walks shell stacks inward, rewriting the temperature
// profile of one phase's range according to its convection regime and
// re-deriving density, gravity, and mass self-consistently at each
// shell.
type Integrator struct {
	log *zap.Logger
}

// NewIntegrator returns an integrator. A nil logger disables the
// per-shell diagnostic narration.
func NewIntegrator(log *zap.Logger) *Integrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Integrator{log: log}
}

// Integrate applies the classified regime to the job's shell range,
// mutating st in place, and returns the regime with its heat flow
// corrected where the conductive fallback applies. Pressure values are
// never recomputed; they are the independent grid.
//
// On a physical-inconsistency failure the shells past the convective/
// boundary-layer transition are left untouched and the whole phase must
// be treated as failed by the caller.
func (ig *Integrator) Integrate(st *shell.Stack, job PhaseJob, reg Regime) (Regime, error) {
	if err := checkJob(st, job); err != nil {
		return reg, err
	}

	zTop := st.Depth[job.Start]
	thickness := st.Depth[job.End-1] - zTop

	if reg.Mode == WholeLayerConduction {
		return ig.conductOnly(st, job, reg)
	}

	// Locate the zone boundaries on the depth grid.
	iLid := firstDeeper(st, job.Start, job.End, zTop+reg.LidThickness)
	iConv := firstDeeper(st, job.Start, job.End, zTop+thickness-reg.TBLThickness)

	// A transition landing on or past the phase bottom (or a lid that
	// swallows the whole range) leaves no room for a convective zone;
	// fall back to the conductive initial profile.
	if iLid <= job.Start || iConv <= iLid || iConv >= job.End {
		ig.log.Debug("degenerate three-zone split, keeping conductive profile",
			zap.Stringer("phase", job.Phase),
			zap.Int("lid_index", iLid),
			zap.Int("tbl_index", iConv))
		reg.Mode = WholeLayerConduction
		return ig.conductOnly(st, job, reg)
	}

	mAbove := st.MassAbove(job.Start)

	// Conductive stagnant lid: reassign temperature between the fixed
	// top value and the convected temperature via the Weertman power
	// law in the pressure ratio to the lid base.
	pLidBase := st.P[iLid]
	tAnchor := st.T[job.Start]
	for i := job.Start; i <= iLid; i++ {
		ratio := st.P[i] / pLidBase
		st.T[i] = math.Pow(reg.ConvectedTemp, ratio) * math.Pow(tAnchor, 1-ratio)
	}
	// Properties over the lid plus the first convecting shell, so the
	// adiabat below has a seeded upstream state.
	st.EvalProps(job.LidEOS, job.Start, iLid)
	for i := job.Start + 1; i < iLid; i++ {
		mAbove = st.Descend(i, mAbove)
		ig.narrate("lid", st, i)
	}

	// Convecting interior: adiabatic propagation using the previous
	// shell's transport properties, then a fresh EOS evaluation at the
	// new (P,T).
	for i := iLid; i < iConv; i++ {
		mAbove = st.Descend(i, mAbove)
		dP := (st.P[i] - st.P[i-1]) * 1e6
		st.T[i] = st.T[i-1] + st.T[i-1]*st.Alpha[i-1]/(st.Cp[i-1]*st.Rho[i-1])*dP
		st.SetProps(i, eos.Eval(job.ConvectEOS, st.P[i], st.T[i]))
		ig.narrate("convect", st, i)
	}

	// The bottom boundary layer bridges down to the transition
	// temperature; it cannot bridge to a target colder than the adiabat
	// already reached.
	if st.T[iConv-1] > job.TBot {
		return reg, &ProfileError{
			Shell:       iConv - 1,
			BottomTempK: job.TBot,
			AdiabatK:    st.T[iConv-1],
			Wrapped:     ErrInconsistentProfile,
		}
	}

	// Bottom thermal boundary layer: the mirror of the lid, anchored at
	// the transition temperature and interpolated back to the last
	// convected value. The final shell's properties are deliberately
	// left for the next phase to fill in.
	tConvLast := st.T[iConv-1]
	for i := iConv; i <= job.End; i++ {
		ratio := st.P[i] / job.PBot
		st.T[i] = math.Pow(job.TBot, ratio) * math.Pow(tConvLast, 1-ratio)
	}
	st.EvalProps(job.TBLEOS, iConv, job.End-1)
	for i := iConv; i <= job.End; i++ {
		mAbove = st.Descend(i, mAbove)
		ig.narrate("tbl", st, i)
	}

	return reg, nil
}

// conductOnly keeps the pre-populated conductive temperature profile
// but still re-walks the range's geometry, picking up whatever depth,
// mass, and gravity state the phases above left at the top shell. For
// the surface phase the heat flow is recomputed from the actual
// near-surface gradient, since the convective estimate would overstate
// it.
func (ig *Integrator) conductOnly(st *shell.Stack, job PhaseJob, reg Regime) (Regime, error) {
	mAbove := st.MassAbove(job.Start)
	for i := job.Start + 1; i <= job.End; i++ {
		mAbove = st.Descend(i, mAbove)
	}
	if job.Start == 0 && st.Len() > 1 {
		qSurf := (st.T[1] - st.T[0]) / (st.BodyRadius - st.Radius[1]) * st.KTherm[0]
		reg.HeatFlow = qSurf * 4 * math.Pi * st.BodyRadius * st.BodyRadius
	}
	return reg, nil
}

// firstDeeper returns the first index in (start, end] whose depth
// exceeds z, or end+1 when none does.
func firstDeeper(st *shell.Stack, start, end int, z float64) int {
	for i := start; i <= end; i++ {
		if st.Depth[i] > z {
			return i
		}
	}
	return end + 1
}

func checkJob(st *shell.Stack, job PhaseJob) error {
	if job.Start < 0 || job.End <= job.Start || job.End >= st.Len() {
		return fmt.Errorf("%w: shell range [%d,%d] in stack of %d",
			ErrBadLayer, job.Start, job.End, st.Len())
	}
	if job.LidEOS == nil || job.ConvectEOS == nil || job.TBLEOS == nil {
		return fmt.Errorf("%w: phase %v is missing a zone EOS binding", ErrBadLayer, job.Phase)
	}
	if job.PBot <= 0 {
		return fmt.Errorf("%w: non-positive bottom pressure %.6g MPa", ErrBadLayer, job.PBot)
	}
	return nil
}

func (ig *Integrator) narrate(zone string, st *shell.Stack, i int) {
	ig.log.Debug("shell",
		zap.String("zone", zone),
		zap.Int("il", i),
		zap.Float64("P_MPa", st.P[i]),
		zap.Float64("T_K", st.T[i]),
		zap.Float64("z_m", st.Depth[i]),
		zap.Float64("g_ms2", st.G[i]),
		zap.Stringer("phase", st.Phase[i]))
}
