package shell

import (
	"fmt"
	"math"

	"icebody/internal/eos"
	"icebody/internal/ice"
)

// Stack is the radial stack of shells for one interior model, index 0 at
// the surface. It is allocated once at full size and mutated in place by
// the per-phase integration passes; it is never resized.
//
// MLayer[i] holds the mass between Radius[i] and Radius[i+1]; the final
// element stays zero.
type Stack struct {
	BodyRadius float64 // m
	BodyMass   float64 // kg

	Depth  []float64 // m, strictly increasing inward
	Radius []float64 // m, BodyRadius - Depth
	P      []float64 // MPa, non-decreasing inward
	T      []float64 // K
	Rho    []float64 // kg/m^3
	Cp     []float64 // J/(kg K)
	Alpha  []float64 // 1/K
	KTherm []float64 // W/(m K)
	G      []float64 // m/s^2
	MLayer []float64 // kg
	Phase  []ice.Phase
}

// New allocates a stack of n shells with surface boundary values set:
// zero depth, body radius, and surface gravity from the full body mass.
func New(n int, bodyRadius, bodyMass float64) *Stack {
	s := &Stack{
		BodyRadius: bodyRadius,
		BodyMass:   bodyMass,
		Depth:      make([]float64, n),
		Radius:     make([]float64, n),
		P:          make([]float64, n),
		T:          make([]float64, n),
		Rho:        make([]float64, n),
		Cp:         make([]float64, n),
		Alpha:      make([]float64, n),
		KTherm:     make([]float64, n),
		G:          make([]float64, n),
		MLayer:     make([]float64, n),
		Phase:      make([]ice.Phase, n),
	}
	if n > 0 {
		s.Radius[0] = bodyRadius
		s.G[0] = ice.GravConst * bodyMass / (bodyRadius * bodyRadius)
	}
	return s
}

// Len returns the number of shells.
func (s *Stack) Len() int { return len(s.Depth) }

// Descend recomputes the geometry of shell i from the shell above it and
// returns the updated mass above shell i. The depth increment follows the
// hydrostatic relation dz = dP/(g rho) using the previous shell's gravity
// and density, the layer mass is the spherical-shell volume times the
// previous density, and gravity comes from the shell theorem on the mass
// enclosed below Radius[i].
//
// Every integration zone must step geometry through this one routine so
// that mass and gravity accounting stay identical across zone boundaries.
func (s *Stack) Descend(i int, mAbove float64) float64 {
	dP := (s.P[i] - s.P[i-1]) * 1e6
	s.Depth[i] = s.Depth[i-1] + dP/(s.G[i-1]*s.Rho[i-1])
	s.Radius[i] = s.BodyRadius - s.Depth[i]
	s.MLayer[i-1] = 4.0 / 3.0 * math.Pi * s.Rho[i-1] *
		(cube(s.Radius[i-1]) - cube(s.Radius[i]))
	mAbove += s.MLayer[i-1]
	mBelow := s.BodyMass - mAbove
	s.G[i] = ice.GravConst * mBelow / (s.Radius[i] * s.Radius[i])
	return mAbove
}

// MassAbove returns the total mass contained in shells 0..i-1.
func (s *Stack) MassAbove(i int) float64 {
	m := 0.0
	for j := 0; j < i; j++ {
		m += s.MLayer[j]
	}
	return m
}

// MassBelow returns the mass enclosed below Radius[i].
func (s *Stack) MassBelow(i int) float64 {
	return s.BodyMass - s.MassAbove(i)
}

// ShellGravity recomputes gravity at shell i independently from the shell
// theorem. Used by invariant checks against the running value in G.
func (s *Stack) ShellGravity(i int) float64 {
	return ice.GravConst * s.MassBelow(i) / (s.Radius[i] * s.Radius[i])
}

// SetProps writes one EOS evaluation into shell i.
func (s *Stack) SetProps(i int, p eos.Props) {
	s.Rho[i] = p.Rho
	s.Cp[i] = p.Cp
	s.Alpha[i] = p.Alpha
	s.KTherm[i] = p.KTherm
}

// EvalProps batch-evaluates o over shells lo..hi inclusive at their
// current (P,T) and stores the results.
func (s *Stack) EvalProps(o eos.Oracle, lo, hi int) {
	rho, cp, alpha, kTherm := eos.Batch(o, s.P[lo:hi+1], s.T[lo:hi+1])
	copy(s.Rho[lo:hi+1], rho)
	copy(s.Cp[lo:hi+1], cp)
	copy(s.Alpha[lo:hi+1], alpha)
	copy(s.KTherm[lo:hi+1], kTherm)
}

// Validate checks the stack invariants over shells lo..hi inclusive:
// depth strictly increasing, radius consistent with depth, pressure
// non-decreasing, and gravity consistent with the shell theorem.
func (s *Stack) Validate(lo, hi int) error {
	const gravTol = 1e-9
	for i := lo; i <= hi; i++ {
		if i > lo {
			if s.Depth[i] <= s.Depth[i-1] {
				return fmt.Errorf("shell %d: depth %.6g m not greater than shell %d depth %.6g m",
					i, s.Depth[i], i-1, s.Depth[i-1])
			}
			if s.P[i] < s.P[i-1] {
				return fmt.Errorf("shell %d: pressure %.6g MPa decreases from %.6g MPa",
					i, s.P[i], s.P[i-1])
			}
		}
		if r := s.BodyRadius - s.Depth[i]; math.Abs(r-s.Radius[i]) > 1e-6 {
			return fmt.Errorf("shell %d: radius %.6g m inconsistent with depth %.6g m",
				i, s.Radius[i], s.Depth[i])
		}
		want := s.ShellGravity(i)
		if diff := math.Abs(want - s.G[i]); diff > gravTol*math.Max(1, math.Abs(want)) {
			return fmt.Errorf("shell %d: gravity %.9g m/s^2 disagrees with shell theorem value %.9g m/s^2",
				i, s.G[i], want)
		}
	}
	return nil
}

func cube(x float64) float64 { return x * x * x }
