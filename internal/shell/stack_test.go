package shell

import (
	"math"
	"testing"

	"icebody/internal/eos"
	"icebody/internal/ice"
)

// buildTestStack returns a small stack with a linear pressure grid, a
// uniform temperature, constant material properties, and a completed
// geometry walk from the surface.
func buildTestStack(n int, pBot float64) *Stack {
	const (
		radius = 252.1e3
		mass   = 1.08022e20
	)
	st := New(n, radius, mass)
	orc := eos.NewConstant(920.0, 2100.0, 1.6e-4, 2.3)
	for i := 0; i < n; i++ {
		st.P[i] = pBot * float64(i) / float64(n-1)
		st.T[i] = 100.0
		st.Phase[i] = ice.I
	}
	st.EvalProps(orc, 0, n-1)
	mAbove := 0.0
	for i := 1; i < n; i++ {
		mAbove = st.Descend(i, mAbove)
	}
	return st
}

func TestNewSurfaceBoundary(t *testing.T) {
	st := New(5, 252.1e3, 1.08022e20)

	if st.Len() != 5 {
		t.Fatalf("expected 5 shells, got %d", st.Len())
	}
	if st.Depth[0] != 0 {
		t.Errorf("surface depth should be 0, got %g", st.Depth[0])
	}
	if st.Radius[0] != 252.1e3 {
		t.Errorf("surface radius should equal body radius, got %g", st.Radius[0])
	}

	wantG := ice.GravConst * 1.08022e20 / (252.1e3 * 252.1e3)
	if math.Abs(st.G[0]-wantG) > 1e-12 {
		t.Errorf("surface gravity: expected %g, got %g", wantG, st.G[0])
	}
}

func TestDescendHydrostatic(t *testing.T) {
	st := buildTestStack(10, 20.0)

	// Each depth increment must follow dz = dP/(g rho) with the previous
	// shell's values.
	for i := 1; i < st.Len(); i++ {
		dP := (st.P[i] - st.P[i-1]) * 1e6
		wantDz := dP / (st.G[i-1] * st.Rho[i-1])
		gotDz := st.Depth[i] - st.Depth[i-1]
		if math.Abs(gotDz-wantDz) > 1e-9*wantDz {
			t.Errorf("shell %d: dz %g, expected %g", i, gotDz, wantDz)
		}
		if st.Radius[i] != st.BodyRadius-st.Depth[i] {
			t.Errorf("shell %d: radius %g inconsistent with depth %g", i, st.Radius[i], st.Depth[i])
		}
	}
}

func TestDescendMassAccounting(t *testing.T) {
	st := buildTestStack(10, 20.0)

	for i := 0; i < st.Len()-1; i++ {
		wantM := 4.0 / 3.0 * math.Pi * st.Rho[i] *
			(math.Pow(st.Radius[i], 3) - math.Pow(st.Radius[i+1], 3))
		if math.Abs(st.MLayer[i]-wantM) > 1e-6*wantM {
			t.Errorf("shell %d: layer mass %g, expected %g", i, st.MLayer[i], wantM)
		}
		if st.MLayer[i] <= 0 {
			t.Errorf("shell %d: layer mass %g not positive", i, st.MLayer[i])
		}
	}
	if st.MLayer[st.Len()-1] != 0 {
		t.Errorf("final MLayer element should stay zero, got %g", st.MLayer[st.Len()-1])
	}

	// Above and below always partition the total.
	for i := 0; i < st.Len(); i++ {
		sum := st.MassAbove(i) + st.MassBelow(i)
		if math.Abs(sum-st.BodyMass) > 1e-6*st.BodyMass {
			t.Errorf("shell %d: mass above + below = %g, body mass %g", i, sum, st.BodyMass)
		}
	}
}

func TestDescendGravityShellTheorem(t *testing.T) {
	st := buildTestStack(10, 20.0)

	for i := 0; i < st.Len(); i++ {
		want := st.ShellGravity(i)
		if math.Abs(st.G[i]-want) > 1e-9*want {
			t.Errorf("shell %d: gravity %g, shell theorem gives %g", i, st.G[i], want)
		}
	}
}

func TestValidate(t *testing.T) {
	st := buildTestStack(10, 20.0)

	if err := st.Validate(0, st.Len()-1); err != nil {
		t.Fatalf("consistent stack failed validation: %v", err)
	}

	// Inject a depth inversion.
	broken := buildTestStack(10, 20.0)
	broken.Depth[5] = broken.Depth[3]
	if err := broken.Validate(0, broken.Len()-1); err == nil {
		t.Error("expected error for non-monotonic depth")
	}

	// Inject a gravity inconsistency.
	broken = buildTestStack(10, 20.0)
	broken.G[4] *= 1.5
	if err := broken.Validate(0, broken.Len()-1); err == nil {
		t.Error("expected error for gravity inconsistent with shell theorem")
	}
}

func TestEvalPropsRange(t *testing.T) {
	st := New(6, 252.1e3, 1.08022e20)
	for i := range st.P {
		st.P[i] = float64(i)
		st.T[i] = 100.0
	}
	st.EvalProps(eos.NewConstant(1000, 2000, 1e-4, 2.0), 2, 4)

	for i := 0; i < 6; i++ {
		inRange := i >= 2 && i <= 4
		if inRange && st.Rho[i] != 1000 {
			t.Errorf("shell %d: expected density 1000, got %g", i, st.Rho[i])
		}
		if !inRange && st.Rho[i] != 0 {
			t.Errorf("shell %d: density written outside range: %g", i, st.Rho[i])
		}
	}
}
