package ice

import "testing"

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{I, "Ih"},
		{III, "III"},
		{V, "V"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("phase %d: expected %q, got %q", int(tt.phase), tt.want, got)
		}
	}
}

func TestPhaseValid(t *testing.T) {
	for _, p := range Phases {
		if !p.Valid() {
			t.Errorf("phase %v should be valid", p)
		}
	}
	for _, p := range []Phase{0, 2, 4, 6, -1} {
		if p.Valid() {
			t.Errorf("phase %d should be invalid", int(p))
		}
	}
}

func TestRheologyOf(t *testing.T) {
	tests := []struct {
		phase   Phase
		eAct    float64
		etaMelt float64
	}{
		{I, 59.4e3, 1e14},
		{III, 107.0e3, 5e12},
		{V, 136.9e3, 5e14},
	}
	for _, tt := range tests {
		r := RheologyOf(tt.phase)
		if r.ActivationEnergy != tt.eAct {
			t.Errorf("phase %v: activation energy %g, expected %g", tt.phase, r.ActivationEnergy, tt.eAct)
		}
		if r.MeltViscosity != tt.etaMelt {
			t.Errorf("phase %v: melt viscosity %g, expected %g", tt.phase, r.MeltViscosity, tt.etaMelt)
		}
	}
}
