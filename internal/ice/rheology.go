package ice

// Physical constants used throughout the interior model.
const (
	// GravConst is the Newtonian gravitational constant in m^3/(kg s^2).
	GravConst = 6.67430e-11
	// GasConst is the ideal gas constant in J/(mol K).
	GasConst = 8.31446
)

// Rheology holds the viscosity-law parameters for a single ice polymorph,
// used by the Deschamps and Sotin (2001) convection scaling.
type Rheology struct {
	// ActivationEnergy is the creep activation energy in J/mol.
	ActivationEnergy float64
	// MeltViscosity is the reference viscosity at the melting point in Pa s.
	MeltViscosity float64
}

var rheologies = map[Phase]Rheology{
	I:   {ActivationEnergy: 59.4e3, MeltViscosity: 1.0e14},
	III: {ActivationEnergy: 107.0e3, MeltViscosity: 5.0e12},
	V:   {ActivationEnergy: 136.9e3, MeltViscosity: 5.0e14},
}

// RheologyOf returns the viscosity-law parameters for phase p.
func RheologyOf(p Phase) Rheology {
	return rheologies[p]
}
