package convect

// Mode is the heat-transport classification of one ice layer.
type Mode int

const (
	// WholeLayerConduction: the layer is too thin or too stiff to
	// convect; the conductive initial profile stands.
	WholeLayerConduction Mode = iota
	// ThreeZone: conductive stagnant lid over a convecting interior
	// over a bottom thermal boundary layer.
	ThreeZone
)

func (m Mode) String() string {
	switch m {
	case WholeLayerConduction:
		return "conductive"
	case ThreeZone:
		return "convective"
	}
	return "unknown"
}

// Regime holds the convection parameters computed once per candidate ice
// phase and discarded after the corresponding shell range is updated.
type Regime struct {
	Mode          Mode
	ConvectedTemp float64 // K, well-mixed interior temperature
	Viscosity     float64 // Pa s, effective viscosity at ConvectedTemp
	LidThickness  float64 // m, conductive stagnant lid
	TBLThickness  float64 // m, bottom thermal boundary layer
	HeatFlow      float64 // W, through the bottom of the layer
	Rayleigh      float64 // dimensionless
}
