package eos

import "icebody/internal/ice"

// iceCoeffs parameterizes the analytic property fits for one polymorph.
// Density uses a linearized EOS around (0 MPa, tRef); heat capacity is a
// linear fit in T; expansivity scales linearly with T.
type iceCoeffs struct {
	rho0     float64 // kg/m^3 at (0 MPa, tRef)
	tRef     float64 // K
	bulkMPa  float64 // isothermal bulk modulus, MPa
	alphaRef float64 // 1/K at tRef
	cp0, cp1 float64 // Cp = cp0 + cp1*T
}

var iceTables = map[ice.Phase]iceCoeffs{
	ice.I:   {rho0: 917.0, tRef: 273.15, bulkMPa: 9.5e3, alphaRef: 1.56e-4, cp0: 74.11, cp1: 7.56},
	ice.III: {rho0: 1160.0, tRef: 250.0, bulkMPa: 8.5e3, alphaRef: 2.2e-4, cp0: 85.0, cp1: 7.20},
	ice.V:   {rho0: 1240.0, tRef: 255.0, bulkMPa: 13.0e3, alphaRef: 2.0e-4, cp0: 90.0, cp1: 7.00},
}

// Ice is an analytic Oracle for a single water-ice polymorph, built from
// literature property fits. It stands in for tabulated EOS data, which is
// loaded and validated outside this package.
type Ice struct {
	phase ice.Phase
	c     iceCoeffs
}

// NewIce returns the analytic oracle for phase p.
func NewIce(p ice.Phase) *Ice {
	return &Ice{phase: p, c: iceTables[p]}
}

func (o *Ice) Density(pMPa, tK float64) float64 {
	return o.c.rho0 * (1 + pMPa/o.c.bulkMPa - o.c.alphaRef*(tK-o.c.tRef))
}

func (o *Ice) HeatCapacity(pMPa, tK float64) float64 {
	return o.c.cp0 + o.c.cp1*tK
}

func (o *Ice) Expansivity(pMPa, tK float64) float64 {
	return o.c.alphaRef * tK / o.c.tRef
}

// Conductivity follows the isobaric fits of Andersson and Inaba (2005):
// ice Ih falls off roughly as 1/T, the high-pressure polymorphs are much
// flatter in T.
func (o *Ice) Conductivity(pMPa, tK float64) float64 {
	switch o.phase {
	case ice.I:
		return 632.0/tK + 0.38 - 0.00197*tK
	case ice.III:
		return 1.19
	case ice.V:
		return 1.38
	}
	return 0
}
