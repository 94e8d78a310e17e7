// Package convect classifies and integrates solid-state convection in
// the ice layers of an icy-body interior model.
//
// The package has two halves:
//
//   - [Classifier]: stagnant-lid scaling laws after Deschamps and Sotin
//     (2001), producing a [Regime] for a candidate layer (convected
//     temperature, effective viscosity, lid and boundary-layer
//     thicknesses, Rayleigh number, basal heat flow)
//   - [Integrator]: rewrites one phase's range of a [shell.Stack]
//     according to its regime, either keeping the conductive profile or
//     splitting the layer into a conductive lid, an adiabatic convecting
//     interior, and a bottom thermal boundary layer
//
// # Usage
//
//	reg, err := convect.NewClassifier(log).Classify(in)
//	job := convect.NewPhaseJob(ice.I, start, end, tBot, pBot, oracle)
//	reg, err = convect.NewIntegrator(log).Integrate(st, job, reg)
//
// # Failure Semantics
//
// A bottom transition temperature colder than the temperature the
// adiabat has already reached is physically inconsistent and surfaces
// as [ErrInconsistentProfile]. The stack is left partially rewritten;
// the caller must adjust the transition temperature and restart the
// whole multi-phase integration.
package convect
