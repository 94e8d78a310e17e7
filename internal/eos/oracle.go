package eos

// Oracle answers equation-of-state queries for one material phase.
// Pressure is in MPa and temperature in K; implementations must return
// finite values over the whole (P,T) domain the integrator can reach
// (gap-filling in tabulated sources is handled before construction).
type Oracle interface {
	Density(pMPa, tK float64) float64      // kg/m^3
	HeatCapacity(pMPa, tK float64) float64 // J/(kg K)
	Expansivity(pMPa, tK float64) float64  // 1/K
	Conductivity(pMPa, tK float64) float64 // W/(m K)
}

// BatchOracle is an optional fast path for evaluating many (P,T) points
// at once. Results must match element-wise scalar evaluation.
type BatchOracle interface {
	Oracle
	EvalBatch(pMPa, tK []float64) (rho, cp, alpha, kTherm []float64)
}

// Props bundles one evaluation of all four transport quantities.
type Props struct {
	Rho    float64
	Cp     float64
	Alpha  float64
	KTherm float64
}

// Eval queries all four quantities of o at a single (P,T) point.
func Eval(o Oracle, pMPa, tK float64) Props {
	return Props{
		Rho:    o.Density(pMPa, tK),
		Cp:     o.HeatCapacity(pMPa, tK),
		Alpha:  o.Expansivity(pMPa, tK),
		KTherm: o.Conductivity(pMPa, tK),
	}
}

// Batch evaluates o over same-length pressure and temperature slices,
// using the vectorized path when the oracle provides one. The slices
// must be the same length; results are index-aligned.
func Batch(o Oracle, pMPa, tK []float64) (rho, cp, alpha, kTherm []float64) {
	if b, ok := o.(BatchOracle); ok {
		return b.EvalBatch(pMPa, tK)
	}
	n := len(pMPa)
	rho = make([]float64, n)
	cp = make([]float64, n)
	alpha = make([]float64, n)
	kTherm = make([]float64, n)
	for i := 0; i < n; i++ {
		rho[i] = o.Density(pMPa[i], tK[i])
		cp[i] = o.HeatCapacity(pMPa[i], tK[i])
		alpha[i] = o.Expansivity(pMPa[i], tK[i])
		kTherm[i] = o.Conductivity(pMPa[i], tK[i])
	}
	return rho, cp, alpha, kTherm
}
