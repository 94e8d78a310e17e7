package eos

// Constant is an Oracle returning fixed material properties regardless
// of pressure and temperature. Used for synthetic bodies and tests.
type Constant struct {
	Rho    float64
	Cp     float64
	Alpha  float64
	KTherm float64
}

// NewConstant returns an oracle with fixed properties.
func NewConstant(rho, cp, alpha, kTherm float64) *Constant {
	return &Constant{Rho: rho, Cp: cp, Alpha: alpha, KTherm: kTherm}
}

func (c *Constant) Density(pMPa, tK float64) float64      { return c.Rho }
func (c *Constant) HeatCapacity(pMPa, tK float64) float64 { return c.Cp }
func (c *Constant) Expansivity(pMPa, tK float64) float64  { return c.Alpha }
func (c *Constant) Conductivity(pMPa, tK float64) float64 { return c.KTherm }

// Func adapts four plain functions of (P,T) into an Oracle. Any nil
// function is treated as zero.
type Func struct {
	RhoFn    func(pMPa, tK float64) float64
	CpFn     func(pMPa, tK float64) float64
	AlphaFn  func(pMPa, tK float64) float64
	KThermFn func(pMPa, tK float64) float64
}

func call(fn func(pMPa, tK float64) float64, p, t float64) float64 {
	if fn == nil {
		return 0
	}
	return fn(p, t)
}

func (f *Func) Density(pMPa, tK float64) float64      { return call(f.RhoFn, pMPa, tK) }
func (f *Func) HeatCapacity(pMPa, tK float64) float64 { return call(f.CpFn, pMPa, tK) }
func (f *Func) Expansivity(pMPa, tK float64) float64  { return call(f.AlphaFn, pMPa, tK) }
func (f *Func) Conductivity(pMPa, tK float64) float64 { return call(f.KThermFn, pMPa, tK) }
