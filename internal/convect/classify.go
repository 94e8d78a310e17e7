package convect

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"icebody/internal/eos"
	"icebody/internal/ice"
)

// Scaling-law constants from Deschamps and Sotin (2001).
const (
	dsC1 = 1.43
	dsC2 = -0.03
	// Prefactor and exponent of the boundary-layer Rayleigh relation
	// Ra_delta = 0.28 Ra^0.21.
	dsTBLPrefactor = 0.28
	dsTBLExponent  = 0.21
)

// DefaultCriticalRayleigh is the onset threshold below which a layer is
// classified as conducting over its whole thickness.
const DefaultCriticalRayleigh = 1e5

// LayerInput describes one candidate ice layer for classification.
// Temperatures bracket the layer, geometry and gravity are taken at the
// layer top, and the EOS is the phase's own table evaluated at mid-layer
// conditions.
type LayerInput struct {
	Phase           ice.Phase
	TTop            float64 // K at the layer top
	TBot            float64 // K at the layer bottom (transition temperature)
	TopRadius       float64 // m
	Thickness       float64 // m
	TopConductivity float64 // W/(m K) at the layer top
	Gravity         float64 // m/s^2 at the layer top
	MidPressure     float64 // MPa at mid-layer
	EOS             eos.Oracle
	EquilibriumHeat bool // basal heat flow balances the lid exactly
}

// Classifier computes stagnant-lid convection parameters for candidate
// ice layers using the Deschamps and Sotin (2001) scaling laws.
type Classifier struct {
	CriticalRayleigh float64
	log              *zap.Logger
}

// NewClassifier returns a classifier with the default critical Rayleigh
// number. A nil logger disables diagnostics.
func NewClassifier(log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{CriticalRayleigh: DefaultCriticalRayleigh, log: log}
}

// Classify computes the convective temperature, effective viscosity, lid
// and boundary-layer thicknesses, basal heat flow, and Rayleigh number
// for the layer, and decides between whole-layer conduction and the
// three-zone regime.
func (c *Classifier) Classify(in LayerInput) (Regime, error) {
	if !in.Phase.Valid() {
		return Regime{}, fmt.Errorf("%w: phase %v", ErrBadLayer, in.Phase)
	}
	if in.Thickness <= 0 || in.TopRadius <= in.Thickness {
		return Regime{}, fmt.Errorf("%w: thickness %.6g m within top radius %.6g m",
			ErrBadLayer, in.Thickness, in.TopRadius)
	}
	if in.TBot <= in.TTop {
		return Regime{}, fmt.Errorf("%w: bottom %.3f K not warmer than top %.3f K",
			ErrBadLayer, in.TBot, in.TTop)
	}

	rheo := ice.RheologyOf(in.Phase)
	deltaT := in.TBot - in.TTop

	// Temperature of the well-mixed interior: the positive root of the
	// quadratic that balances the Arrhenius viscosity law against the
	// boundary-layer temperature scale (D&S eq. 9).
	bCoef := rheo.ActivationEnergy / (2 * ice.GasConst * dsC1)
	cCoef := dsC2 * deltaT
	tConv := bCoef * (math.Sqrt(1+2/bCoef*(in.TBot-cCoef)) - 1)

	// Effective viscosity at the convected temperature.
	aCoef := rheo.ActivationEnergy / (ice.GasConst * in.TBot)
	etaConv := rheo.MeltViscosity * math.Exp(aCoef*(in.TBot/tConv-1))

	// Transport properties of the convecting interior at mid-layer
	// pressure and the convected temperature.
	mid := eos.Eval(in.EOS, in.MidPressure, tConv)
	kappa := mid.KTherm / (mid.Rho * mid.Cp)

	ra := mid.Alpha * mid.Cp * mid.Rho * mid.Rho * in.Gravity * deltaT *
		math.Pow(in.Thickness, 3) / (mid.KTherm * etaConv)

	// Bottom thermal boundary layer from the boundary Rayleigh relation.
	raDelta := dsTBLPrefactor * math.Pow(ra, dsTBLExponent)
	tbl := math.Cbrt(etaConv * kappa * raDelta /
		(mid.Rho * mid.Alpha * in.Gravity * (in.TBot - tConv)))

	// Basal heat flux, and the flux conducted through the stagnant lid.
	// With heat production in equilibrium the lid carries exactly the
	// basal flux; otherwise internal (radiogenic/tidal) production is
	// taken to double the flux leaving the top.
	qBot := mid.KTherm * (in.TBot - tConv) / tbl
	qLid := qBot
	if !in.EquilibriumHeat {
		qLid = 2 * qBot
	}
	lid := in.TopConductivity * (tConv - in.TTop) / qLid

	rBot := in.TopRadius - in.Thickness
	heatFlow := qBot * 4 * math.Pi * rBot * rBot

	critical := c.CriticalRayleigh
	if critical == 0 {
		critical = DefaultCriticalRayleigh
	}
	mode := ThreeZone
	if ra < critical || lid+tbl >= in.Thickness {
		mode = WholeLayerConduction
	}

	reg := Regime{
		Mode:          mode,
		ConvectedTemp: tConv,
		Viscosity:     etaConv,
		LidThickness:  lid,
		TBLThickness:  tbl,
		HeatFlow:      heatFlow,
		Rayleigh:      ra,
	}
	c.log.Debug("layer classified",
		zap.Stringer("phase", in.Phase),
		zap.Stringer("mode", mode),
		zap.Float64("Tconv_K", tConv),
		zap.Float64("eta_Pas", etaConv),
		zap.Float64("lid_m", lid),
		zap.Float64("tbl_m", tbl),
		zap.Float64("Ra", ra),
		zap.Float64("Q_W", heatFlow))
	return reg, nil
}
