package convect

import (
	"errors"
	"fmt"
)

// Domain errors for convection classification and layer integration.
var (
	// ErrInconsistentProfile indicates a requested bottom transition
	// temperature colder than the temperature the adiabat has already
	// reached at the top of the bottom boundary layer. The inputs are
	// physically inconsistent; the caller must raise the transition
	// temperature and restart the whole multi-phase integration.
	ErrInconsistentProfile = errors.New("convect: bottom temperature below adiabatic profile")

	// ErrBadLayer indicates a layer or shell-range configuration the
	// integrator cannot operate on.
	ErrBadLayer = errors.New("convect: invalid layer configuration")
)

// ProfileError carries the shell context of a physical-inconsistency
// failure.
type ProfileError struct {
	Shell       int     // index at the convective/boundary-layer transition
	BottomTempK float64 // requested transition temperature
	AdiabatK    float64 // temperature reached by the adiabat
	Wrapped     error
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("%v: transition temperature %.3f K at shell %d is below the adiabatic %.3f K; increase the transition temperature and re-run",
		e.Wrapped, e.BottomTempK, e.Shell, e.AdiabatK)
}

func (e *ProfileError) Unwrap() error {
	return e.Wrapped
}
