package deco

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by deco operations.
//
// Callers should use [errors.Is] to check error types:
//
//	if errors.Is(err, deco.ErrNDLBound) {
//	    // ndl is capped, render as "360+"
//	}
var (
	// ErrInvalidDuration indicates a segment with a non-positive duration.
	//
	// This is a programming error.
	ErrInvalidDuration = errors.New("deco: segment duration must be positive")

	// ErrInvalidStopIncrement indicates a zero or negative stop increment.
	//
	// This is a programming error.
	ErrInvalidStopIncrement = errors.New("deco: stop increment must be positive")

	// ErrInvalidGas indicates out-of-range gas fractions (o2+he > 100,
	// negative fractions) or a negative MOD.
	ErrInvalidGas = errors.New("deco: invalid gas")

	// ErrInvalidGradientFactors indicates gradient factors outside 0-100 or
	// a low factor above the high factor.
	ErrInvalidGradientFactors = errors.New("deco: invalid gradient factors")

	// ErrInvalidConfig indicates a [Config] that failed [Config.Validate].
	ErrInvalidConfig = errors.New("deco: invalid config")

	// ErrFirstStopFixed indicates an exploratory ascent check on a state
	// whose first stop is already known. Exploratory checks only apply
	// before the schedule has started.
	//
	// This is a programming error, usually CalcDeco run twice on one state.
	ErrFirstStopFixed = errors.New("deco: first stop already known")

	// ErrNDLBound indicates the no-decompression limit search hit its
	// bound ([Config.NDLLimit]). The capped value is returned alongside.
	ErrNDLBound = errors.New("deco: no-decompression limit exceeds search bound")

	// ErrStopNotConverged indicates a decompression stop that did not clear
	// within [Config.StopLimit] minutes.
	ErrStopNotConverged = errors.New("deco: stop did not clear within bound")

	// ErrScheduleNotConverged indicates the ascend/stop loop exceeded
	// [Config.MaxSteps] iterations.
	ErrScheduleNotConverged = errors.New("deco: schedule did not converge")
)

// ScheduleError reports where in the ascent a schedule failed.
type ScheduleError struct {
	Depth   float64 // absolute pressure where the failure occurred
	Runtime float64 // minutes of ascent accumulated so far
	Err     error
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("%v (at %.3f bar after %.1f min)", e.Err, e.Depth, e.Runtime)
}

func (e *ScheduleError) Unwrap() error {
	return e.Err
}
