package deco

import "fmt"

// Search step sizes, minutes. The coarse pass bounds the answer, the fine
// pass refines it to one minute.
const (
	stepCoarse = 10
	stepFine   = 1
)

// DirectAscent reports whether ascending from depth to the surface in time
// minutes on gas keeps the ceiling (at GFHigh) at or above the surface.
// It runs on a copy; s is not modified.
//
// Only valid before a schedule has started: returns [ErrFirstStopFixed] if a
// first stop is known.
func (s *State) DirectAscent(depth, time float64, gas Gas) (bool, error) {
	if s.firstStop.Known() {
		return false, ErrFirstStopFixed
	}

	probe := *s

	if !s.cfg.Surfaced(depth) {
		if _, err := probe.AddSegmentAscDec(depth, s.cfg.SurfacePressure, time, gas); err != nil {
			return false, err
		}
	}

	return s.cfg.GaugeDepth(probe.Ceiling(float64(probe.gfHigh))) <= 0, nil
}

// CalcNDL returns the whole minutes that can still be spent at depth on gas
// before a direct ascent at ascentRate (bar/min) would need a stop. It runs
// on a copy; s is not modified.
//
// The result is capped at NDLLimit; a capped result comes with
// [ErrNDLBound].
func (s *State) CalcNDL(depth, ascentRate float64, gas Gas) (float64, error) {
	if !(ascentRate > 0) {
		return 0, fmt.Errorf("%w: ascent rate must be positive", ErrInvalidConfig)
	}

	limit := s.cfg.NDLLimit
	ascent := s.cfg.GaugeDepth(depth) / ascentRate
	ndl := 0.0

	search := func(probe *State, step float64) error {
		for ndl < limit {
			if _, err := probe.AddSegmentConst(depth, step, gas); err != nil {
				return err
			}

			ok, err := probe.DirectAscent(depth, ascent, gas)
			if err != nil {
				return err
			}

			if !ok {
				break
			}

			ndl += step
		}

		return nil
	}

	probe := *s
	if err := search(&probe, stepCoarse); err != nil {
		return 0, err
	}

	probe = *s

	if ndl > 0 {
		if _, err := probe.AddSegmentConst(depth, ndl, gas); err != nil {
			return 0, err
		}
	}

	if err := search(&probe, stepFine); err != nil {
		return 0, err
	}

	if ndl >= limit {
		return limit, fmt.Errorf("%w: more than %v min", ErrNDLBound, limit)
	}

	return ndl, nil
}
