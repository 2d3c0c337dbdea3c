package deco

import (
	"errors"
	"fmt"
)

// Safety stop policy for no-decompression ascents, in metres.
const (
	safetyStopDepthMSW = 6
	safetyStopMinDive  = 10
	safetyStopTime     = 3
)

// ExtendToNDL stays at depth for the remaining no-decompression limit
// (reported as [KindNoDecoLimit]) and then ascends with [State.SafetyStopAscent].
// It returns the minutes added at depth.
//
// A capped NDL still extends the dive to the cap and ascends; the
// [ErrNDLBound] error is returned once the ascent is done.
func (s *State) ExtendToNDL(depth float64, gas Gas, sink WaypointSink) (float64, error) {
	ndl, ndlErr := s.CalcNDL(depth, s.cfg.AscentRate, gas)
	if ndlErr != nil && !errors.Is(ndlErr, ErrNDLBound) {
		return 0, ndlErr
	}

	if ndl > 0 {
		if _, err := s.AddSegmentConst(depth, ndl, gas); err != nil {
			return 0, err
		}

		emit(sink, s, Waypoint{Depth: depth, Time: ndl, Gas: gas}, KindNoDecoLimit)
	}

	if _, err := s.SafetyStopAscent(depth, gas, sink); err != nil {
		return ndl, err
	}

	return ndl, ndlErr
}

// SafetyStopAscent surfaces from depth without decompression stops. Dives
// that reached 10 m and are still at or below 6 m get a 3 minute safety stop
// at 6 m ([KindSafetyStop]); others ascend directly. Returns elapsed minutes.
//
// The caller is responsible for the ascent being within the NDL; see
// [State.DirectAscent].
func (s *State) SafetyStopAscent(depth float64, gas Gas, sink WaypointSink) (float64, error) {
	cfg := s.cfg
	stopDepth := cfg.AbsDepth(MSWToBar(safetyStopDepthMSW))
	elapsed := 0.0

	ascend := func(from, to float64, kind Kind) error {
		time := (from - to) / cfg.AscentRate

		if _, err := s.AddSegmentAscDec(from, to, time, gas); err != nil {
			return fmt.Errorf("ascending to %.3f bar: %w", to, err)
		}

		elapsed += time
		emit(sink, s, Waypoint{Depth: to, Time: time, Gas: gas}, kind)

		return nil
	}

	if cfg.Surfaced(depth) {
		return 0, nil
	}

	if depth < stopDepth-cfg.DepthTolerance || s.maxDepth < cfg.AbsDepth(MSWToBar(safetyStopMinDive)) {
		return elapsed, ascend(depth, cfg.SurfacePressure, KindSurfaced)
	}

	if !cfg.SameDepth(depth, stopDepth) {
		if err := ascend(depth, stopDepth, KindTravel); err != nil {
			return elapsed, err
		}
	}

	if _, err := s.AddSegmentConst(stopDepth, safetyStopTime, gas); err != nil {
		return elapsed, err
	}

	elapsed += safetyStopTime
	emit(sink, s, Waypoint{Depth: stopDepth, Time: safetyStopTime, Gas: gas}, KindSafetyStop)

	return elapsed, ascend(stopDepth, cfg.SurfacePressure, KindSurfaced)
}
