package deco

import (
	"fmt"
	"math"
)

// gasSwitchHold is how long the diver stays at a switch depth, minutes.
// It loads the tissues but is not counted in TTS.
const gasSwitchHold = 1

// Result summarises a schedule.
type Result struct {
	NDL float64 // minutes left at the bottom; 0 when stops are required
	TTS float64 // minutes from leaving the bottom to the surface; 0 on direct ascent
}

// CalcDeco computes the ascent from startDepth on startGas, using decoGases
// where breathable. If a direct ascent is possible it only reports the NDL.
// Otherwise it alternates ascending and stopping, switching gases on the way,
// and reports every travel, gas switch and stop to sink (which may be nil).
//
// s is the authoritative state and is advanced to the surface. Run it on a
// copy for projections.
func (s *State) CalcDeco(startDepth float64, startGas Gas, decoGases []Gas, sink WaypointSink) (Result, error) {
	cfg := s.cfg

	direct, err := s.DirectAscent(startDepth, cfg.GaugeDepth(startDepth)/cfg.AscentRate, startGas)
	if err != nil {
		return Result{}, err
	}

	if direct {
		ndl, err := s.CalcNDL(startDepth, cfg.AscentRate, startGas)
		return Result{NDL: ndl}, err
	}

	r := &scheduler{
		s:     s,
		sink:  sink,
		gases: decoGases,
		depth: startDepth,
		gas:   startGas,
	}

	r.gf = s.GF(r.depth)

	if !s.firstStop.Known() {
		s.firstStop = FirstStop{Status: FirstStopProvisional, Depth: s.Ceiling(r.gf)}
	}

	if best, ok := cfg.BestGas(r.depth, decoGases); ok {
		r.gas = best
	}

	if err := r.run(); err != nil {
		return Result{TTS: r.tts}, err
	}

	return Result{TTS: r.tts}, nil
}

// scheduler is the ascend/stop loop of one CalcDeco call.
type scheduler struct {
	s     *State
	sink  WaypointSink
	gases []Gas

	depth float64
	gas   Gas
	gf    float64
	tts   float64

	// travel minutes since the last reported waypoint
	pending float64
	steps   int
}

func (r *scheduler) run() error {
	cfg := r.s.cfg

	for {
		if err := r.ascend(); err != nil {
			return err
		}

		if r.s.firstStop.Status == FirstStopProvisional && !cfg.Surfaced(r.depth) {
			// the depth stays put: the gf line is anchored where the ceiling first was
			r.s.firstStop.Status = FirstStopFixed

			r.gf = r.s.GF(r.depth)
			if r.canLeave(r.s) {
				continue
			}
		}

		if cfg.Surfaced(r.depth) {
			r.flush(KindSurfaced)
			return nil
		}

		r.flush(KindTravel)

		if best, ok := cfg.BestGas(r.depth, r.gases); ok {
			r.gas = best
		}

		stop, err := r.stop()
		if err != nil {
			return err
		}

		if stop > 0 {
			r.tts += stop
			r.report(Waypoint{Depth: r.depth, Time: stop, Gas: r.gas}, KindDecoStop)
		}
	}
}

// ascend moves up as far as the ceiling allows, switching gas on the way.
func (r *scheduler) ascend() error {
	cfg := r.s.cfg

	for {
		if err := r.step(); err != nil {
			return err
		}

		nextStop := math.Max(r.s.Ceiling(r.gf), cfg.SurfacePressure)

		if next, switchDepth, ok := r.intermediateSwitch(nextStop); ok {
			if err := r.ascendTo(switchDepth); err != nil {
				return err
			}

			r.flush(KindTravel)

			r.gas = next

			if _, err := r.s.AddSegmentConst(r.depth, gasSwitchHold, r.gas); err != nil {
				return err
			}

			r.report(Waypoint{Depth: r.depth, Time: gasSwitchHold, Gas: r.gas}, KindGasSwitch)

			r.gf = r.s.GF(r.depth)

			continue
		}

		if nextStop >= r.depth-cfg.DepthTolerance {
			return nil
		}

		if err := r.ascendTo(nextStop); err != nil {
			return err
		}

		r.gf = r.s.GF(r.depth)

		if cfg.Surfaced(r.depth) || !r.canLeave(r.s) {
			return nil
		}
	}
}

// intermediateSwitch returns the next deco gas and the stop depth to switch
// at, if that depth lies between here and nextStop.
func (r *scheduler) intermediateSwitch(nextStop float64) (Gas, float64, bool) {
	cfg := r.s.cfg

	if !cfg.SwitchIntermediate {
		return Gas{}, 0, false
	}

	next, ok := cfg.NextGas(r.depth, r.gases)
	if !ok || next.Equal(r.gas) {
		return Gas{}, 0, false
	}

	switchDepth := r.s.RoundCeiling(next.MOD()) - r.s.stopIncrement

	if switchDepth <= nextStop+cfg.DepthTolerance || switchDepth >= r.depth-cfg.DepthTolerance {
		return Gas{}, 0, false
	}

	return next, switchDepth, true
}

// stop holds the current depth until the ceiling allows leaving, stepping
// coarse on a copy first and committing the coarse time in one segment.
func (r *scheduler) stop() (float64, error) {
	limit := r.s.cfg.StopLimit
	stop := 0.0

	probe := *r.s

	for {
		if _, err := probe.AddSegmentConst(r.depth, stepCoarse, r.gas); err != nil {
			return 0, err
		}

		if r.canLeave(&probe) {
			break
		}

		stop += stepCoarse

		if stop >= limit {
			return 0, r.fail(ErrStopNotConverged)
		}
	}

	if stop > 0 {
		if _, err := r.s.AddSegmentConst(r.depth, stop, r.gas); err != nil {
			return 0, err
		}
	}

	for !r.canLeave(r.s) {
		if _, err := r.s.AddSegmentConst(r.depth, stepFine, r.gas); err != nil {
			return 0, err
		}

		stop += stepFine

		if stop > limit {
			return 0, r.fail(ErrStopNotConverged)
		}
	}

	return stop, nil
}

// canLeave reports whether st's ceiling at the current gf is shallower than
// the current depth.
func (r *scheduler) canLeave(st *State) bool {
	return st.Ceiling(r.gf) < r.depth-r.s.cfg.DepthTolerance
}

func (r *scheduler) ascendTo(target float64) error {
	time := (r.depth - target) / r.s.cfg.AscentRate

	if _, err := r.s.AddSegmentAscDec(r.depth, target, time, r.gas); err != nil {
		return err
	}

	r.tts += time
	r.pending += time
	r.depth = target

	return nil
}

// flush reports the travel accumulated since the last waypoint, if any.
func (r *scheduler) flush(kind Kind) {
	if r.pending > 0 {
		r.report(Waypoint{Depth: r.depth, Time: r.pending, Gas: r.gas}, kind)
	}

	r.pending = 0
}

func (r *scheduler) report(wp Waypoint, kind Kind) {
	emit(r.sink, r.s, wp, kind)
}

func (r *scheduler) step() error {
	r.steps++

	if r.steps > r.s.cfg.MaxSteps {
		return r.fail(fmt.Errorf("%w: %d steps", ErrScheduleNotConverged, r.s.cfg.MaxSteps))
	}

	return nil
}

func (r *scheduler) fail(err error) error {
	return &ScheduleError{Depth: r.depth, Runtime: r.tts, Err: err}
}
