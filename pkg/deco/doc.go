// Package deco computes decompression schedules with the Bühlmann ZH-L16
// tissue model, Erik Baker gradient factors and intermediate gas switching.
//
// A plan starts from a [State] created with [NewState]. The bottom profile is
// replayed with [State.SimulateDive], after which [State.CalcDeco] either
// reports the remaining no-decompression limit (direct ascent possible) or
// produces the ascent/stop/gas-switch schedule and the time to surface.
//
// # Basic Usage
//
//	cfg := deco.DefaultConfig()
//	st, err := deco.NewState(cfg, 30, 75, deco.MSWToBar(3))
//	if err != nil {
//	    return err
//	}
//
//	ean32, _ := cfg.NewGas(32, 0, deco.ModAuto)
//	ean50, _ := cfg.NewGas(50, 0, deco.ModAuto)
//	bottom := cfg.AbsDepth(deco.MSWToBar(30))
//
//	err = st.SimulateDive([]deco.Waypoint{
//	    {Depth: bottom, Time: 3.333, Gas: ean32},
//	    {Depth: bottom, Time: 116.666, Gas: ean32},
//	}, sink)
//
//	res, err := st.CalcDeco(bottom, ean32, []deco.Gas{ean50}, sink)
//
// # Units
//
// All depths are absolute pressures in bar. [Config.AbsDepth] and
// [Config.GaugeDepth] convert to and from gauge pressure, [BarToMSW] and
// [MSWToBar] convert gauge pressure to and from metres of sea water.
//
// # Exploratory copies
//
// [State] is a plain value: copying it is cheap and the copy is fully
// independent. Direct-ascent tests, NDL searches and "+N minutes" projections
// run on copies and never touch the caller's state. The waypoint sink receives
// a copy as well, so a sink cannot mutate the state being scheduled.
//
// # Error Handling
//
// Precondition violations ([ErrInvalidDuration], [ErrInvalidStopIncrement],
// [ErrInvalidGas], [ErrInvalidGradientFactors], [ErrInvalidConfig],
// [ErrFirstStopFixed]) are programming errors.
//
// Non-convergence ([ErrNDLBound], [ErrStopNotConverged],
// [ErrScheduleNotConverged]) means no schedule exists within the model's
// search bounds for the given exposure.
package deco
