package deco

import (
	"fmt"
	"math"
)

// FirstStopStatus tracks how much is known about the first stop.
type FirstStopStatus uint8

const (
	// FirstStopUnknown means no schedule has started on this state.
	FirstStopUnknown FirstStopStatus = iota

	// FirstStopProvisional means the first stop was estimated from the
	// ceiling at the bottom and no ascent has been stopped by it yet.
	FirstStopProvisional

	// FirstStopFixed means the scheduler reached a depth it had to stop at.
	// The depth keeps the estimate; only the status changes.
	FirstStopFixed
)

// FirstStop is the depth (absolute pressure) of the first decompression stop
// together with how settled it is. Depth is meaningless while unknown.
type FirstStop struct {
	Status FirstStopStatus
	Depth  float64
}

// Known reports whether a depth has been recorded, provisionally or not.
func (f FirstStop) Known() bool {
	return f.Status != FirstStopUnknown
}

// State is the tissue loading of all compartments plus the scheduling context
// of one plan. Copying a State yields an independent what-if branch.
type State struct {
	pn2 [Compartments]float64
	phe [Compartments]float64

	gfLow  int
	gfHigh int

	firstStop     FirstStop
	maxDepth      float64
	stopIncrement float64

	cfg Config
}

// NewState returns a state with tissues saturated with air at the surface.
//
// gfLow and gfHigh are percentages (0-100, low <= high). stopIncrement is
// the pressure spacing of stops, e.g. MSWToBar(3).
func NewState(cfg Config, gfLow, gfHigh int, stopIncrement float64) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if gfLow < 0 || gfHigh > 100 || gfLow > gfHigh {
		return nil, fmt.Errorf("%w: %d/%d", ErrInvalidGradientFactors, gfLow, gfHigh)
	}

	if !(stopIncrement > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStopIncrement, stopIncrement)
	}

	st := &State{
		gfLow:         gfLow,
		gfHigh:        gfHigh,
		stopIncrement: stopIncrement,
		cfg:           cfg,
	}

	pn2 := 0.79 * (cfg.SurfacePressure - cfg.WaterVapour)
	phe := 0.00 * (cfg.SurfacePressure - cfg.WaterVapour)

	for i := 0; i < Compartments; i++ {
		st.pn2[i] = pn2
		st.phe[i] = phe
	}

	return st, nil
}

// Clone returns an independent copy of s.
func (s *State) Clone() *State {
	c := *s
	return &c
}

// Config returns the policy the state was created with.
func (s *State) Config() Config { return s.cfg }

// GFLow returns the gradient factor applied at the first stop.
func (s *State) GFLow() int { return s.gfLow }

// GFHigh returns the gradient factor applied at the surface.
func (s *State) GFHigh() int { return s.gfHigh }

// StopIncrement returns the stop spacing in bar.
func (s *State) StopIncrement() float64 { return s.stopIncrement }

// MaxDepth returns the deepest absolute pressure reached so far, 0 before
// any segment.
func (s *State) MaxDepth() float64 { return s.maxDepth }

// FirstStop returns the first stop as currently known.
func (s *State) FirstStop() FirstStop { return s.firstStop }

// Tissues returns the nitrogen and helium pressures per compartment.
func (s *State) Tissues() (n2, he [Compartments]float64) {
	return s.pn2, s.phe
}

// AddSegmentConst loads tissues for time minutes at a constant depth
// (Haldane equation) and returns the elapsed time.
func (s *State) AddSegmentConst(depth, time float64, gas Gas) (float64, error) {
	if !(time > 0) {
		return 0, fmt.Errorf("%w: %v min at constant depth", ErrInvalidDuration, time)
	}

	wv := s.cfg.WaterVapour

	for i := 0; i < Compartments; i++ {
		pio := gas.FHe() * (depth - wv)
		po := s.phe[i]
		k := math.Log(2) / zhl16He[i].halfTime

		s.phe[i] = po + (pio-po)*(1-math.Exp(-k*time))
	}

	for i := 0; i < Compartments; i++ {
		pio := gas.FN2() * (depth - wv)
		po := s.pn2[i]
		k := math.Log(2) / zhl16N2[i].halfTime

		s.pn2[i] = po + (pio-po)*(1-math.Exp(-k*time))
	}

	if depth > s.maxDepth {
		s.maxDepth = depth
	}

	return time, nil
}

// AddSegmentAscDec loads tissues for a linear ascent or descent from dstart
// to dend over time minutes (Schreiner equation) and returns the elapsed
// time.
func (s *State) AddSegmentAscDec(dstart, dend, time float64, gas Gas) (float64, error) {
	if !(time > 0) {
		return 0, fmt.Errorf("%w: %v min from %.3f to %.3f bar", ErrInvalidDuration, time, dstart, dend)
	}

	wv := s.cfg.WaterVapour
	rate := (dend - dstart) / time

	for i := 0; i < Compartments; i++ {
		pio := gas.FHe() * (dstart - wv)
		po := s.phe[i]
		r := gas.FHe() * rate
		k := math.Log(2) / zhl16He[i].halfTime

		s.phe[i] = pio + r*(time-1/k) - (pio-po-(r/k))*math.Exp(-k*time)
	}

	for i := 0; i < Compartments; i++ {
		pio := gas.FN2() * (dstart - wv)
		po := s.pn2[i]
		r := gas.FN2() * rate
		k := math.Log(2) / zhl16N2[i].halfTime

		s.pn2[i] = pio + r*(time-1/k) - (pio-po-(r/k))*math.Exp(-k*time)
	}

	if dend > s.maxDepth {
		s.maxDepth = dend
	}

	return time, nil
}
