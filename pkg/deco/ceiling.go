package deco

import "math"

// coefficients blends the nitrogen and helium a/b values of compartment i
// in proportion to the inert gas pressures it currently holds.
func (s *State) coefficients(i int) (a, b float64) {
	an := zhl16N2[i].a[s.cfg.Model]
	bn := zhl16N2[i].b

	ah := zhl16He[i].a
	bh := zhl16He[i].b

	pn2 := s.pn2[i]
	phe := s.phe[i]

	a = ((an * pn2) + (ah * phe)) / (pn2 + phe)
	b = ((bn * pn2) + (bh * phe)) / (pn2 + phe)

	return a, b
}

// RawCeiling is the tolerated ambient pressure of the limiting compartment
// at gradient factor gf (percent), before rounding to a stop.
func (s *State) RawCeiling(gf float64) float64 {
	c := 0.0
	gf /= 100

	for i := 0; i < Compartments; i++ {
		a, b := s.coefficients(i)
		p := s.pn2[i] + s.phe[i]

		c = max(c, (p-(a*gf))/(gf/b+1-gf))
	}

	return c
}

// Ceiling is RawCeiling rounded to the next whole stop (see RoundCeiling).
func (s *State) Ceiling(gf float64) float64 {
	return s.RoundCeiling(s.RawCeiling(gf))
}

// RoundCeiling rounds an absolute pressure up to the next whole stop
// increment. The stop number is first rounded to RoundingDigits decimals so
// float noise right at a boundary does not add a stop. With LastStopAtSix the
// first increment is skipped in favour of the second.
//
// Panics if the stop increment is zero (zero State).
func (s *State) RoundCeiling(c float64) float64 {
	if s.stopIncrement == 0 {
		panic("deco: stop increment is zero")
	}

	scale := math.Pow10(s.cfg.RoundingDigits)
	stop := math.Ceil(math.Round(s.cfg.GaugeDepth(c)/s.stopIncrement*scale) / scale)

	if stop == 1 && s.cfg.LastStopAtSix {
		stop = 2
	}

	return s.cfg.AbsDepth(s.stopIncrement * stop)
}

// lastStop is the gauge pressure of the shallowest stop.
func (s *State) lastStop() float64 {
	if s.cfg.LastStopAtSix {
		return 2 * s.stopIncrement
	}

	return s.stopIncrement
}

// GF returns the gradient factor (percent) that applies at depth.
//
// Before a first stop is recorded the low factor applies everywhere, so the
// first stop is found with the most conservative setting. Afterwards the
// factor runs linearly from GFLow at the first stop to GFHigh at the last
// stop, and stays at GFHigh above it.
func (s *State) GF(depth float64) float64 {
	lo := float64(s.gfLow)
	hi := float64(s.gfHigh)

	if !s.firstStop.Known() {
		return lo
	}

	if depth <= s.cfg.SurfacePressure+s.lastStop() {
		return hi
	}

	if depth >= s.firstStop.Depth {
		return lo
	}

	return hi - (hi-lo)*s.cfg.GaugeDepth(depth-s.stopIncrement)/s.cfg.GaugeDepth(s.firstStop.Depth-s.stopIncrement)
}

// GF99 is the supersaturation of the leading compartment at depth, as a
// percentage of its M-value gradient.
func (s *State) GF99(depth float64) float64 {
	gf := 0.0

	for i := 0; i < Compartments; i++ {
		a, b := s.coefficients(i)
		p := s.pn2[i] + s.phe[i]

		gf = max(gf, (p-depth)/(a+depth/b-depth))
	}

	return gf * 100
}
