package deco

// BarToMSW converts a gauge pressure in bar to metres of sea water.
func BarToMSW(bar float64) float64 {
	return bar * 10
}

// MSWToBar converts metres of sea water to a gauge pressure in bar.
func MSWToBar(msw float64) float64 {
	return msw / 10
}

// PPO2 is the oxygen partial pressure of gas at depth.
func PPO2(depth float64, gas Gas) float64 {
	return float64(gas.O2()) / 100.0 * depth
}

// END is the equivalent narcotic depth of gas at depth, counting oxygen as
// narcotic.
func END(depth float64, gas Gas) float64 {
	return float64(gas.O2()+gas.N2()) / 100.0 * depth
}

// EAD is the equivalent air depth of gas at depth.
func EAD(depth float64, gas Gas) float64 {
	return depth * float64(gas.N2()) / 79.0
}
