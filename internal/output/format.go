package output

import (
	"fmt"
	"math"

	"github.com/tsegers/opendeco/pkg/deco"
)

// Row markers.
const (
	SignAscent  = '↗' // north east arrow
	SignLevel   = '→' // rightwards arrow
	SignDescent = '↘' // south east arrow
	SignSwitch  = '↻' // clockwise open circle arrow
	Litre       = 'ℓ'
)

// MMSS formats minutes as "mmm:ss". Rounding to 60 seconds carries into
// the minutes.
func MMSS(minutes float64) string {
	mm, frac := math.Modf(minutes)
	ss := math.Round(frac * 60)

	mm += math.Floor(ss / 60)
	ss = math.Mod(ss, 60)

	return fmt.Sprintf("%3d:%02d", int(mm), int(ss))
}

// Metres converts an absolute pressure to whole metres of sea water.
func Metres(cfg deco.Config, depth float64) int {
	return int(math.Round(deco.BarToMSW(cfg.GaugeDepth(depth))))
}

// EADMetres is the equivalent air depth of gas at depth in whole metres,
// never negative.
func EADMetres(cfg deco.Config, depth float64, gas deco.Gas) int {
	return int(math.Round(deco.BarToMSW(math.Max(0, cfg.GaugeDepth(deco.EAD(depth, gas))))))
}

// Sign picks the row arrow for a leg from one depth to another. Depths
// within the depth tolerance count as level.
func Sign(cfg deco.Config, from, to float64) rune {
	switch {
	case cfg.SameDepth(from, to):
		return SignLevel
	case to < from:
		return SignAscent
	case to > from:
		return SignDescent
	}

	return SignLevel
}
