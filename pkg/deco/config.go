package deco

import (
	"fmt"
	"math"
	"strings"
)

// Model selects the published ZH-L16 coefficient set. The variants only
// differ in the nitrogen "a" coefficients.
type Model int

// ZH-L16 coefficient variants.
const (
	ZHL16A Model = iota
	ZHL16B
	ZHL16C
)

var modelNames = [...]string{
	ZHL16A: "ZHL-16A",
	ZHL16B: "ZHL-16B",
	ZHL16C: "ZHL-16C",
}

func (m Model) String() string {
	if m < ZHL16A || m > ZHL16C {
		return "???"
	}

	return modelNames[m]
}

// ParseModel accepts "ZHL-16C", "zhl16c", "C" and the like.
func ParseModel(s string) (Model, error) {
	key := strings.ToUpper(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	key = strings.TrimPrefix(key, "ZHL16")

	switch key {
	case "A":
		return ZHL16A, nil
	case "B":
		return ZHL16B, nil
	case "C":
		return ZHL16C, nil
	}

	return 0, fmt.Errorf("%w: unknown model %q", ErrInvalidConfig, s)
}

// Water vapour pressure in the lungs, by respiratory quotient.
const (
	WaterVapourBuhlmann  = 0.0627 // Rq = 1.0, least conservative
	WaterVapourNavy      = 0.0567 // Rq = 0.9
	WaterVapourSchreiner = 0.0493 // Rq = 0.8, most conservative
)

// Defaults used by [DefaultConfig].
const (
	DefaultSurfacePressure = 1.01325
	DefaultWaterVapour     = WaterVapourBuhlmann
	DefaultPO2Max          = 1.6
	DefaultENDMax          = 4.01325
	DefaultAscentRate      = 0.9 // bar/min, 9 msw/min

	// DefaultDepthTolerance is the pressure difference below which two depths
	// are treated as equal. Chosen, not physically derived: segment math
	// accumulates rounding error and never lands on exact values.
	DefaultDepthTolerance = 1e-2

	// DefaultRoundingDigits is the number of decimals a ceiling is rounded to
	// (in stop increments) before taking the next whole stop. Absorbs float
	// noise near exact stop boundaries.
	DefaultRoundingDigits = 4

	DefaultNDLLimit  = 360  // minutes
	DefaultStopLimit = 720  // minutes per stop
	DefaultMaxSteps  = 1000 // ascend/stop loop iterations
)

// Config holds the policy values threaded through every calculation.
// The zero value is not usable; start from [DefaultConfig].
type Config struct {
	Model           Model
	SurfacePressure float64 // bar
	WaterVapour     float64 // bar, subtracted from ambient pressure when loading

	// PO2Max and ENDMax bound the automatic MOD of a gas (see [ModAuto]).
	PO2Max float64
	ENDMax float64

	// SwitchIntermediate allows gas switches between stops, at the first
	// whole stop depth shallower than the gas MOD.
	SwitchIntermediate bool

	// LastStopAtSix folds the shallowest stop into the second-shallowest
	// one (6 m with a 3 m increment).
	LastStopAtSix bool

	AscentRate     float64 // bar/min
	DepthTolerance float64
	RoundingDigits int

	NDLLimit  float64 // upper bound of the NDL search, minutes
	StopLimit float64 // upper bound of a single stop, minutes
	MaxSteps  int     // upper bound of scheduler iterations
}

// DefaultConfig returns the configuration the reference planner uses.
func DefaultConfig() Config {
	return Config{
		Model:              ZHL16C,
		SurfacePressure:    DefaultSurfacePressure,
		WaterVapour:        DefaultWaterVapour,
		PO2Max:             DefaultPO2Max,
		ENDMax:             DefaultENDMax,
		SwitchIntermediate: true,
		LastStopAtSix:      false,
		AscentRate:         DefaultAscentRate,
		DepthTolerance:     DefaultDepthTolerance,
		RoundingDigits:     DefaultRoundingDigits,
		NDLLimit:           DefaultNDLLimit,
		StopLimit:          DefaultStopLimit,
		MaxSteps:           DefaultMaxSteps,
	}
}

// Validate reports the first invalid field, wrapped in [ErrInvalidConfig].
//
//nolint:cyclop // flat list of independent checks
func (c Config) Validate() error {
	switch {
	case c.Model < ZHL16A || c.Model > ZHL16C:
		return fmt.Errorf("%w: unknown model %d", ErrInvalidConfig, c.Model)
	case !(c.SurfacePressure > 0):
		return fmt.Errorf("%w: surface pressure must be positive", ErrInvalidConfig)
	case c.WaterVapour < 0 || c.WaterVapour >= c.SurfacePressure:
		return fmt.Errorf("%w: water vapour pressure out of range", ErrInvalidConfig)
	case !(c.PO2Max > 0) || !(c.ENDMax > 0):
		return fmt.Errorf("%w: MOD limits must be positive", ErrInvalidConfig)
	case !(c.AscentRate > 0):
		return fmt.Errorf("%w: ascent rate must be positive", ErrInvalidConfig)
	case !(c.DepthTolerance > 0):
		return fmt.Errorf("%w: depth tolerance must be positive", ErrInvalidConfig)
	case c.RoundingDigits < 0 || c.RoundingDigits > 12:
		return fmt.Errorf("%w: rounding digits must be 0-12", ErrInvalidConfig)
	case !(c.NDLLimit > 0) || !(c.StopLimit > 0) || c.MaxSteps <= 0:
		return fmt.Errorf("%w: search bounds must be positive", ErrInvalidConfig)
	}

	return nil
}

// AbsDepth converts a gauge pressure to absolute pressure.
func (c Config) AbsDepth(gauge float64) float64 {
	return gauge + c.SurfacePressure
}

// GaugeDepth converts an absolute pressure to gauge pressure.
func (c Config) GaugeDepth(abs float64) float64 {
	return abs - c.SurfacePressure
}

// SameDepth reports whether two absolute pressures are within DepthTolerance.
func (c Config) SameDepth(a, b float64) bool {
	return math.Abs(a-b) < c.DepthTolerance
}

// Surfaced reports whether depth is the surface.
func (c Config) Surfaced(depth float64) bool {
	return c.SameDepth(depth, c.SurfacePressure)
}

// Rq returns the respiratory quotient matching WaterVapour, or "???" for a
// custom value.
func (c Config) Rq() string {
	switch c.WaterVapour {
	case WaterVapourBuhlmann:
		return "1.0"
	case WaterVapourNavy:
		return "0.9"
	case WaterVapourSchreiner:
		return "0.8"
	}

	return "???"
}

// WaterVapourForRq maps a respiratory quotient (1.0, 0.9, 0.8) to the water
// vapour pressure used while loading tissues.
func WaterVapourForRq(rq float64) (float64, error) {
	switch math.Round(rq * 10) {
	case 10:
		return WaterVapourBuhlmann, nil
	case 9:
		return WaterVapourNavy, nil
	case 8:
		return WaterVapourSchreiner, nil
	}

	return 0, fmt.Errorf("%w: rq must be 1.0, 0.9 or 0.8, got %v", ErrInvalidConfig, rq)
}
