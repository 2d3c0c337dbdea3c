package deco

import "fmt"

// ModAuto asks [Config.NewGas] to derive the MOD from PO2Max and ENDMax.
const ModAuto = 0

// Gas is an immutable breathing mix. Fractions are whole percentages;
// nitrogen is the remainder.
//
// Gas is comparable and can be used as a map key. Two gases are equal when
// oxygen, helium and MOD all match.
type Gas struct {
	o2  uint8
	he  uint8
	mod float64
}

// NewGas builds a gas with the default PO2/END limits. See [Config.NewGas].
func NewGas(o2, he int, mod float64) (Gas, error) {
	return DefaultConfig().NewGas(o2, he, mod)
}

// NewGas builds a gas from oxygen and helium percentages. A mod of [ModAuto]
// computes min(PO2Max / fO2, ENDMax / (1 - fHe)); any other value is used as
// the absolute-pressure MOD as given.
func (c Config) NewGas(o2, he int, mod float64) (Gas, error) {
	if o2 < 0 || he < 0 || o2+he > 100 {
		return Gas{}, fmt.Errorf("%w: o2=%d he=%d", ErrInvalidGas, o2, he)
	}

	if mod < 0 {
		return Gas{}, fmt.Errorf("%w: negative mod %v", ErrInvalidGas, mod)
	}

	if mod == ModAuto {
		modPO2 := c.PO2Max / (float64(o2) / 100.0)
		modEND := c.ENDMax / (1 - float64(he)/100.0)

		mod = min(modPO2, modEND)
	}

	return Gas{o2: uint8(o2), he: uint8(he), mod: mod}, nil
}

// O2 is the oxygen percentage.
func (g Gas) O2() int { return int(g.o2) }

// He is the helium percentage.
func (g Gas) He() int { return int(g.he) }

// N2 is the nitrogen percentage, 100 - O2 - He.
func (g Gas) N2() int { return 100 - int(g.o2) - int(g.he) }

// MOD is the maximum operating depth as an absolute pressure.
func (g Gas) MOD() float64 { return g.mod }

// FO2 is the oxygen fraction.
func (g Gas) FO2() float64 { return float64(g.o2) / 100.0 }

// FHe is the helium fraction.
func (g Gas) FHe() float64 { return float64(g.he) / 100.0 }

// FN2 is the nitrogen fraction.
func (g Gas) FN2() float64 { return float64(g.N2()) / 100.0 }

// Equal reports whether both gases have the same mix and MOD.
func (g Gas) Equal(other Gas) bool {
	return g.o2 == other.o2 && g.he == other.he && g.mod == other.mod
}

// WithMOD returns a copy of g with an explicit MOD.
func (g Gas) WithMOD(mod float64) Gas {
	g.mod = mod
	return g
}

// IsZero reports whether g is the zero Gas (no oxygen, no helium, no MOD).
func (g Gas) IsZero() bool {
	return g == Gas{}
}

func (g Gas) String() string {
	return fmt.Sprintf("%d/%d", g.o2, g.he)
}

// BestGas picks, among gases breathable at depth (MOD at or below depth,
// within DepthTolerance), the one with the shallowest MOD. The second
// result is false when no gas qualifies.
func (c Config) BestGas(depth float64, gases []Gas) (Gas, bool) {
	var best Gas

	found := false

	for _, g := range gases {
		if depth-g.mod < c.DepthTolerance && (!found || g.mod < best.mod) {
			best = g
			found = true
		}
	}

	return best, found
}

// NextGas picks, among gases not yet breathable at depth, the one with the
// deepest MOD: the first gas that becomes usable on the way up.
func (c Config) NextGas(depth float64, gases []Gas) (Gas, bool) {
	var next Gas

	found := false

	for _, g := range gases {
		if depth-g.mod >= c.DepthTolerance && (!found || g.mod > next.mod) {
			next = g
			found = true
		}
	}

	return next, found
}
