// Package gasname converts between breathing gas names and [deco.Gas].
//
// Accepted names: "Air", "Oxygen", "EAN32", "Nitrox 32" and "O2/He" trimix
// notation such as "21/35". Matching is case-insensitive and ignores
// surrounding whitespace.
package gasname

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tsegers/opendeco/pkg/deco"
)

// ErrUnknown is returned when a name does not match any accepted form.
var ErrUnknown = errors.New("unknown gas name")

// Parse reads a gas name and builds the gas with an automatic MOD derived
// from cfg.
func Parse(cfg deco.Config, name string) (deco.Gas, error) {
	o2, he, err := Split(name)
	if err != nil {
		return deco.Gas{}, err
	}

	return cfg.NewGas(o2, he, deco.ModAuto)
}

// ParseList reads a comma separated list of gas names. Empty entries are
// skipped, so "" yields no gases.
func ParseList(cfg deco.Config, list string) ([]deco.Gas, error) {
	var gases []deco.Gas

	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}

		g, err := Parse(cfg, part)
		if err != nil {
			return nil, err
		}

		gases = append(gases, g)
	}

	return gases, nil
}

// Split returns the oxygen and helium percentages a name stands for.
func Split(name string) (o2, he int, err error) {
	s := strings.ToLower(strings.TrimSpace(name))

	switch {
	case s == "air":
		return 21, 0, nil
	case s == "oxygen" || s == "o2":
		return 100, 0, nil
	case strings.HasPrefix(s, "ean"):
		o2, err = percent(strings.TrimPrefix(s, "ean"))
	case strings.HasPrefix(s, "nitrox"):
		o2, err = percent(strings.TrimPrefix(s, "nitrox"))
	case strings.Contains(s, "/"):
		o2s, hes, _ := strings.Cut(s, "/")

		o2, err = percent(o2s)
		if err == nil {
			he, err = percent(hes)
		}
	default:
		err = strconv.ErrSyntax
	}

	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknown, name)
	}

	return o2, he, nil
}

func percent(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// Format names a gas the way Parse reads it back: "Air", "Oxygen",
// "Nitrox 32" or "21/35".
func Format(g deco.Gas) string {
	switch {
	case g.O2() == 21 && g.He() == 0:
		return "Air"
	case g.O2() == 100:
		return "Oxygen"
	case g.He() == 0:
		return fmt.Sprintf("Nitrox %d", g.O2())
	}

	return fmt.Sprintf("%d/%d", g.O2(), g.He())
}
