package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/tsegers/opendeco/internal/config"
	"github.com/tsegers/opendeco/internal/output"
	"github.com/tsegers/opendeco/pkg/deco"
)

// modelFlags are the settings shared by every command that runs the model.
type modelFlags struct {
	gas      *string
	pressure *float64
	gfLow    *int
	gfHigh   *int
	model    *string
	rq       *float64
	lang     *string
	color    *string
}

func addModelFlags(fs *flag.FlagSet, cfg config.Config) *modelFlags {
	return &modelFlags{
		gas:      fs.StringP("gas", "g", cfg.Dive.Gas, "Bottom gas (Air, Oxygen, EAN32, Nitrox 32, 21/35)"),
		pressure: fs.Float64P("pressure", "p", cfg.Dive.SurfacePressure, "Surface air pressure in bar"),
		gfLow:    fs.IntP("gflow", "L", cfg.Deco.GFLow, "Gradient factor at the first stop"),
		gfHigh:   fs.IntP("gfhigh", "H", cfg.Deco.GFHigh, "Gradient factor at the surface"),
		model:    fs.String("model", cfg.Deco.Model, "Coefficient set: ZHL-16A, ZHL-16B or ZHL-16C"),
		rq:       fs.Float64("rq", cfg.Deco.Rq, "Respiratory quotient: 1.0, 0.9 or 0.8"),
		lang:     fs.String("lang", cfg.Conf.Lang, "Output language: en or nl"),
		color:    fs.String("color", cfg.Conf.Color, "Colour output: auto, always or never"),
	}
}

func (f *modelFlags) apply(cfg config.Config) config.Config {
	cfg.Dive.Gas = *f.gas
	cfg.Dive.SurfacePressure = *f.pressure
	cfg.Deco.GFLow = *f.gfLow
	cfg.Deco.GFHigh = *f.gfHigh
	cfg.Deco.Model = *f.model
	cfg.Deco.Rq = *f.rq
	cfg.Conf.Lang = *f.lang
	cfg.Conf.Color = *f.color

	return cfg
}

// renderer builds the table renderer for the effective settings.
func renderer(o *IO, cfg config.Config) (*output.Renderer, error) {
	return output.New(o, output.Options{
		ShowTravel: cfg.Conf.ShowTravel,
		Color:      output.ColorEnabled(cfg.Conf.Color, o.out),
		Lang:       cfg.Conf.Lang,
	})
}

// resolve validates the effective settings and returns the core policy.
func resolve(cfg config.Config) (deco.Config, error) {
	if err := cfg.Validate(); err != nil {
		return deco.Config{}, err
	}

	return cfg.DecoConfig()
}
