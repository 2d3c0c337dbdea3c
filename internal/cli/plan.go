package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/tsegers/opendeco/internal/gasname"
	"github.com/tsegers/opendeco/internal/output"
	"github.com/tsegers/opendeco/internal/plan"
)

// PlanCmd returns the plan command.
func PlanCmd(e *env) *Command {
	cfg := e.cfg
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)

	model := addModelFlags(fs, cfg)
	depth := fs.Float64P("depth", "d", -1, "Depth of the dive in meters")
	runtime := fs.Float64P("time", "t", -1, "Time of the dive in minutes")
	rmv := fs.Float64P("rmv", "r", cfg.Dive.RMV, "RMV during the dive portion of the dive")
	decoGases := fs.StringP("decogasses", "G", cfg.Deco.DecoGases, "Comma separated gases available for deco")
	stopsOnly := fs.BoolP("switch-at-stops", "S", !cfg.Deco.SwitchIntermediate, "Only switch gas at deco stops")
	six := fs.BoolP("last-stop-at-six", "6", cfg.Deco.LastStopAtSix, "Perform last deco stop at 6m")
	decoRMV := fs.Float64P("decormv", "R", cfg.Deco.RMV, "RMV during the deco portion of the dive")
	travel := fs.BoolP("show-travel", "T", cfg.Conf.ShowTravel, "Show travel segments between stops")
	extend := fs.BoolP("extend-to-ndl", "x", false, "Stay at the bottom until the NDL on no-deco dives")
	export := fs.StringP("output", "o", "", "Also write the plan as JSON to `file`")

	return &Command{
		Flags: fs,
		Usage: "plan -d <m> -t <min> [flags]",
		Short: "Plan a dive and print the schedule",
		Long: `Simulate a square profile (descent at 9 m/min, then bottom time) and print
the decompression schedule, gas consumption and time to surface.`,
		Examples: []string{
			"plan -d 18 -t 60 -g Air",
			"plan -d 40 -t 25 -g 21/35 -L 20 -H 80 -G Oxygen,EAN50",
			"plan -d 30 -t 60 -g EAN32 -o plan.json",
		},
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: %v", ErrUnexpectedArgs, args)
			}

			if *depth < 0 || *runtime < 0 {
				return ErrDepthTimeNeeded
			}

			eff := model.apply(cfg)
			eff.Dive.RMV = *rmv
			eff.Deco.RMV = *decoRMV
			eff.Deco.DecoGases = *decoGases
			eff.Deco.SwitchIntermediate = !*stopsOnly
			eff.Deco.LastStopAtSix = *six
			eff.Conf.ShowTravel = *travel

			dc, err := resolve(eff)
			if err != nil {
				return err
			}

			gas, err := gasname.Parse(dc, eff.Dive.Gas)
			if err != nil {
				return err
			}

			gases, err := gasname.ParseList(dc, eff.Deco.DecoGases)
			if err != nil {
				return err
			}

			p, err := plan.New(dc, e.logger).Plan(plan.Dive{
				Depth:       *depth,
				Time:        *runtime,
				Gas:         gas,
				DecoGases:   gases,
				GFLow:       eff.Deco.GFLow,
				GFHigh:      eff.Deco.GFHigh,
				RMVDive:     eff.Dive.RMV,
				RMVDeco:     eff.Deco.RMV,
				ExtendToNDL: *extend,
			})
			if err != nil {
				return err
			}

			r, err := renderer(o, eff)
			if err != nil {
				return err
			}

			r.Plan(p)

			if *export == "" {
				return nil
			}

			path := *export
			if !filepath.IsAbs(path) {
				path = filepath.Join(cfg.EffectiveCwd, path)
			}

			if err := output.Export(path, p); err != nil {
				return err
			}

			e.logger.Debug("plan exported", slog.String("component", "cli"), slog.String("path", path))

			return nil
		},
	}
}
