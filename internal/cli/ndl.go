package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/tsegers/opendeco/internal/gasname"
	"github.com/tsegers/opendeco/internal/plan"
)

// NDLCmd returns the ndl command.
func NDLCmd(e *env) *Command {
	cfg := e.cfg
	fs := flag.NewFlagSet("ndl", flag.ContinueOnError)

	model := addModelFlags(fs, cfg)
	from := fs.Float64("from", 9, "Shallowest depth in meters")
	to := fs.Float64("to", 42, "Deepest depth in meters")
	step := fs.Float64("step", 3, "Depth step in meters")

	return &Command{
		Flags: fs,
		Usage: "ndl [flags]",
		Short: "Print no-decompression limits for a gas",
		Long:  "List the no-decompression limit of a gas over a range of depths, for a diver without prior exposure.",
		Examples: []string{
			"ndl -g EAN32",
			"ndl -g Air --from 12 --to 30 --step 6 -H 85",
		},
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: %v", ErrUnexpectedArgs, args)
			}

			eff := model.apply(cfg)

			dc, err := resolve(eff)
			if err != nil {
				return err
			}

			gas, err := gasname.Parse(dc, eff.Dive.Gas)
			if err != nil {
				return err
			}

			rows, err := plan.New(dc, e.logger).NDLTable(gas, eff.Deco.GFLow, eff.Deco.GFHigh, *from, *to, *step)
			if err != nil {
				return err
			}

			r, err := renderer(o, eff)
			if err != nil {
				return err
			}

			r.NDLTable(gas, eff.Deco.GFLow, eff.Deco.GFHigh, rows)

			return nil
		},
	}
}
