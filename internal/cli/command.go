package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command is one opendeco subcommand: plan, ndl, shell or print-config.
// Flag defaults come from the loaded config, so a Command is built per
// invocation and parsed once.
type Command struct {
	// Flags holds the command's own flags. Global flags (-C, -c, -v) are
	// consumed by Run before the command sees its arguments.
	Flags *flag.FlagSet

	// Usage starts with the command name, e.g. "plan -d <m> -t <min> [flags]".
	Usage string

	// Short is the line shown in the command list.
	Short string

	// Long replaces Short in "opendeco <cmd> --help" when set.
	Long string

	// Examples are full command lines printed at the end of the help.
	Examples []string

	// Exec plans, tabulates or prints. args are the positional arguments
	// left after flag parsing.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name is the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine is the command's row in the global usage.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-32s %s", c.Usage, c.Short)
}

// PrintHelp prints usage, description, flag defaults and examples.
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: opendeco", c.Usage)
	o.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	o.Println(desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")

		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		o.Printf("%s", buf.String())
	}

	if len(c.Examples) > 0 {
		o.Println()
		o.Println("Examples:")

		for _, ex := range c.Examples {
			o.Println("  opendeco", ex)
		}
	}
}

// Run parses args and calls Exec. Parse errors print the help after the
// error; Exec errors print only the error. Returns the exit code.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{})

	err := c.Flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)
			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o)

		return 1
	}

	if err := c.Exec(ctx, o, c.Flags.Args()); err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	return 0
}
