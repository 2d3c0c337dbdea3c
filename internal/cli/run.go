package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tsegers/opendeco/internal/config"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// env carries what every command needs besides its flags.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	vars   map[string]string
	in     io.Reader
}

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, environ map[string]string, sigCh <-chan os.Signal) int {
	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut)

		return 1
	}

	level := slog.LevelWarn
	if flags.verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		Env:             environ,
	})
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut)

		return 1
	}

	logger.Debug("config loaded",
		slog.String("component", "cli"),
		slog.String("global", cfg.Sources.Global),
		slog.String("project", cfg.Sources.Project),
	)

	if len(flags.remaining) == 0 || flags.remaining[0] == "-h" || flags.remaining[0] == helpFlag {
		printUsage(out)

		return 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	e := &env{cfg: cfg, logger: logger, vars: environ, in: in}

	return dispatch(ctx, e, NewIO(out, errOut), flags.remaining)
}

// dispatch runs one command line (command name first). Returns exit code.
func dispatch(ctx context.Context, e *env, o *IO, line []string) int {
	name := line[0]

	cmd, ok := commands(e)[name]
	if !ok {
		o.ErrPrintln("error: unknown command:", name)
		printUsage(o.errOut)

		return 1
	}

	if code := cmd.Run(ctx, o, line[1:]); code != 0 {
		return code
	}

	return o.Finish()
}

// commands builds a fresh command set; flag sets keep state between parses.
func commands(e *env) map[string]*Command {
	all := []*Command{
		PlanCmd(e),
		NDLCmd(e),
		ShellCmd(e),
		PrintConfigCmd(&e.cfg),
	}

	byName := make(map[string]*Command, len(all))
	for _, c := range all {
		byName[c.Name()] = c
	}

	return byName
}

type globalFlags struct {
	workDir    string
	configPath string
	verbose    bool
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if arg == "-C" || arg == "--cwd" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", ErrFlagRequiresArg, arg)
		}

		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", ErrFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	if arg == "-v" || arg == "--verbose" {
		flags.verbose = true

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", ErrUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer) {
	fprintln(w, `opendeco - Buhlmann ZH-L16 decompression planner with gradient factors

Usage: opendeco [options] <command> [args]

Options:
  -C, --cwd <dir>    Run as if started in <dir>
  -c, --config       Use specified config file
  -v, --verbose      Log diagnostics to stderr

Commands:`)

	e := &env{cfg: config.Default()}
	for _, name := range []string{"plan", "ndl", "shell", "print-config"} {
		fprintln(w, commands(e)[name].HelpLine())
	}

	fprintln(w, `
Examples:
  opendeco plan -d 18 -t 60 -g Air
  opendeco plan -d 30 -t 60 -g EAN32
  opendeco plan -d 40 -t 120 -g 21/35 -L 20 -H 80 -G Oxygen,EAN50`)
}
