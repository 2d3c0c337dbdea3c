package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"
)

const shellPrompt = "opendeco> "

// prompter reads one line of input.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// scanPrompter reads lines from a non-terminal input such as a pipe.
type scanPrompter struct {
	sc *bufio.Scanner
}

func (s scanPrompter) Prompt(string) (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}

	if err := s.sc.Err(); err != nil {
		return "", err
	}

	return "", io.EOF
}

// ShellCmd returns the shell command.
func ShellCmd(e *env) *Command {
	return &Command{
		Flags: flag.NewFlagSet("shell", flag.ContinueOnError),
		Usage: "shell",
		Short: "Run commands interactively",
		Long: `Read commands line by line and run them with the loaded configuration.
Type 'help' for the command list and 'exit' to leave.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: %v", ErrUnexpectedArgs, args)
			}

			return execShell(ctx, e, o)
		},
	}
}

func execShell(ctx context.Context, e *env, o *IO) error {
	var (
		p    prompter
		line *liner.State
	)

	if f, ok := e.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		line = liner.NewLiner()
		defer line.Close()

		line.SetCtrlCAborts(true)
		line.SetCompleter(completer(e))

		path := historyPath(e.vars)
		loadHistory(line, path)

		defer saveHistory(line, path, e.logger)

		p = line
	} else {
		in := e.in
		if in == nil {
			in = strings.NewReader("")
		}

		p = scanPrompter{sc: bufio.NewScanner(in)}
	}

	o.Println("opendeco shell. Type 'help' for commands, 'exit' to leave.")

	for ctx.Err() == nil {
		input, err := p.Prompt(shellPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		fields := strings.Fields(input)
		if len(fields) == 0 {
			continue
		}

		if line != nil {
			line.AppendHistory(input)
		}

		switch strings.ToLower(fields[0]) {
		case "exit", "quit", "q":
			return nil
		case "help", "?":
			printUsage(o)
		case "shell":
			o.ErrPrintln("error:", ErrNestedShell)
		default:
			code := dispatch(ctx, e, NewIO(o.out, o.errOut), fields)
			e.logger.Debug("shell command finished",
				slog.String("component", "shell"),
				slog.String("command", fields[0]),
				slog.Int("exit", code),
			)
		}
	}

	return nil
}

// completer completes command names at the start of the line.
func completer(e *env) liner.Completer {
	var names []string
	for name := range commands(e) {
		if name != "shell" {
			names = append(names, name)
		}
	}

	names = append(names, "help", "exit")
	slices.Sort(names)

	return func(line string) []string {
		var out []string

		for _, name := range names {
			if strings.HasPrefix(name, strings.ToLower(line)) {
				out = append(out, name)
			}
		}

		return out
	}
}

// historyPath returns $XDG_STATE_HOME/opendeco/history if set, otherwise
// ~/.local/state/opendeco/history. Empty if the home directory is unknown.
func historyPath(vars map[string]string) string {
	if state := vars["XDG_STATE_HOME"]; state != "" {
		return filepath.Join(state, "opendeco", "history")
	}

	if home := vars["HOME"]; home != "" {
		return filepath.Join(home, ".local", "state", "opendeco", "history")
	}

	return ""
}

func loadHistory(line *liner.State, path string) {
	if path == "" {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = line.ReadHistory(f)
}

func saveHistory(line *liner.State, path string, logger *slog.Logger) {
	if path == "" {
		return
	}

	var buf bytes.Buffer
	if _, err := line.WriteHistory(&buf); err != nil {
		logger.Warn("cannot save history", slog.String("component", "shell"), slog.Any("error", err))

		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		logger.Warn("cannot save history", slog.String("component", "shell"), slog.Any("error", err))

		return
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		logger.Warn("cannot save history", slog.String("component", "shell"), slog.Any("error", err))
	}
}
