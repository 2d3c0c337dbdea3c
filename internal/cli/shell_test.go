package cli_test

import (
	"strings"
	"testing"

	"github.com/tsegers/opendeco/internal/cli"
)

func Test_Shell_Runs_Commands_From_Input_When_Not_A_Terminal(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, code := c.RunWithInput("plan -d 30 -t 40 -g EAN32\n\nndl -g EAN32\nexit\nplan -d 18 -t 30\n", "shell")

	if got, want := code, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr: %s", got, want, stderr)
	}

	cli.AssertContains(t, stdout, "opendeco shell")
	cli.AssertContains(t, stdout, "DIVE PLAN")
	cli.AssertContains(t, stdout, "NO-DECOMPRESSION LIMITS")

	if got, want := strings.Count(stdout, "DIVE PLAN"), 1; got != want {
		t.Errorf("plans=%d, want=%d (input after exit must be ignored)", got, want)
	}
}

func Test_Shell_Resets_Flags_Between_Commands(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, _, code := c.RunWithInput("plan -d 30 -t 20 -g EAN32\nplan -d 20 -t 20\n", "shell")

	if got, want := code, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d", got, want)
	}

	if got, want := strings.Count(stdout, "Nitrox 32:"), 1; got != want {
		t.Errorf("Nitrox 32 usage lines=%d, want=%d", got, want)
	}

	if got, want := strings.Count(stdout, "Air:"), 1; got != want {
		t.Errorf("Air usage lines=%d, want=%d", got, want)
	}
}

func Test_Shell_Reports_Errors_And_Continues(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, code := c.RunWithInput("dive\nshell\nplan -d 30\nhelp\nplan -d 18 -t 30\n", "shell")

	if got, want := code, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stderr, "unknown command: dive")
	cli.AssertContains(t, stderr, "already in the shell")
	cli.AssertContains(t, stderr, "options -d and -t are required")
	cli.AssertContains(t, stdout, "Usage: opendeco")
	cli.AssertContains(t, stdout, "DIVE PLAN")
}

func Test_Shell_Ends_At_End_Of_Input(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, _, code := c.RunWithInput("", "shell")

	if got, want := code, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stdout, "opendeco shell")
}
