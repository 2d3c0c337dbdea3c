package cli_test

import (
	"strings"
	"testing"

	"github.com/tsegers/opendeco/internal/cli"
)

func Test_NDL_Lists_Default_Depth_Range_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("ndl")

	cli.AssertContains(t, stdout, "NO-DECOMPRESSION LIMITS")
	cli.AssertContains(t, stdout, "Gas: Air, GF 30/75")

	for _, depth := range []string{"   9m", "  21m", "  42m"} {
		cli.AssertContains(t, stdout, depth)
	}

	// header + gas line + blank + column header + 12 rows
	if got, want := len(strings.Split(stdout, "\n")), 16; got != want {
		t.Errorf("lines=%d, want=%d\n%s", got, want, stdout)
	}
}

func Test_NDL_Flags_Depths_Beyond_MOD_When_Nitrox(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("ndl", "-g", "EAN32", "--from", "30", "--to", "42", "--step", "12")

	lines := strings.Split(stdout, "\n")
	last := lines[len(lines)-1]

	cli.AssertContains(t, last, "42m")
	cli.AssertContains(t, last, "beyond MOD")
	cli.AssertNotContains(t, lines[len(lines)-2], "beyond MOD")
}

func Test_NDL_Fails_When_Range_Invalid(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("ndl", "--from", "30", "--to", "9")

	cli.AssertContains(t, stderr, "depth range")
}
