package cli_test

import (
	"testing"

	"github.com/tsegers/opendeco/internal/cli"
)

func Test_Print_Config_Defaults_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("print-config")

	cli.AssertContains(t, stdout, "effective_cwd="+c.Dir)
	cli.AssertContains(t, stdout, `"gflow": 30`)
	cli.AssertContains(t, stdout, `"gfhigh": 75`)
	cli.AssertContains(t, stdout, `"gas": "Air"`)
	cli.AssertContains(t, stdout, "(defaults only)")
}

func Test_Print_Config_From_Project_File_With_Comments_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile(".opendeco.json", `{
		// conservative profile
		"deco": {"gflow": 20, "gfhigh": 70,},
	}`)

	stdout := c.MustRun("print-config")

	cli.AssertContains(t, stdout, `"gflow": 20`)
	cli.AssertContains(t, stdout, `"gfhigh": 70`)
	cli.AssertContains(t, stdout, "project_config="+path)
	cli.AssertNotContains(t, stdout, "global_config=")
}

func Test_Print_Config_Project_Overrides_Global_When_Both_Exist(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	global := c.WriteFile("home/.config/opendeco/config.json", `{"dive": {"gas": "EAN32", "rmv": 18}}`)
	c.WriteFile(".opendeco.json", `{"dive": {"gas": "EAN36"}}`)

	stdout := c.MustRun("print-config")

	cli.AssertContains(t, stdout, `"gas": "EAN36"`)
	cli.AssertContains(t, stdout, `"rmv": 18`)
	cli.AssertContains(t, stdout, "global_config="+global)
}

func Test_Print_Config_Uses_XDG_Config_Home_When_Set(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Env["XDG_CONFIG_HOME"] = c.Dir + "/xdg"
	c.WriteFile("xdg/opendeco/config.json", `{"conf": {"lang": "nl"}}`)

	stdout := c.MustRun("print-config")
	cli.AssertContains(t, stdout, `"lang": "nl"`)
}

func Test_Print_Config_Explicit_Config_Replaces_Project_File_When_Given(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".opendeco.json", `{"deco": {"gflow": 20}}`)
	c.WriteFile("custom.json", `{"deco": {"gfhigh": 90}}`)

	stdout := c.MustRun("--config=custom.json", "print-config")

	cli.AssertContains(t, stdout, `"gflow": 30`)
	cli.AssertContains(t, stdout, `"gfhigh": 90`)
}

func Test_Plan_Uses_Config_File_Defaults_When_Flags_Absent(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".opendeco.json", `{"dive": {"gas": "EAN32"}, "deco": {"gflow": 40, "gfhigh": 85}}`)

	stdout := c.MustRun("plan", "-d", "30", "-t", "40")
	cli.AssertContains(t, stdout, "Nitrox 32")
	cli.AssertContains(t, stdout, "Conservatism: GF 40/85")

	stdout = c.MustRun("plan", "-d", "30", "-t", "40", "-L", "35")
	cli.AssertContains(t, stdout, "Conservatism: GF 35/85")
}

func Test_Run_Fails_When_Config_File_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", `{"deco": `, "invalid config file"},
		{"wrong type", `{"deco": {"gflow": "low"}}`, "invalid config file"},
		{"bad value", `{"deco": {"gflow": 80, "gfhigh": 50}}`, "GF Low must not be greater than GF High"},
		{"bad gas", `{"dive": {"gas": "argon"}}`, "unknown gas name"},
		{"bad model", `{"deco": {"model": "ZHL-12"}}`, "invalid config value"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			c.WriteFile(".opendeco.json", tt.content)

			stderr := c.MustFail("print-config")
			cli.AssertContains(t, stderr, tt.want)
		})
	}
}

func Test_Run_Fails_When_Explicit_Config_Missing(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("-c", "nope.json", "print-config")

	cli.AssertContains(t, stderr, "config file not found")
}
