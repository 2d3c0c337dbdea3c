// Package config loads the planner settings from layered JSONC files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/tsegers/opendeco/internal/gasname"
	"github.com/tsegers/opendeco/pkg/deco"
)

// Color modes for Conf.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds all configuration options.
type Config struct {
	Dive Dive `json:"dive"`
	Deco Deco `json:"deco"`
	Conf Conf `json:"conf"`

	// Absolute working directory (from -C flag or os.Getwd)
	EffectiveCwd string `json:"-"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Dive holds the bottom portion settings.
type Dive struct {
	Gas             string  `json:"gas"`
	SurfacePressure float64 `json:"surface_pressure"`
	RMV             float64 `json:"rmv"`
}

// Deco holds the ascent settings.
type Deco struct {
	GFLow              int     `json:"gflow"`
	GFHigh             int     `json:"gfhigh"`
	DecoGases          string  `json:"decogasses"`
	LastStopAtSix      bool    `json:"last_stop_at_six"`
	SwitchIntermediate bool    `json:"switch_intermediate"`
	RMV                float64 `json:"rmv"`
	Model              string  `json:"model"`
	Rq                 float64 `json:"rq"`
}

// Conf holds presentation settings.
type Conf struct {
	ShowTravel bool   `json:"show_travel"`
	Lang       string `json:"lang"`
	Color      string `json:"color"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project or explicit config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Dive: Dive{
			Gas:             "Air",
			SurfacePressure: deco.DefaultSurfacePressure,
			RMV:             20,
		},
		Deco: Deco{
			GFLow:              30,
			GFHigh:             75,
			SwitchIntermediate: true,
			RMV:                15,
			Model:              deco.ZHL16C.String(),
			Rq:                 1.0,
		},
		Conf: Conf{
			Lang:  "en",
			Color: ColorAuto,
		},
	}
}

// FileName is the project config file name.
const FileName = ".opendeco.json"

// globalPath returns $XDG_CONFIG_HOME/opendeco/config.json if set, otherwise
// ~/.config/opendeco/config.json. Empty if the home directory is unknown.
func globalPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "opendeco", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "opendeco", "config.json")
	}

	return ""
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Env             map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config ($XDG_CONFIG_HOME/opendeco/config.json)
// 3. Project config file (.opendeco.json, if exists)
// 4. Explicit config file via ConfigPath (replaces the project file)
//
// Command flags are applied on top by the caller.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()

	if path := globalPath(input.Env); path != "" {
		overlay, loaded, err := loadFile(path, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg = overlay.merge(cfg)
			cfg.Sources.Global = path
		}
	}

	projectFile, mustExist := filepath.Join(workDir, FileName), false

	if input.ConfigPath != "" {
		projectFile = input.ConfigPath
		if !filepath.IsAbs(projectFile) {
			projectFile = filepath.Join(workDir, projectFile)
		}

		mustExist = true

		if _, statErr := os.Stat(projectFile); statErr != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, input.ConfigPath)
		}
	}

	overlay, loaded, err := loadFile(projectFile, mustExist)
	if err != nil {
		return Config{}, err
	}

	if loaded {
		cfg = overlay.merge(cfg)
		cfg.Sources.Project = projectFile
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir

	return cfg, nil
}

// fileConfig mirrors Config with optional fields, so a file only overrides
// what it sets (including explicit false and zero).
type fileConfig struct {
	Dive struct {
		Gas             *string  `json:"gas"`
		SurfacePressure *float64 `json:"surface_pressure"`
		RMV             *float64 `json:"rmv"`
	} `json:"dive"`
	Deco struct {
		GFLow              *int     `json:"gflow"`
		GFHigh             *int     `json:"gfhigh"`
		DecoGases          *string  `json:"decogasses"`
		LastStopAtSix      *bool    `json:"last_stop_at_six"`
		SwitchIntermediate *bool    `json:"switch_intermediate"`
		RMV                *float64 `json:"rmv"`
		Model              *string  `json:"model"`
		Rq                 *float64 `json:"rq"`
	} `json:"deco"`
	Conf struct {
		ShowTravel *bool   `json:"show_travel"`
		Lang       *string `json:"lang"`
		Color      *string `json:"color"`
	} `json:"conf"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (f fileConfig) merge(base Config) Config {
	set(&base.Dive.Gas, f.Dive.Gas)
	set(&base.Dive.SurfacePressure, f.Dive.SurfacePressure)
	set(&base.Dive.RMV, f.Dive.RMV)

	set(&base.Deco.GFLow, f.Deco.GFLow)
	set(&base.Deco.GFHigh, f.Deco.GFHigh)
	set(&base.Deco.DecoGases, f.Deco.DecoGases)
	set(&base.Deco.LastStopAtSix, f.Deco.LastStopAtSix)
	set(&base.Deco.SwitchIntermediate, f.Deco.SwitchIntermediate)
	set(&base.Deco.RMV, f.Deco.RMV)
	set(&base.Deco.Model, f.Deco.Model)
	set(&base.Deco.Rq, f.Deco.Rq)

	set(&base.Conf.ShowTravel, f.Conf.ShowTravel)
	set(&base.Conf.Lang, f.Conf.Lang)
	set(&base.Conf.Color, f.Conf.Color)

	return base
}

// loadFile loads a config file. If mustExist is false, missing files are
// reported as not loaded.
func loadFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return fileConfig{}, false, nil
		}

		if mustExist {
			return fileConfig{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return fileConfig{}, false, nil
	}

	cfg, parseErr := parse(data)
	if parseErr != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parse(data []byte) (fileConfig, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg fileConfig

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

// Validate checks every value a plan depends on.
//
//nolint:cyclop // flat list of independent checks
func (c Config) Validate() error {
	switch {
	case !(c.Dive.SurfacePressure > 0):
		return fmt.Errorf("%w: surface air pressure must be positive", ErrInvalidValue)
	case c.Deco.GFLow < 0 || c.Deco.GFHigh > 100:
		return fmt.Errorf("%w: gradient factors must be between 0 and 100", ErrInvalidValue)
	case c.Deco.GFLow > c.Deco.GFHigh:
		return fmt.Errorf("%w: GF Low must not be greater than GF High", ErrInvalidValue)
	case !(c.Dive.RMV > 0):
		return fmt.Errorf("%w: dive RMV must be greater than 0", ErrInvalidValue)
	case !(c.Deco.RMV > 0):
		return fmt.Errorf("%w: deco RMV must be greater than 0", ErrInvalidValue)
	}

	switch c.Conf.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", ErrInvalidValue, c.Conf.Color)
	}

	if _, err := c.DecoConfig(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	if _, _, err := gasname.Split(c.Dive.Gas); err != nil {
		return fmt.Errorf("%w: dive gas: %w", ErrInvalidValue, err)
	}

	if _, err := gasname.ParseList(deco.DefaultConfig(), c.Deco.DecoGases); err != nil {
		return fmt.Errorf("%w: deco gases: %w", ErrInvalidValue, err)
	}

	return nil
}

// DecoConfig translates the settings into the core policy.
func (c Config) DecoConfig() (deco.Config, error) {
	model, err := deco.ParseModel(c.Deco.Model)
	if err != nil {
		return deco.Config{}, err
	}

	wv, err := deco.WaterVapourForRq(c.Deco.Rq)
	if err != nil {
		return deco.Config{}, err
	}

	dc := deco.DefaultConfig()
	dc.Model = model
	dc.WaterVapour = wv
	dc.SurfacePressure = c.Dive.SurfacePressure
	dc.SwitchIntermediate = c.Deco.SwitchIntermediate
	dc.LastStopAtSix = c.Deco.LastStopAtSix

	if err := dc.Validate(); err != nil {
		return deco.Config{}, err
	}

	return dc, nil
}

// Format returns the config as indented JSON.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format config: %w", err)
	}

	return string(data), nil
}
