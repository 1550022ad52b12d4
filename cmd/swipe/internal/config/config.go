// Package config loads cmd/swipe's persisted defaults from
// ~/.config/swipe/config.yaml (via pkg/cli.Paths): a single flat YAML
// record seeding the -r, -s, and -t flags.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/primeharmonic/swipe/pkg/cli"
)

// Defaults holds the CLI's persisted flag defaults. Any flag the user
// passes explicitly on the command line overrides the corresponding field
// here; an empty/zero field means "fall back to the hardcoded default" in
// commands.resolveConfig.
type Defaults struct {
	MinHz             float64 `yaml:"min_hz,omitempty"`
	MaxHz             float64 `yaml:"max_hz,omitempty"`
	StrengthThreshold float64 `yaml:"strength_threshold,omitempty"`
	Dt                float64 `yaml:"timestep,omitempty"`
}

// Load reads the defaults file for appName, returning a zero-value
// Defaults (not an error) if the file does not exist yet — a fresh
// install has no opinions to override the CLI's built-in defaults with.
func Load(appName string) (*Defaults, error) {
	paths, err := cli.NewPaths(appName)
	if err != nil {
		return nil, fmt.Errorf("config: resolve paths: %w", err)
	}

	data, err := os.ReadFile(paths.ConfigFile())
	if err != nil {
		if os.IsNotExist(err) {
			return &Defaults{}, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", paths.ConfigFile(), err)
	}

	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", paths.ConfigFile(), err)
	}
	return &d, nil
}

// Save writes d to appName's defaults file, creating the app directory if
// needed.
func Save(appName string, d *Defaults) error {
	paths, err := cli.NewPaths(appName)
	if err != nil {
		return fmt.Errorf("config: resolve paths: %w", err)
	}
	if err := paths.EnsureAppDir(); err != nil {
		return fmt.Errorf("config: create app dir: %w", err)
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(paths.ConfigFile(), data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", paths.ConfigFile(), err)
	}
	return nil
}
