// Package config resolves the base directories the installer works
// under and the optional user mirror overrides. Everything is read from
// the environment exactly once at startup; the rest of the program only
// ever sees the resulting Settings value.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings holds the three independently overridable base directories,
// following the usual per-user directory convention.
type Settings struct {
	DataHome    string // XDG_DATA_HOME, default ~/.local/share
	RuntimeHome string // XDG_RUNTIME_DIR, falling back to TMPDIR then /tmp
	ConfigHome  string // XDG_CONFIG_HOME, default ~/.config
}

// Load builds Settings from the environment. Each variable is optional
// and has a fixed default under the user's home directory, except the
// runtime directory which degrades to the generic temp directory.
func Load() Settings {
	home, err := os.UserHomeDir()
	if err != nil {
		// Without a resolvable home the defaults land under the
		// working directory; the explicit env overrides still win.
		home = "."
	}

	s := Settings{
		DataHome:    os.Getenv("XDG_DATA_HOME"),
		RuntimeHome: os.Getenv("XDG_RUNTIME_DIR"),
		ConfigHome:  os.Getenv("XDG_CONFIG_HOME"),
	}
	if s.DataHome == "" {
		s.DataHome = filepath.Join(home, ".local", "share")
	}
	if s.RuntimeHome == "" {
		s.RuntimeHome = os.Getenv("TMPDIR")
	}
	if s.RuntimeHome == "" {
		s.RuntimeHome = "/tmp"
	}
	if s.ConfigHome == "" {
		s.ConfigHome = filepath.Join(home, ".config")
	}
	return s
}

// mirrorsFile is the optional per-user override file inside the
// installer's config directory.
const mirrorsFile = "mirrors.yaml"

// LoadMirrors reads the optional mirrors.yaml from the given config
// directory and returns the mirror base URLs it lists, in file order.
// A missing file is not an error and yields no mirrors; a malformed
// file is an error, since silently ignoring it would hide a user
// override that was meant to take effect.
func LoadMirrors(configDir string) ([]string, error) {
	raw, err := os.ReadFile(filepath.Join(configDir, mirrorsFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", mirrorsFile, err)
	}

	var overrides struct {
		Mirrors []string `yaml:"mirrors"`
	}
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parse %s: %w", mirrorsFile, err)
	}
	return overrides.Mirrors, nil
}
