// Package config loads and validates the depviz configuration file.
//
// Configuration is a TOML document with two required tables:
//
//	[package]
//	name = "A"            # package to analyze
//	version = "1.0.0"     # version for registry lookups
//	output_file = "graph.svg"
//
//	[repository]
//	url = "testdata/repo.txt"  # registry base URL, or description file in test mode
//	test_mode = "yes"          # boolean-like token: true/false/1/0/yes/no
//	reverse_deps = false       # also compute reverse dependents
//	visualization = false      # render the diagram to output_file
//
// All fields of both tables except reverse_deps and visualization are
// required; validation failures are reported with CONFIG_* error codes
// and are always fatal.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/depviz/depviz/pkg/errors"
)

// Flag is a boolean configuration value that tolerates the token
// spellings the original key/value format allowed: bare TOML booleans,
// the integers 0 and 1, and the strings true/false/1/0/yes/no
// (case-insensitive).
type Flag bool

// Bool returns the flag as a plain bool.
func (f Flag) Bool() bool { return bool(f) }

// UnmarshalTOML implements toml.Unmarshaler.
func (f *Flag) UnmarshalTOML(v any) error {
	switch t := v.(type) {
	case bool:
		*f = Flag(t)
		return nil
	case int64:
		switch t {
		case 0:
			*f = false
			return nil
		case 1:
			*f = true
			return nil
		}
		return fmt.Errorf("invalid boolean value %d", t)
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes":
			*f = true
			return nil
		case "false", "0", "no":
			*f = false
			return nil
		}
		return fmt.Errorf("invalid boolean token %q", t)
	}
	return fmt.Errorf("invalid boolean value of type %T", v)
}

// Package holds the [package] table.
type Package struct {
	Name       string `toml:"name"`
	Version    string `toml:"version"`
	OutputFile string `toml:"output_file"`
}

// Repository holds the [repository] table. URL is either a registry
// base URL or, when TestMode is set, the path to a static graph
// description file.
type Repository struct {
	URL           string `toml:"url"`
	TestMode      *Flag  `toml:"test_mode"`
	ReverseDeps   Flag   `toml:"reverse_deps"`
	Visualization Flag   `toml:"visualization"`
}

// Config is the fully validated application configuration.
type Config struct {
	Package    *Package    `toml:"package"`
	Repository *Repository `toml:"repository"`
}

// TestMode reports whether the repository URL names a static
// description file instead of a live registry.
func (c *Config) TestMode() bool {
	return c.Repository.TestMode != nil && bool(*c.Repository.TestMode)
}

// Load reads, decodes, and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeConfigNotFound, "configuration file %q not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "read %q", path)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "parse configuration")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Package == nil {
		return errors.New(errors.ErrCodeConfigInvalid, "missing required section [package]")
	}
	if c.Repository == nil {
		return errors.New(errors.ErrCodeConfigInvalid, "missing required section [repository]")
	}

	required := []struct {
		section, field string
		value          *string
	}{
		{"package", "name", &c.Package.Name},
		{"package", "version", &c.Package.Version},
		{"package", "output_file", &c.Package.OutputFile},
		{"repository", "url", &c.Repository.URL},
	}
	for _, r := range required {
		*r.value = strings.TrimSpace(*r.value)
		if *r.value == "" {
			return errors.New(errors.ErrCodeConfigInvalid, "missing required field %q in section [%s]", r.field, r.section)
		}
	}

	if c.Repository.TestMode == nil {
		return errors.New(errors.ErrCodeConfigInvalid, "missing required field %q in section [repository]", "test_mode")
	}
	return nil
}
