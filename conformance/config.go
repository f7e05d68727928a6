// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package conformance

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/glctx/native"
)

// ErrConfig is returned for a suite description that cannot be used.
var ErrConfig = errors.New("conformance: invalid config")

// Config lists the suites to run.
//
//	[[suite]]
//	name = "GLFW OpenGL 4.3"
//	backend = "opengl"
//	width = 800
//	height = 600
//	major = 4
//	minor = 3
//
//	[[suite]]
//	name = "software"
//	backend = "soft"
//	tests = ["render_target::"]
type Config struct {
	Suites []Suite `toml:"suite"`
}

// Suite describes one Context to create and the cases to run on it.
type Suite struct {
	Name    string `toml:"name"`
	Backend string `toml:"backend"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Major   int    `toml:"major"`
	Minor   int    `toml:"minor"`
	// Tests selects cases by name prefix. Empty runs every case.
	Tests []string `toml:"tests"`
}

// DefaultConfig runs every case on the best available backend at 800x600.
func DefaultConfig() *Config {
	return &Config{Suites: []Suite{{Name: "default", Width: 800, Height: 600, Major: 4, Minor: 3}}}
}

// ParseConfig decodes a TOML suite description and fills in defaults.
func ParseConfig(data []byte) (*Config, error) {
	return decodeConfig(bytes.NewReader(data))
}

// LoadConfig reads a TOML suite description from path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := decodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if len(cfg.Suites) == 0 {
		return nil, fmt.Errorf("%w: no suites", ErrConfig)
	}
	for i := range cfg.Suites {
		if err := cfg.Suites[i].normalize(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func (s *Suite) normalize() error {
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: suite %q has size %dx%d", ErrConfig, s.Name, s.Width, s.Height)
	}
	if s.Width == 0 {
		s.Width = 800
	}
	if s.Height == 0 {
		s.Height = 600
	}
	if s.Major == 0 {
		s.Major, s.Minor = 4, 3
	}
	switch s.Backend {
	case "", native.BackendOpenGL, native.BackendSoft:
	default:
		return fmt.Errorf("%w: suite %q has unknown backend %q", ErrConfig, s.Name, s.Backend)
	}
	if s.Name == "" {
		s.Name = s.Backend
	}
	return nil
}

// Select returns the cases whose names start with one of the prefixes, in
// their original order. No prefixes selects every case.
func Select(cases []Case, prefixes []string) []Case {
	if len(prefixes) == 0 {
		return cases
	}
	var out []Case
	for _, c := range cases {
		for _, p := range prefixes {
			if strings.HasPrefix(c.Name, p) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
