package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = ".headerx.yaml"

// Config holds per-project defaults. Command-line flags override it.
type Config struct {
	OutputDir      string `yaml:"output-dir"`
	Strict         bool   `yaml:"strict"`
	LineDirectives *bool  `yaml:"line-directives"`
	Verbose        bool   `yaml:"verbose"`
	Color          *bool  `yaml:"color"`
}

// Load reads a YAML config file and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault loads DefaultFile from dir, or returns an empty Config if
// there is none.
func LoadDefault(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, DefaultFile))
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// WantLineDirectives reports whether #line should be emitted. Defaults to true.
func (c *Config) WantLineDirectives() bool {
	return c.LineDirectives == nil || *c.LineDirectives
}

// WantColor reports whether terminal output should be colored. Defaults to true.
func (c *Config) WantColor() bool {
	return c.Color == nil || *c.Color
}
