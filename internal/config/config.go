package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/funvibe/defsub/internal/diagnostics"
	"github.com/funvibe/defsub/internal/token"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDefine is wrapped by every validation failure on a defines entry.
var ErrInvalidDefine = errors.New("invalid define")

// Config represents the top-level defsub.yaml configuration.
type Config struct {
	// Color selects diagnostic coloring: auto, always or never.
	Color string `yaml:"color,omitempty"`

	// Defines are installed in order before any source is read.
	Defines []Define `yaml:"defines,omitempty"`
}

// Define is one predefined identifier. Exactly one of Int, Str and Alias is set.
//
//	defines:
//	  - name: WIDTH
//	    int: 80
//	  - name: W
//	    alias: WIDTH
type Define struct {
	Name  string  `yaml:"name"`
	Int   *int64  `yaml:"int,omitempty"`
	Str   *string `yaml:"str,omitempty"`
	Alias *string `yaml:"alias,omitempty"`
}

// LoadConfig reads and parses a defsub.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses defsub.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ColorMode returns the parsed color setting. Validated configs never fail here.
func (c *Config) ColorMode() diagnostics.ColorMode {
	mode, _ := diagnostics.ParseColorMode(c.Color)
	return mode
}

func (c *Config) validate(path string) error {
	if _, err := diagnostics.ParseColorMode(c.Color); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for i, d := range c.Defines {
		if d.Name == "" {
			return fmt.Errorf("%s: defines[%d]: %w: name is required", path, i, ErrInvalidDefine)
		}
		if !token.IsIdentifier(d.Name) {
			return fmt.Errorf("%s: defines[%d]: %w: %q is not an identifier", path, i, ErrInvalidDefine, d.Name)
		}

		count := 0
		if d.Int != nil {
			count++
		}
		if d.Str != nil {
			count++
		}
		if d.Alias != nil {
			count++
		}
		if count == 0 {
			return fmt.Errorf("%s: defines[%d] (%s): %w: one of int, str, or alias is required",
				path, i, d.Name, ErrInvalidDefine)
		}
		if count > 1 {
			return fmt.Errorf("%s: defines[%d] (%s): %w: int, str, and alias are mutually exclusive",
				path, i, d.Name, ErrInvalidDefine)
		}
		if d.Alias != nil && !token.IsIdentifier(*d.Alias) {
			return fmt.Errorf("%s: defines[%d] (%s): %w: alias target %q is not an identifier",
				path, i, d.Name, ErrInvalidDefine, *d.Alias)
		}
	}

	return nil
}
