package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("config parse error")
)

// Load reads path and decodes it on top of Default. Files ending in .yaml or
// .yml are YAML and reject unknown fields; everything else is TOML, where
// unknown keys are collected into Unknown.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data, formatOf(path))
}

// Format is a config file syntax.
type Format int

const (
	TOML Format = iota
	YAML
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return TOML
	}
}

// Parse decodes data in the given format on top of Default. A file that
// writes any theme.typography table replaces the per-role presets, so its
// default block reaches every role it does not override.
func Parse(data []byte, format Format) (*Config, error) {
	custom, err := definesTypography(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg := Default()
	if custom {
		cfg.Theme.Typography = BaseTypography()
	}

	switch format {
	case YAML:
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
		cfg.Unknown = unknownKeys(md.Undecoded())
	}

	cfg.normalize()
	return cfg, nil
}

// definesTypography reports whether data contains a theme.typography table.
func definesTypography(data []byte, format Format) (bool, error) {
	var raw map[string]any
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return false, err
		}
	default:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return false, err
		}
	}
	th, ok := raw["theme"].(map[string]any)
	if !ok {
		return false, nil
	}
	_, ok = th["typography"]
	return ok, nil
}

// unknownKeys reports only the outermost undecoded key of each subtree.
func unknownKeys(keys []toml.Key) []string {
	var out []string
	for _, key := range keys {
		name := key.String()
		nested := false
		for _, parent := range out {
			if strings.HasPrefix(name, parent+".") {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, name)
		}
	}
	return out
}

func (c *Config) normalize() {
	for i := range c.Links {
		c.Links[i].LinkType = strings.ToLower(strings.TrimSpace(c.Links[i].LinkType))
		if c.Links[i].LinkType == "" {
			c.Links[i].LinkType = LinkBlock
		}
	}
	c.DarkMode.Mode = strings.ToLower(strings.TrimSpace(c.DarkMode.Mode))
	if c.Image.Preset == "" {
		c.Image.Preset = "default"
	}
}
