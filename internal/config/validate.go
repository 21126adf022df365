package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/AnyUserName/genkan/internal/diag"
	"github.com/AnyUserName/genkan/internal/profile"
)

var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the structural rules of a config. Hard failures are joined
// into one error wrapping ErrInvalidConfig; soft issues come back as warnings.
func (c *Config) Validate() (diag.List, error) {
	var (
		warns diag.List
		errs  []string
	)

	if strings.TrimSpace(c.Profile.Name) == "" {
		errs = append(errs, "profile.name is required")
	}
	if len(c.Links) == 0 {
		errs = append(errs, "at least one link is required")
	}
	if !slices.Contains(darkModes, strings.ToLower(c.DarkMode.Mode)) {
		errs = append(errs, fmt.Sprintf("dark_mode.mode %q must be one of %s",
			c.DarkMode.Mode, strings.Join(darkModes, ", ")))
	}

	for i, l := range c.Links {
		switch l.LinkType {
		case LinkBlock:
			if l.Title == nil || strings.TrimSpace(*l.Title) == "" {
				errs = append(errs, fmt.Sprintf("link at index %d: block links need a title", i))
			}
		case LinkSpace:
			if l.Height == nil || *l.Height == "" {
				warns.Warn(l.Subject(i),
					"space link has no height, using theme spacing", nil)
			}
		default:
			errs = append(errs, fmt.Sprintf("link %s: link_type %q must be %q or %q",
				l.Identifier(i), l.LinkType, LinkBlock, LinkSpace))
		}
	}

	for _, key := range c.Unknown {
		warns.Warn(key, "unknown key ignored", nil)
	}
	if !profile.Known(c.Image.Preset) {
		warns.Warn("image.preset", fmt.Sprintf("unknown preset %q, using %q", c.Image.Preset, profile.Default), nil)
	}

	if len(errs) > 0 {
		return warns, fmt.Errorf("%w:\n  %s", ErrInvalidConfig, strings.Join(errs, "\n  "))
	}
	return warns, nil
}
