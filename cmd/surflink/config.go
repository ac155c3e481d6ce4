package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/surflink"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads extraction defaults from a YAML file. Environment
// variables in the file are expanded before decoding.
func LoadConfig(path string) (surflink.Config, error) {
	var cfg surflink.Config

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, surflink.Errorf(surflink.ENOTFOUND, "configuration file not found: %s", path)
	} else if err != nil {
		return cfg, err
	}

	dec := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, surflink.Errorf(surflink.EINVALID, "invalid configuration file %s: %v", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// config applies the command's flags on top of base. String and list flags
// replace base values when set; boolean flags only switch options on.
func (c *ExtractCmd) config(base surflink.Config) surflink.Config {
	cfg := base
	if len(c.Attrs) > 0 {
		cfg.Attrs = c.Attrs
	}
	if c.StartTag != "" {
		cfg.StartTag = c.StartTag
	}
	if c.Base != "" {
		cfg.BaseURL = c.Base
	}
	cfg.Unique = cfg.Unique || c.Unique
	cfg.Absolutize = cfg.Absolutize || c.Absolute
	cfg.RequireBase = cfg.RequireBase || c.RequireBase
	cfg.Strict = cfg.Strict || c.Strict
	return cfg
}
