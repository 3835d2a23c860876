package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/olivier-w/winston/internal/tree"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a config file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the syntax from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported config format %q (use .toml, .yaml or .yml)", filepath.Ext(path))
}

// Load reads path on top of the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(cfg, data, format); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode merges data into cfg. Unknown keys are rejected.
func Decode(cfg *Config, data []byte, format Format) error {
	// An ornaments list in the file replaces the stock layers outright.
	stock := cfg.Scene.Tree.Ornaments
	cfg.Scene.Tree.Ornaments = nil

	var err error
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		cfg.Scene.Tree.Ornaments = stock
		return err
	}

	if cfg.Scene.Tree.Ornaments == nil {
		cfg.Scene.Tree.Ornaments = stock
	} else {
		fillOrnamentDefaults(cfg.Scene.Tree.Ornaments)
	}
	return nil
}

// Encode writes cfg in the given syntax.
func Encode(cfg *Config, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(cfg)
	case FormatYAML:
		return yaml.Marshal(cfg)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// fillOrnamentDefaults completes partially specified layers from the stock
// bauble layer.
func fillOrnamentDefaults(specs []tree.OrnamentSpec) {
	base := tree.DefaultOrnamentSpecs()[0]
	for i := range specs {
		s := &specs[i]
		if s.Shape == "" {
			s.Shape = base.Shape
		}
		if s.Color == "" {
			s.Color = base.Color
		}
		if s.WeightMultiplier == 0 {
			s.WeightMultiplier = 1
		}
		if s.Height == 0 {
			s.Height = base.Height
		}
		if s.Radius == 0 {
			s.Radius = base.Radius
		}
		if s.ScatterExtent == 0 {
			s.ScatterExtent = base.ScatterExtent
		}
		if s.ScatterYOffset == 0 {
			s.ScatterYOffset = base.ScatterYOffset
		}
		if s.BaseScale == 0 {
			s.BaseScale = base.BaseScale
		}
		if s.ScaleFloor == 0 {
			s.ScaleFloor = base.ScaleFloor
		}
		if s.Stagger == 0 {
			s.Stagger = base.Stagger
		}
		if s.Spin == 0 {
			s.Spin = base.Spin
		}
	}
}
