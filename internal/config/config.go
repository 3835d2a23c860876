// Package config holds every tunable of the view: scene layout, look,
// text collaborator and logging. Files may be TOML or YAML; whatever a file
// leaves out keeps its default.
package config

import (
	"time"

	"github.com/olivier-w/winston/internal/render"
	"github.com/olivier-w/winston/internal/scene"
)

// Config is the full application configuration.
type Config struct {
	FPS      int            `toml:"fps" yaml:"fps"`
	Seed     uint64         `toml:"seed" yaml:"seed"` // 0 picks a seed at startup
	Scene    scene.Spec     `toml:"scene" yaml:"scene"`
	Render   render.Spec    `toml:"render" yaml:"render"`
	Greeting GreetingConfig `toml:"greeting" yaml:"greeting"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
}

// GreetingConfig configures the generative text collaborator.
type GreetingConfig struct {
	APIKey              string   `toml:"api_key" yaml:"api_key"`
	Model               string   `toml:"model" yaml:"model"`
	Recipient           string   `toml:"recipient" yaml:"recipient"`
	Style               string   `toml:"style" yaml:"style"`
	BlessingTemperature float64  `toml:"blessing_temperature" yaml:"blessing_temperature"`
	BlessingTopP        float64  `toml:"blessing_top_p" yaml:"blessing_top_p"`
	PoemTemperature     float64  `toml:"poem_temperature" yaml:"poem_temperature"`
	Timeout             Duration `toml:"timeout" yaml:"timeout"`
	Offline             bool     `toml:"offline" yaml:"offline"`
}

// LoggingConfig configures the file logger. The terminal belongs to the
// UI, so logs never go to stderr while it runs.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"` // debug, info, warn, error
	File  string `toml:"file" yaml:"file"`   // empty disables logging
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		FPS:    30,
		Scene:  scene.DefaultSpec(),
		Render: render.DefaultSpec(),
		Greeting: GreetingConfig{
			Model:               "gemini-3-flash-preview",
			Recipient:           "our Valued Guest",
			Style:               "opulent and cinematic",
			BlessingTemperature: 0.9,
			BlessingTopP:        0.95,
			PoemTemperature:     0.7,
			Timeout:             Duration{20 * time.Second},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Duration is a time.Duration that reads and writes as "20s" in both TOML
// and YAML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}
