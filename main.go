package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/olivier-w/winston/internal/config"
	"github.com/olivier-w/winston/internal/greeting"
	"github.com/olivier-w/winston/internal/logging"
	"github.com/olivier-w/winston/internal/render"
	"github.com/olivier-w/winston/internal/scene"
	"github.com/olivier-w/winston/internal/ui"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	seed       uint64
	fps        int
	logFile    string
	logLevel   string
	offline    bool

	// Root-only flags
	watch bool
)

var rootCmd = &cobra.Command{
	Use:   "winston",
	Short: "A particle Christmas tree for your terminal",
	Long: `winston draws an emerald and gold Christmas tree that morphs between a
scattered cloud and its assembled form, with a generated holiday blessing.

Set GEMINI_API_KEY (or API_KEY) to fetch blessings from Gemini; without a
key fixed phrases are shown instead.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (.toml, .yaml or .yml)")
	pf.Uint64Var(&seed, "seed", 0, "random seed for particle layout (0 picks one)")
	pf.IntVar(&fps, "fps", 0, "frames per second (overrides config)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file (overrides config)")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	pf.BoolVar(&offline, "offline", false, "never call the text API")

	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the config file when it changes")

	rootCmd.AddCommand(frameCmd, blessingCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads --config and applies the flag overrides the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = logFile
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if offline {
		cfg.Greeting.Offline = true
	}
}

// resolveAPIKey prefers GEMINI_API_KEY, then API_KEY, then the config file.
func resolveAPIKey(cfg config.GreetingConfig) string {
	for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return cfg.APIKey
}

func newGreeter(ctx context.Context, cfg *config.Config, logger *log.Logger) (*greeting.Service, error) {
	g := cfg.Greeting
	gen, err := greeting.NewGenerator(ctx, resolveAPIKey(g), g.Model, g.Offline)
	if err != nil {
		return nil, err
	}
	if u, ok := gen.(greeting.Unavailable); ok {
		logger.Info("text generation disabled, fixed phrases only", "reason", u.Err)
	}
	return greeting.NewService(gen, greeting.Settings{
		Recipient:           g.Recipient,
		Style:               g.Style,
		BlessingTemperature: float32(g.BlessingTemperature),
		BlessingTopP:        float32(g.BlessingTopP),
		PoemTemperature:     float32(g.PoemTemperature),
		Timeout:             g.Timeout.Duration,
	}, logger), nil
}

func pickSeed(cfg *config.Config) uint64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return rand.Uint64()
}

func runInteractive(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := logging.New(logging.Options{Level: cfg.Logging.Level, File: cfg.Logging.File})
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	greeter, err := newGreeter(ctx, cfg, logger)
	if err != nil {
		return err
	}

	s := pickSeed(cfg)
	logger.Info("starting", "seed", s, "fps", cfg.FPS, "config", configPath)

	model := ui.New(ui.Options{
		Scene:    scene.New(cfg.Scene, s, cfg.FPS),
		Renderer: render.NewTerminal(cfg.Render),
		Greeter:  greeter,
		FPS:      cfg.FPS,
		Logger:   logger,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if watch && configPath != "" {
		send := ui.Reload(program.Send)
		err := config.Watch(ctx, configPath, func(c *config.Config, err error) {
			if c != nil {
				applyFlags(cmd, c)
			}
			send(c, err)
		})
		if err != nil {
			return err
		}
		logger.Info("watching config", "path", configPath)
	}

	_, err = program.Run()
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// stderrLogger is used by the one-shot subcommands, which own no screen.
func stderrLogger(cfg *config.Config) (*log.Logger, io.Closer, error) {
	return logging.New(logging.Options{Level: cfg.Logging.Level, Stderr: true})
}
