package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/olivier-w/winston/internal/render"
	"github.com/olivier-w/winston/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestTOMLAndYAMLAgree(t *testing.T) {
	tomlPath := writeFile(t, "winston.toml", `
fps = 24
seed = 7

[scene]
morph_rate = 3.5

[scene.tree.needles]
count = 1200

[render]
mode = "braille"

[greeting]
recipient = "the Hendersons"
timeout = "5s"
`)
	yamlPath := writeFile(t, "winston.yaml", `
fps: 24
seed: 7
scene:
  morph_rate: 3.5
  tree:
    needles:
      count: 1200
render:
  mode: braille
greeting:
  recipient: the Hendersons
  timeout: 5s
`)

	fromTOML, err := Load(tomlPath)
	require.NoError(t, err)
	fromYAML, err := Load(yamlPath)
	require.NoError(t, err)

	assert.Equal(t, fromTOML, fromYAML)
	assert.Equal(t, 24, fromTOML.FPS)
	assert.Equal(t, uint64(7), fromTOML.Seed)
	assert.Equal(t, 3.5, fromTOML.Scene.MorphRate)
	assert.Equal(t, 1200, fromTOML.Scene.Tree.Needles.Count)
	assert.Equal(t, "#043927", fromTOML.Scene.Tree.Needles.Color, "untouched keys keep defaults")
	assert.Equal(t, render.ModeBraille, fromTOML.Render.Mode)
	assert.Equal(t, "the Hendersons", fromTOML.Greeting.Recipient)
	assert.Equal(t, 5*time.Second, fromTOML.Greeting.Timeout.Duration)
	assert.Len(t, fromTOML.Scene.Tree.Ornaments, 3)
}

func TestUnknownKeysRejected(t *testing.T) {
	_, err := Load(writeFile(t, "bad.toml", "fsp = 30\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "render:\n  colour: red\n"))
	assert.Error(t, err)
}

func TestUnsupportedExtension(t *testing.T) {
	_, err := Load(writeFile(t, "winston.json", "{}"))
	assert.ErrorContains(t, err, "unsupported config format")
}

func TestEmptyYAMLKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestOrnamentListReplacesStockLayers(t *testing.T) {
	cfg, err := Load(writeFile(t, "winston.toml", `
[[scene.tree.ornaments]]
name = "candy"
count = 12
color = "#ff0000"
`))
	require.NoError(t, err)
	require.Len(t, cfg.Scene.Tree.Ornaments, 1)

	o := cfg.Scene.Tree.Ornaments[0]
	base := tree.DefaultOrnamentSpecs()[0]
	assert.Equal(t, "candy", o.Name)
	assert.Equal(t, 12, o.Count)
	assert.Equal(t, "#ff0000", o.Color)
	assert.Equal(t, tree.ShapeSphere, o.Shape)
	assert.Equal(t, 1.0, o.WeightMultiplier)
	assert.Equal(t, base.Height, o.Height)
	assert.Equal(t, base.BaseScale, o.BaseScale)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.FPS = 0
	cfg.Scene.MorphRate = -1
	cfg.Scene.Tree.Ornaments[1].Name = cfg.Scene.Tree.Ornaments[0].Name
	cfg.Scene.Tree.Ornaments[2].Shape = "cone"
	cfg.Scene.Ambient.MaxY = cfg.Scene.Ambient.MinY
	cfg.Scene.Camera.MaxDistance = cfg.Scene.Camera.MinDistance
	cfg.Render.Mode = "sixel"
	cfg.Render.Background = "green-ish"
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	for _, field := range []string{
		"fps",
		"scene.morph_rate",
		"duplicate layer",
		"ornaments[2].shape",
		"scene.ambient.max_y",
		"scene.camera",
		"render.mode",
		"render.background",
		"logging.level",
	} {
		assert.ErrorContains(t, err, field)
	}
}

func TestEncodeRoundTripsThroughLoad(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			cfg := Default()
			cfg.FPS = 45
			cfg.Greeting.Timeout = Duration{90 * time.Second}

			data, err := Encode(cfg, format)
			require.NoError(t, err)
			path := writeFile(t, "winston."+string(format), string(data))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, 45, got.FPS)
			assert.Equal(t, 90*time.Second, got.Greeting.Timeout.Duration)
			assert.Equal(t, cfg.Scene.Tree.Ornaments, got.Scene.Tree.Ornaments)
		})
	}
}

func TestWatchReportsReloads(t *testing.T) {
	path := writeFile(t, "winston.toml", "fps = 30\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		cfg *Config
		err error
	}
	got := make(chan result, 4)
	require.NoError(t, Watch(ctx, path, func(c *Config, err error) {
		got <- result{c, err}
	}))

	require.NoError(t, os.WriteFile(path, []byte("fps = 60\n"), 0o644))
	select {
	case r := <-got:
		require.NoError(t, r.err)
		assert.Equal(t, 60, r.cfg.FPS)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after valid write")
	}

	require.NoError(t, os.WriteFile(path, []byte("fps = 0\n"), 0o644))
	select {
	case r := <-got:
		assert.Error(t, r.err)
		assert.Nil(t, r.cfg)
	case <-time.After(5 * time.Second):
		t.Fatal("no report after invalid write")
	}
}
