package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/ontograph/engine"
	"github.com/TFMV/ontograph/physics"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, physics.DefaultParams(), cfg.Physics.Params())
	assert.Equal(t, engine.DefaultConfig(), cfg.Simulation.Engine())
	assert.Equal(t, "random", cfg.Placement.Strategy)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "ontology.dot", cfg.Export.Path)
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/ontograph", ConfigDir())
	assert.Equal(t, "/tmp/xdg/ontograph/config.toml", DefaultPath())
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Physics.Coulomb = true
	cfg.Physics.SpringConstant = 0.25
	cfg.Placement = PlacementConfig{Strategy: "noise", Seed: 42}
	cfg.Simulation.TickIntervalMS = 40
	cfg.Log.Format = "json"
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, 40*time.Millisecond, loaded.Simulation.Engine().TickInterval)
}

func TestSaveReportsWriteErrors(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	assert.Error(t, Save(Default(), filepath.Join(blocker, "config.toml")))
	assert.Error(t, Save(Default(), dir))
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 9999\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, Default().Physics, cfg.Physics)
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[physics\n"), 0o644))
	_, err := Load(bad)
	assert.ErrorContains(t, err, "parsing config")

	damped := filepath.Join(dir, "damped.toml")
	require.NoError(t, os.WriteFile(damped, []byte("[physics]\ninitial_damping = 1.5\n"), 0o644))
	_, err = Load(damped)
	assert.ErrorContains(t, err, "initial_damping")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero damping", func(c *Config) { c.Physics.InitialDamping = 0 }},
		{"negative mass", func(c *Config) { c.Physics.InitialMass = -1 }},
		{"zero time step", func(c *Config) { c.Simulation.TimeStep = 0 }},
		{"unknown placement", func(c *Config) { c.Placement.Strategy = "spiral" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPlacer(t *testing.T) {
	seeded := PlacementConfig{Strategy: "random", Seed: 9}
	assert.Equal(t, seeded.Rand().Int63(), seeded.Rand().Int63())
	assert.IsType(t, &physics.RandomPlacer{}, seeded.Placer(seeded.Rand()))

	noise := PlacementConfig{Strategy: "noise", Seed: 9}
	p1 := noise.Placer(noise.Rand())
	p2 := noise.Placer(noise.Rand())
	assert.IsType(t, &physics.NoisePlacer{}, p1)
	assert.Equal(t, p1.Place(12345), p2.Place(12345))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LogConfig{Level: "warn", Format: "json"}.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	LogConfig{Level: "debug"}.Logger(&buf).Debug("text line")
	assert.Contains(t, buf.String(), "msg=\"text line\"")
}
