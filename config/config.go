package config

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/TFMV/ontograph/engine"
	"github.com/TFMV/ontograph/physics"
)

// Config holds ontograph configuration.
type Config struct {
	Physics    PhysicsConfig    `toml:"physics"`
	Placement  PlacementConfig  `toml:"placement"`
	Simulation SimulationConfig `toml:"simulation"`
	Server     ServerConfig     `toml:"server"`
	Log        LogConfig        `toml:"log"`
	Export     ExportConfig     `toml:"export"`
}

// PhysicsConfig holds the physical constants.
type PhysicsConfig struct {
	CoulombConstant  float64 `toml:"coulomb_constant"`
	GravityConstant  float64 `toml:"gravity_constant"`
	InitialCharge    float64 `toml:"initial_charge"`
	InitialMass      float64 `toml:"initial_mass"`
	InitialDamping   float64 `toml:"initial_damping"`
	MinKineticEnergy float64 `toml:"min_kinetic_energy"`
	SpringConstant   float64 `toml:"spring_constant"`
	NominalLength    float64 `toml:"nominal_length"`
	Coulomb          bool    `toml:"coulomb"` // all-pairs repulsion in every step
	Gravity          bool    `toml:"gravity"`
}

// PlacementConfig controls initial node positions.
type PlacementConfig struct {
	Strategy string `toml:"strategy"` // "random", "noise"
	Seed     int64  `toml:"seed"`     // 0 seeds from the clock
}

// SimulationConfig controls the tick driver.
type SimulationConfig struct {
	TimeStep               float64 `toml:"time_step"`
	TickIntervalMS         int     `toml:"tick_interval_ms"`
	MaxTicks               int     `toml:"max_ticks"`
	StabilizationThreshold float64 `toml:"stabilization_threshold"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port int `toml:"port"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "text", "json"
}

// ExportConfig controls the GraphViz export.
type ExportConfig struct {
	Path string `toml:"path"`
}

// Default returns the default configuration.
func Default() *Config {
	p := physics.DefaultParams()
	sim := engine.DefaultConfig()
	return &Config{
		Physics: PhysicsConfig{
			CoulombConstant:  p.CoulombConstant,
			GravityConstant:  p.GravityConstant,
			InitialCharge:    p.InitialCharge,
			InitialMass:      p.InitialMass,
			InitialDamping:   p.InitialDamping,
			MinKineticEnergy: p.MinKineticEnergy,
			SpringConstant:   p.SpringConstant,
			NominalLength:    p.NominalLength,
		},
		Placement: PlacementConfig{Strategy: "random"},
		Simulation: SimulationConfig{
			TimeStep:               sim.TimeStep,
			MaxTicks:               sim.MaxTicks,
			StabilizationThreshold: sim.StabilizationThreshold,
		},
		Server: ServerConfig{Port: 8080},
		Log:    LogConfig{Level: "info", Format: "text"},
		Export: ExportConfig{Path: "ontology.dot"},
	}
}

// ConfigDir returns the ontograph config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ontograph")
}

// DefaultPath returns the config file read when no path is given.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config at path over the defaults. An empty path reads
// DefaultPath and falls back to the defaults when that file is absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path.
func Save(cfg *Config, path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing config %s: %w", path, cerr)
		}
	}()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	if d := c.Physics.InitialDamping; d <= 0 || d >= 1 {
		return fmt.Errorf("physics.initial_damping must be in (0,1), got %v", d)
	}
	if c.Physics.InitialMass <= 0 {
		return fmt.Errorf("physics.initial_mass must be positive, got %v", c.Physics.InitialMass)
	}
	if c.Simulation.TimeStep <= 0 {
		return fmt.Errorf("simulation.time_step must be positive, got %v", c.Simulation.TimeStep)
	}
	switch c.Placement.Strategy {
	case "random", "noise":
	default:
		return fmt.Errorf("placement.strategy must be random or noise, got %q", c.Placement.Strategy)
	}
	return nil
}

// Params converts the physics section.
func (p PhysicsConfig) Params() physics.Params {
	return physics.Params{
		CoulombConstant:  p.CoulombConstant,
		GravityConstant:  p.GravityConstant,
		InitialCharge:    p.InitialCharge,
		InitialMass:      p.InitialMass,
		InitialDamping:   p.InitialDamping,
		MinKineticEnergy: p.MinKineticEnergy,
		SpringConstant:   p.SpringConstant,
		NominalLength:    p.NominalLength,
		Coulomb:          p.Coulomb,
		Gravity:          p.Gravity,
	}
}

// Rand returns the random source for the configured seed.
func (p PlacementConfig) Rand() *rand.Rand {
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Placer builds the configured placement strategy.
func (p PlacementConfig) Placer(rng *rand.Rand) physics.Placer {
	if p.Strategy == "noise" {
		seed := p.Seed
		if seed == 0 {
			seed = rng.Int63()
		}
		return physics.NewNoisePlacer(seed)
	}
	return physics.NewRandomPlacer(rng)
}

// Engine converts the simulation section.
func (s SimulationConfig) Engine() engine.Config {
	return engine.Config{
		TimeStep:               s.TimeStep,
		TickInterval:           time.Duration(s.TickIntervalMS) * time.Millisecond,
		MaxTicks:               s.MaxTicks,
		StabilizationThreshold: s.StabilizationThreshold,
	}
}

// Logger builds a slog logger writing to w.
func (l LogConfig) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(l.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
