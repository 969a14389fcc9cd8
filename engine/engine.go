// Package engine drives a graph simulation and is the one place where the
// graph may be shared between goroutines: ticks, selection changes and
// snapshots are serialised so that readers only ever observe the graph
// between two ticks.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/TFMV/ontograph/graph"
	"github.com/TFMV/ontograph/ingest"
	"github.com/TFMV/ontograph/models"
)

// Config controls how the simulation is driven.
type Config struct {
	// TimeStep is the dt passed to every Graph.Step.
	TimeStep float64
	// TickInterval paces Run; zero runs ticks back to back.
	TickInterval time.Duration
	// MaxTicks bounds Run; zero means until stable or cancelled.
	MaxTicks int
	// StabilizationThreshold is the total kinetic energy under which the
	// layout counts as settled.
	StabilizationThreshold float64
}

// DefaultConfig returns the settings used by the CLI when nothing is configured.
func DefaultConfig() Config {
	return Config{
		TimeStep:               0.1,
		MaxTicks:               1000,
		StabilizationThreshold: 0.001,
	}
}

// Engine owns a graph and ticks it.
type Engine struct {
	mu     sync.Mutex
	g      *graph.Graph
	cfg    Config
	ticks  uint64
	logger *slog.Logger
}

// New wraps g. The caller must not touch g directly afterwards; use Do.
func New(g *graph.Graph, cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{g: g, cfg: cfg, logger: logger}
}

// Config returns the driving configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Ticks returns the number of completed ticks.
func (e *Engine) Ticks() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ticks
}

// Tick advances the simulation once and reports the total kinetic energy.
func (e *Engine) Tick() (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickLocked()
}

func (e *Engine) tickLocked() (float64, error) {
	if err := e.g.Step(e.cfg.TimeStep); err != nil {
		return 0, err
	}
	e.ticks++
	return e.g.TotalKineticEnergy(), nil
}

// Run ticks until the layout is stable, MaxTicks is reached, the context is
// cancelled or a step fails. It reports whether the layout settled.
func (e *Engine) Run(ctx context.Context) (bool, error) {
	var pace <-chan time.Time
	if e.cfg.TickInterval > 0 {
		ticker := time.NewTicker(e.cfg.TickInterval)
		defer ticker.Stop()
		pace = ticker.C
	}

	start := time.Now()
	for i := 0; e.cfg.MaxTicks == 0 || i < e.cfg.MaxTicks; i++ {
		if pace != nil {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-pace:
			}
		} else if err := ctx.Err(); err != nil {
			return false, err
		}

		energy, err := e.Tick()
		if err != nil {
			e.logger.Error("simulation diverged", "tick", i, "error", err)
			return false, err
		}
		if energy < e.cfg.StabilizationThreshold {
			e.logger.Info("layout stable",
				"ticks", i+1,
				"energy", energy,
				"duration", time.Since(start))
			return true, nil
		}
	}

	e.logger.Warn("physics simulation did not fully stabilize", "ticks", e.cfg.MaxTicks)
	return false, nil
}

// Snapshot copies the graph state between two ticks.
func (e *Engine) Snapshot() *models.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return models.FromGraph(e.g, e.ticks)
}

// Node returns the state of the node named id or by one of its aliases.
func (e *Engine) Node(id string) (models.NodeState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, err := e.g.GetNode(id)
	if err != nil {
		return models.NodeState{}, err
	}
	return models.NewNodeState(n), nil
}

// Do runs fn with exclusive access to the graph.
func (e *Engine) Do(fn func(g *graph.Graph) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.g)
}

// Apply applies feed events in order and stops at the first failure.
func (e *Engine) Apply(events ...ingest.Event) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, ev := range events {
		if err := ingest.Apply(e.g, ev); err != nil {
			return i, fmt.Errorf("event %d: %w", i+1, err)
		}
	}
	return len(events), nil
}

// Select adds the node named id to the selection.
func (e *Engine) Select(id string) error {
	return e.Do(func(g *graph.Graph) error {
		n, err := g.GetNode(id)
		if err != nil {
			return err
		}
		g.Select(n)
		return nil
	})
}

// Deselect removes the node named id from the selection.
func (e *Engine) Deselect(id string) error {
	return e.Do(func(g *graph.Graph) error {
		n, err := g.GetNode(id)
		if err != nil {
			return err
		}
		g.Deselect(n)
		return nil
	})
}

// ClearSelect empties the selection.
func (e *Engine) ClearSelect() {
	_ = e.Do(func(g *graph.Graph) error {
		g.ClearSelect()
		return nil
	})
}

// ErrNoSingleSelection is returned by Selected when zero or several nodes are
// selected.
var ErrNoSingleSelection = errors.New("engine: no single node selected")

// Selected returns the state of the sole selected node.
func (e *Engine) Selected() (models.NodeState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := e.g.GetSelected()
	if n == nil {
		return models.NodeState{}, ErrNoSingleSelection
	}
	return models.NewNodeState(n), nil
}
