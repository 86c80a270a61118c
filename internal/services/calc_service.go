package services

import (
	"context"
	"log/slog"
	"time"

	"heatcli/internal/calc"
)

// CalcService runs registered engineering calculations
type CalcService struct {
	registry    *calc.Registry
	broadcaster Broadcaster
	logger      *slog.Logger
}

// RunResult is the outcome of a single calculation execution
type RunResult struct {
	Calculation string             `json:"calculation"`
	Inputs      map[string]float64 `json:"inputs"`
	Outputs     map[string]float64 `json:"outputs"`
	DurationMS  float64            `json:"duration_ms"`
}

// NewCalcService creates a calc service over the default registry
func NewCalcService(logger *slog.Logger) *CalcService {
	return NewCalcServiceWithRegistry(calc.NewDefaultRegistry(), logger)
}

// NewCalcServiceWithRegistry creates a calc service over a specific registry
func NewCalcServiceWithRegistry(registry *calc.Registry, logger *slog.Logger) *CalcService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalcService{
		registry: registry,
		logger:   logger.With(slog.String("component", "calc_service")),
	}
}

// SetBroadcaster attaches a websocket broadcaster for completed runs.
func (cs *CalcService) SetBroadcaster(b Broadcaster) {
	cs.broadcaster = b
}

// List returns registered calculation names, optionally filtered by category
func (cs *CalcService) List(ctx context.Context, category string) []string {
	return cs.registry.List(category)
}

// Categories returns the distinct calculation categories
func (cs *CalcService) Categories(ctx context.Context) []string {
	return cs.registry.Categories()
}

// Describe returns metadata for one calculation
func (cs *CalcService) Describe(ctx context.Context, name string) (*calc.Info, error) {
	return cs.registry.Describe(name)
}

// ValidateChain checks whether a sequence of calculations can feed each other
func (cs *CalcService) ValidateChain(ctx context.Context, names []string) (*calc.ChainReport, error) {
	return cs.registry.ValidateChain(names)
}

// Run executes one calculation with the supplied inputs. Defaults fill
// missing optional inputs; out-of-range values are rejected.
func (cs *CalcService) Run(ctx context.Context, name string, inputs map[string]float64) (*RunResult, error) {
	c, err := cs.registry.Get(name)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	outputs, err := c.Run(inputs)
	duration := time.Since(start)

	if err != nil {
		cs.logger.WarnContext(ctx, "calculation rejected",
			slog.String("calculation", name),
			slog.String("error", err.Error()))
		return nil, err
	}

	cs.logger.InfoContext(ctx, "calculation completed",
		slog.String("calculation", name),
		slog.Duration("duration", duration))

	if cs.broadcaster != nil {
		cs.broadcaster.BroadcastCalcComplete(name, outputs)
	}

	return &RunResult{
		Calculation: name,
		Inputs:      inputs,
		Outputs:     outputs,
		DurationMS:  float64(duration.Microseconds()) / 1000.0,
	}, nil
}
