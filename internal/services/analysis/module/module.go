// Package module implements the analysis module
package module

import (
	"net/http"

	"rrational/internal/core/artifact"
	"rrational/internal/core/correct"
	"rrational/internal/core/pipeline"
	"rrational/internal/modkit"
	"rrational/internal/modkit/httpkit"
	"rrational/internal/services/analysis/domain"
	"rrational/internal/services/analysis/service"
)

// Ports exposed by the analysis module
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new analysis module
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("analysis"),
	}, opts...)...)

	// Basic guardrails against incorrect wiring
	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("analysis module: expected WithPorts(analysis/domain.Ports)")
	}
	if ports.Recordings == nil || ports.Results == nil {
		panic("analysis module: Ports missing Recordings or Results")
	}

	cfg := merge(FromConfig(deps.Cfg), overrides)

	runner, err := service.New(
		ports.Recordings,
		ports.Results,
		service.Config{
			Workers:      cfg.Workers,
			PageSize:     cfg.PageSize,
			MaxRangeDays: cfg.MaxRangeDays,
			DryRun:       cfg.DryRun,
			Opts: pipeline.Options{
				EctopicMethod:    artifact.Method(cfg.EctopicMethod),
				CorrectionMethod: correct.Method(cfg.CorrectionMethod),
			},
		},
	)
	if err != nil {
		panic(err)
	}

	m := &Module{deps: deps}
	m.ports = Ports{Runner: runner}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "analysis" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
