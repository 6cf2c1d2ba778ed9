// Package module provides the recordings module
package module

import (
	"net/http"

	"rrational/internal/modkit"
	"rrational/internal/modkit/httpkit"
	"rrational/internal/modkit/repokit"
	"rrational/internal/services/recordings/domain"
	"rrational/internal/services/recordings/repo"
	"rrational/internal/services/recordings/service"
)

// Ports exposed by the recordings module
type Ports struct {
	Writer domain.WriterPort
	Reader domain.ReaderPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new recordings module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	binder := repo.NewPG()
	var beats *repo.Beats
	if deps.CH != nil {
		beats = repo.NewBeats(deps.CH)
	}
	svc := service.New(repokit.TxRunner(deps.PG), binder, beats, service.Config{
		HardLimit: opts.HardLimit,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Writer: svc, Reader: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "recordings" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
