// Package api provides the HTTP API for the application
package api

import (
	"rrational/internal/platform/config"
	"rrational/internal/platform/logger"
	phttp "rrational/internal/platform/net/http"
	"rrational/internal/platform/store"

	"rrational/internal/modkit"
	"rrational/internal/modkit/httpkit"
	"rrational/internal/modkit/module"
	"rrational/internal/modkit/swaggerkit"

	analysesmod "rrational/internal/services/api/analyses/module"
	metamod "rrational/internal/services/api/meta/module"
	apirecmod "rrational/internal/services/api/recordings/module"
	reportsmod "rrational/internal/services/api/reports/module"

	// Worker modules (own the storage-facing ports)
	andom "rrational/internal/services/analysis/domain"
	anmod "rrational/internal/services/analysis/module"
	recmod "rrational/internal/services/recordings/module"
	resmod "rrational/internal/services/results/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Construct the worker modules first and extract their ports
	recordings := recmod.New(deps)
	results := resmod.New(deps)

	recPorts := module.MustPortsOf[recmod.Ports](recordings)
	resPorts := module.MustPortsOf[resmod.Ports](results)

	// Analysis runner wired over the worker ports
	analysis := anmod.New(
		deps,
		anmod.Options{},
		modkit.WithPorts(andom.Ports{
			Recordings: recPorts.Reader,
			Results:    resPorts.Writer,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		apirecmod.New(deps, modkit.WithPorts(apirecmod.Ports{
			Writer: recPorts.Writer,
			Reader: recPorts.Reader,
		})),
		reportsmod.New(deps, modkit.WithPorts(reportsmod.Ports{
			Query: resPorts.Query,
		})),
		analysesmod.New(deps, modkit.WithPorts(analysesmod.Ports{
			Runner: module.MustPortsOf[anmod.Ports](analysis).Runner,
		})),
		recordings, // include workers so their ports are registered
		results,
		analysis,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
