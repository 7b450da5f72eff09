// Package api provides the HTTP API for the application
package api

import (
	"pawmatch/internal/platform/config"
	"pawmatch/internal/platform/logger"
	phttp "pawmatch/internal/platform/net/http"
	"pawmatch/internal/platform/net/middleware"

	"pawmatch/internal/modkit"
	"pawmatch/internal/modkit/httpkit"
	"pawmatch/internal/modkit/module"

	petsdom "pawmatch/internal/services/pets/domain"
	petsmod "pawmatch/internal/services/pets/module"
	sessionmod "pawmatch/internal/services/session/module"

	metamod "pawmatch/internal/services/meta/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Logger *logger.Logger
	// Lister is the upstream pet listing client
	Lister petsdom.ListerPort
	// Upstream is handed to readiness probes; usually the same client
	Upstream       any
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) func() {
	deps := modkit.Deps{
		Cfg: opt.Config,
		Log: opt.Logger,
	}

	// bare liveness probe outside the /api envelope stack
	r.Use(middleware.Heartbeat("/health"))

	// pets first; the session pager consumes its browse port
	pets := petsmod.New(modkit.Deps{Cfg: deps.Cfg.Prefix("PETS_"), Log: deps.Log}, opt.Lister)
	browse := module.MustPortsOf[petsmod.Ports](pets).Browse

	sessions := sessionmod.New(modkit.Deps{Cfg: deps.Cfg.Prefix("SESSION_"), Log: deps.Log}, browse)

	mods := []module.Module{
		metamod.New(deps, opt.Upstream),
		pets,
		sessions,
	}

	httpkit.MountAPI(r, httpkit.CommonStack(), func(api httpkit.Router) {
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	return sessions.Close
}
