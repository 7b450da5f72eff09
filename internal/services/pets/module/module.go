// Package module wires pet browsing into the API using modkit
package module

import (
	"net/http"

	modkit "pawmatch/internal/modkit"
	"pawmatch/internal/modkit/httpkit"
	str "pawmatch/internal/platform/strings"
	"pawmatch/internal/services/pets/domain"
	petshttp "pawmatch/internal/services/pets/http"
	petssvc "pawmatch/internal/services/pets/service"
)

// Ports exposed by the pets module
type Ports struct {
	Browse domain.ServicePort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports Ports

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *petssvc.Service
}

// New constructs a pets module around a required upstream lister
func New(deps modkit.Deps, lister domain.ListerPort, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("pets"), modkit.WithPrefix("/pets")}, opts...)...)

	svc := petssvc.New(lister, petssvc.Config{
		DefaultLimit: deps.Cfg.MayInt("BROWSE_DEFAULT_LIMIT", 20),
		MaxLimit:     deps.Cfg.MayInt("BROWSE_MAX_LIMIT", 100),
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Browse: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		petshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports returns the module port set
func (m *Module) Ports() any { return m.ports }
