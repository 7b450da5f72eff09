// Package module wires swipe sessions into the API using modkit
package module

import (
	"net/http"
	"time"

	modkit "pawmatch/internal/modkit"
	"pawmatch/internal/modkit/httpkit"
	str "pawmatch/internal/platform/strings"
	petsdom "pawmatch/internal/services/pets/domain"
	"pawmatch/internal/services/session/domain"
	sessionhttp "pawmatch/internal/services/session/http"
	sessionrepo "pawmatch/internal/services/session/repo"
	sessionsvc "pawmatch/internal/services/session/service"
)

// Ports exposed by the session module
type Ports struct {
	Sessions domain.ServicePort
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

	svc   *sessionsvc.Service
	store *sessionrepo.Memory
}

// New constructs a session module around the browse pipeline port
func New(deps modkit.Deps, browser petsdom.ServicePort, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("session"), modkit.WithPrefix("/sessions")}, opts...)...)

	store := sessionrepo.NewMemory(sessionrepo.Config{
		TTL:        deps.Cfg.MayDuration("TTL", 30*time.Minute),
		SweepEvery: deps.Cfg.MayDuration("SWEEP_EVERY", time.Minute),
	})
	svc := sessionsvc.New(browser, store, sessionsvc.Config{
		PageSize: deps.Cfg.MayInt("PAGE_SIZE", 20),
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
		store:     store,
	}
	m.ports = Ports{Sessions: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		sessionhttp.Register(r, m.svc)
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

// Close stops the session store janitor
func (m *Module) Close() { m.store.Close() }
