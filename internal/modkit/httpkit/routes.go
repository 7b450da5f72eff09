package httpkit

import (
	"net/http"
	"strings"
)

// MountUnder mounts a subrouter at prefix and applies per-module middlewares
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPI mounts a subrouter under /api, applies any per-scope middleware,
// then invokes mount to register routes on that scoped router
//
// example:
//
//	httpkit.MountAPI(r, httpkit.CommonStack(), func(api httpkit.Router) {
//	  pets.MountRoutes(api)
//	})
func MountAPI(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api", func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}

// JoinPrefix composes a clean route prefix from segments
func JoinPrefix(parts ...string) string {
	out := ""
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), "/")
		if p != "" {
			out += "/" + p
		}
	}
	if out == "" {
		return "/"
	}
	return out
}
