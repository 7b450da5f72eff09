package module_test

import (
	"testing"

	"pawmatch/internal/modkit/module"
	phttp "pawmatch/internal/platform/net/http"
	kit "pawmatch/internal/platform/testkit"
)

type fakePorts struct{ tag string }

type fakeModule struct{ ports any }

func (f fakeModule) MountRoutes(phttp.Router) {}
func (f fakeModule) Ports() any               { return f.ports }
func (f fakeModule) Name() string             { return "fake" }

func TestRegistryRoundTrip(t *testing.T) {
	module.Reset()
	t.Cleanup(module.Reset)

	module.Register("pets", fakePorts{tag: "browse"})

	got, ok := module.PortsAs[fakePorts]("pets")
	if !ok || got.tag != "browse" {
		t.Fatalf("PortsAs: ok=%v got=%+v", ok, got)
	}

	if _, ok := module.PortsAs[fakePorts]("missing"); ok {
		t.Fatalf("expected miss for unknown name")
	}
	if _, ok := module.PortsAs[string]("pets"); ok {
		t.Fatalf("expected type mismatch to fail")
	}
}

func TestMustPortsOf(t *testing.T) {
	m := fakeModule{ports: fakePorts{tag: "x"}}
	if got := module.MustPortsOf[fakePorts](m); got.tag != "x" {
		t.Fatalf("MustPortsOf: %+v", got)
	}
	kit.MustPanic(t, func() { module.MustPortsOf[string](m) })
}
