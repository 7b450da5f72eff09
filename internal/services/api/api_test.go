package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"pawmatch/internal/modkit/module"
	"pawmatch/internal/platform/config"
	"pawmatch/internal/platform/logger"
	phttp "pawmatch/internal/platform/net/http"
	"pawmatch/internal/services/api"
	petsdom "pawmatch/internal/services/pets/domain"
)

type stubLister struct{}

func (stubLister) Animals(_ context.Context, page, _ int, _ map[string][]string) (petsdom.Page, error) {
	return petsdom.Page{
		Items:       []petsdom.Candidate{{ID: 1, Name: "Rex"}},
		CurrentPage: page,
		TotalPages:  1,
		TotalCount:  1,
	}, nil
}

func (stubLister) Animal(_ context.Context, id int64) (petsdom.Candidate, error) {
	return petsdom.Candidate{ID: id}, nil
}

func mountAPI(t *testing.T) *httptest.Server {
	t.Helper()
	module.Reset()
	r := phttp.AdaptChi(chi.NewMux())
	closeFn := api.Mount(r, api.Options{
		Config: config.New().Prefix("TEST_API_"),
		Logger: logger.Get(),
		Lister: stubLister{},
	})
	t.Cleanup(closeFn)
	srv := httptest.NewServer(r.Mux())
	t.Cleanup(srv.Close)
	return srv
}

func fetch(t *testing.T, method, url string, body []byte) (int, phttp.Envelope) {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	var env phttp.Envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp.StatusCode, env
}

func TestMountExposesCoreSurface(t *testing.T) {
	srv := mountAPI(t)

	// liveness outside the api envelope
	status, _ := fetch(t, http.MethodGet, srv.URL+"/health", nil)
	if status != http.StatusOK {
		t.Fatalf("health: %d", status)
	}

	// browse pipeline under /api
	status, env := fetch(t, http.MethodGet, srv.URL+"/api/pets?type=dog", nil)
	if status != http.StatusOK || env.Data == nil {
		t.Fatalf("pets: %d %+v", status, env)
	}

	// session lifecycle end to end against the stub upstream
	status, created := fetch(t, http.MethodPost, srv.URL+"/api/sessions", []byte(`{"filter":{"type":"dog"}}`))
	if status != http.StatusCreated {
		t.Fatalf("create session: %d %+v", status, created)
	}
	snap, ok := created.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected snapshot, got %+v", created.Data)
	}
	id, _ := snap["id"].(string)
	if id == "" {
		t.Fatalf("expected snapshot id, got %+v", snap)
	}

	status, next := fetch(t, http.MethodGet, srv.URL+"/api/sessions/"+id+"/next", nil)
	if status != http.StatusOK {
		t.Fatalf("next: %d %+v", status, next)
	}
	res, ok := next.Data.(map[string]any)
	if !ok || res["state"] != "ready" {
		t.Fatalf("expected ready candidate, got %+v", next.Data)
	}

	// meta surface rides under /api/meta
	status, _ = fetch(t, http.MethodGet, srv.URL+"/api/meta/version", nil)
	if status != http.StatusOK {
		t.Fatalf("meta version: %d", status)
	}
}
