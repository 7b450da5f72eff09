package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "pawmatch/internal/platform/errors"
	pnet "pawmatch/internal/platform/net"
	phttp "pawmatch/internal/platform/net/http"
)

// helper to build a request with a request_id in context
func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), rid))
	return req
}

func TestJSONAndStatusHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.JSON(rec, http.StatusTeapot, map[string]any{"k": "v"})
	if rec.Code != http.StatusTeapot {
		t.Fatalf("JSON status: expected 418, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct == "" {
		t.Fatalf("expected content-type set")
	}

	rec2 := httptest.NewRecorder()
	phttp.JSONStatus(rec2, http.StatusAccepted)
	if rec2.Code != http.StatusAccepted {
		t.Fatalf("JSONStatus: expected 202, got %d", rec2.Code)
	}
}

func TestRespondOK(t *testing.T) {
	rec := httptest.NewRecorder()
	req := reqWithReqID("GET", "/pets", "rid-1")
	phttp.RespondOK(rec, req, map[string]string{"a": "b"})
	if rec.Code != http.StatusOK {
		t.Fatalf("RespondOK code: %d", rec.Code)
	}
	var env phttp.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.StatusCode != 200 || env.RequestID != "rid-1" || env.Data == nil {
		t.Fatalf("bad envelope: %+v", env)
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := reqWithReqID("GET", "/err", "rid-3")

	err := perr.Upstreamf(500, "listing api is having a day")
	phttp.RespondError(rec, req, err)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var env phttp.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Code != perr.ErrorCodeUpstream || env.Error == "" || env.RequestID != "rid-3" {
		t.Fatalf("bad error envelope: %+v", env)
	}
}

func TestReturnStyleHandle(t *testing.T) {
	// OK
	h := phttp.Handle(func(r *http.Request) phttp.Response {
		return phttp.OK(map[string]any{"x": 1})
	})
	rec := httptest.NewRecorder()
	h(rec, reqWithReqID("GET", "/ok", "rid-4"))
	if rec.Code != http.StatusOK {
		t.Fatalf("handle OK code: %d", rec.Code)
	}

	// NoContent writes no body
	hn := phttp.Handle(func(r *http.Request) phttp.Response { return phttp.NoContent() })
	recN := httptest.NewRecorder()
	hn(recN, reqWithReqID("DELETE", "/x", "rid-5"))
	if recN.Code != http.StatusNoContent || recN.Body.Len() != 0 {
		t.Fatalf("NoContent: code %d body %q", recN.Code, recN.Body.String())
	}

	// Error derives status from the error code
	he := phttp.Handle(func(r *http.Request) phttp.Response {
		return phttp.Error(perr.NotFoundf("no such session"))
	})
	recE := httptest.NewRecorder()
	he(recE, reqWithReqID("GET", "/missing", "rid-6"))
	if recE.Code != http.StatusNotFound {
		t.Fatalf("Error: expected 404, got %d", recE.Code)
	}
}

func TestJSONHandlerNoBody(t *testing.T) {
	h := phttp.JSONHandlerNoBody(func(r *http.Request) (any, error) {
		return map[string]int{"n": 7}, nil
	})
	rec := httptest.NewRecorder()
	h(rec, reqWithReqID("GET", "/n", "rid-7"))
	var env phttp.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.StatusCode != 200 || env.Data == nil {
		t.Fatalf("bad envelope: %+v", env)
	}
}
