package service_test

import (
	"context"
	"testing"

	perr "pawmatch/internal/platform/errors"
	dom "pawmatch/internal/services/pets/domain"
	"pawmatch/internal/services/pets/service"
)

type fakeLister struct {
	page   dom.Page
	err    error
	gotPg  int
	gotLim int
	gotQ   map[string][]string
}

func (f *fakeLister) Animals(_ context.Context, page, limit int, params map[string][]string) (dom.Page, error) {
	f.gotPg, f.gotLim, f.gotQ = page, limit, params
	return f.page, f.err
}

func (f *fakeLister) Animal(context.Context, int64) (dom.Candidate, error) {
	return dom.Candidate{ID: 7}, nil
}

func withPhotos(id int64) dom.Candidate {
	return dom.Candidate{ID: id, Photos: []dom.PhotoSet{{Medium: "m"}}}
}

func TestBrowseDefaultsPageAndLimit(t *testing.T) {
	f := &fakeLister{}
	s := service.New(f, service.Config{})

	if _, err := s.Browse(context.Background(), dom.BrowseInput{}); err != nil {
		t.Fatalf("browse: %v", err)
	}
	if f.gotPg != 1 || f.gotLim != 20 {
		t.Fatalf("expected defaults page=1 limit=20, got %d/%d", f.gotPg, f.gotLim)
	}

	if _, err := s.Browse(context.Background(), dom.BrowseInput{Page: 3, Limit: 500}); err != nil {
		t.Fatalf("browse: %v", err)
	}
	if f.gotPg != 3 || f.gotLim != 20 {
		t.Fatalf("over-limit must fall back to default, got %d/%d", f.gotPg, f.gotLim)
	}
}

func TestBrowseSplitsFilterAndRefines(t *testing.T) {
	f := &fakeLister{page: dom.Page{
		Items:       []dom.Candidate{withPhotos(1), {ID: 2}, withPhotos(3)},
		CurrentPage: 1,
		TotalPages:  5,
		TotalCount:  90,
	}}
	s := service.New(f, service.Config{})

	in := dom.BrowseInput{Filter: dom.FilterSpec{Type: "dog", HasPhotos: true}}
	page, err := s.Browse(context.Background(), in)
	if err != nil {
		t.Fatalf("browse: %v", err)
	}

	if got := f.gotQ["type"]; len(got) != 1 || got[0] != "dog" {
		t.Fatalf("remote predicate missing: %v", f.gotQ)
	}
	if _, ok := f.gotQ["hasPhotos"]; ok {
		t.Fatalf("local predicate must not reach the upstream: %v", f.gotQ)
	}

	if len(page.Items) != 2 || page.Items[0].ID != 1 || page.Items[1].ID != 3 {
		t.Fatalf("refinement broken: %+v", page.Items)
	}
	if page.TotalCount != 90 {
		t.Fatalf("total count must stay upstream-reported, got %d", page.TotalCount)
	}
}

func TestBrowsePropagatesUpstreamError(t *testing.T) {
	f := &fakeLister{err: perr.Upstreamf(503, "down")}
	s := service.New(f, service.Config{})

	_, err := s.Browse(context.Background(), dom.BrowseInput{})
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestLookupDelegates(t *testing.T) {
	s := service.New(&fakeLister{}, service.Config{})
	c, err := s.Lookup(context.Background(), 7)
	if err != nil || c.ID != 7 {
		t.Fatalf("lookup: %v %+v", err, c)
	}
}
