package service_test

import (
	"context"
	"sync"
	"testing"

	perr "pawmatch/internal/platform/errors"
	petsdom "pawmatch/internal/services/pets/domain"
	dom "pawmatch/internal/services/session/domain"
	"pawmatch/internal/services/session/repo"
	"pawmatch/internal/services/session/service"
)

// scriptedBrowser serves pre-built pages keyed by (filter type, page)
type scriptedBrowser struct {
	mu    sync.Mutex
	pages map[string]map[int]petsdom.Page
	err   error
	calls []int
}

func (b *scriptedBrowser) Browse(_ context.Context, in petsdom.BrowseInput) (petsdom.Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, in.Page)
	if b.err != nil {
		return petsdom.Page{}, b.err
	}
	return b.pages[in.Filter.Type][in.Page], nil
}

func (b *scriptedBrowser) Lookup(context.Context, int64) (petsdom.Candidate, error) {
	return petsdom.Candidate{}, nil
}

func cands(ids ...int64) []petsdom.Candidate {
	out := make([]petsdom.Candidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, petsdom.Candidate{ID: id})
	}
	return out
}

func newSvc(t *testing.T, b petsdom.ServicePort) *service.Service {
	t.Helper()
	store := repo.NewMemory(repo.Config{})
	t.Cleanup(store.Close)
	return service.New(b, store, service.Config{PageSize: 20})
}

func TestNextPeeksAndDecideConsumes(t *testing.T) {
	b := &scriptedBrowser{pages: map[string]map[int]petsdom.Page{
		"dog": {1: {Items: cands(10, 11), CurrentPage: 1, TotalPages: 1, TotalCount: 2}},
	}}
	s := newSvc(t, b)
	ctx := context.Background()

	snap, err := s.Create(ctx, petsdom.FilterSpec{Type: "dog"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := s.Next(ctx, snap.ID)
	if err != nil || res.State != dom.StateReady || res.Candidate.ID != 10 {
		t.Fatalf("first next: %v %+v", err, res)
	}

	// peeking again must not consume
	res, err = s.Next(ctx, snap.ID)
	if err != nil || res.Candidate.ID != 10 {
		t.Fatalf("repeat next should peek the same candidate: %v %+v", err, res)
	}
	if len(b.calls) != 1 {
		t.Fatalf("peek must not refetch, got calls %v", b.calls)
	}

	if _, err := s.Decide(ctx, snap.ID, 10, dom.DecisionAccept); err != nil {
		t.Fatalf("decide: %v", err)
	}
	res, err = s.Next(ctx, snap.ID)
	if err != nil || res.Candidate.ID != 11 {
		t.Fatalf("after decide: %v %+v", err, res)
	}

	favs, err := s.Favorites(ctx, snap.ID)
	if err != nil || len(favs) != 1 || favs[0].ID != 10 {
		t.Fatalf("favorites: %v %+v", err, favs)
	}
}

func TestDecideMustNameCurrentCandidate(t *testing.T) {
	b := &scriptedBrowser{pages: map[string]map[int]petsdom.Page{
		"": {1: {Items: cands(1, 2), CurrentPage: 1, TotalPages: 1}},
	}}
	s := newSvc(t, b)
	ctx := context.Background()

	snap, _ := s.Create(ctx, petsdom.FilterSpec{})
	if _, err := s.Next(ctx, snap.ID); err != nil {
		t.Fatalf("next: %v", err)
	}

	if _, err := s.Decide(ctx, snap.ID, 2, dom.DecisionReject); !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("deciding a non-current candidate must conflict, got %v", err)
	}
	if _, err := s.Decide(ctx, snap.ID, 1, dom.DecisionReject); err != nil {
		t.Fatalf("decide current: %v", err)
	}
	// candidate 1 is consumed; deciding it again must conflict
	if _, err := s.Decide(ctx, snap.ID, 1, dom.DecisionReject); !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("double decide must conflict, got %v", err)
	}
}

func TestBufferExhaustionFetchesNextPage(t *testing.T) {
	b := &scriptedBrowser{pages: map[string]map[int]petsdom.Page{
		"": {
			1: {Items: cands(1), CurrentPage: 1, TotalPages: 2},
			2: {Items: cands(2), CurrentPage: 2, TotalPages: 2},
		},
	}}
	s := newSvc(t, b)
	ctx := context.Background()

	snap, _ := s.Create(ctx, petsdom.FilterSpec{})
	if _, err := s.Next(ctx, snap.ID); err != nil {
		t.Fatalf("next: %v", err)
	}
	if _, err := s.Decide(ctx, snap.ID, 1, dom.DecisionReject); err != nil {
		t.Fatalf("decide: %v", err)
	}

	res, err := s.Next(ctx, snap.ID)
	if err != nil || res.Candidate == nil || res.Candidate.ID != 2 {
		t.Fatalf("expected page 2 candidate, got %v %+v", err, res)
	}

	if _, err := s.Decide(ctx, snap.ID, 2, dom.DecisionReject); err != nil {
		t.Fatalf("decide: %v", err)
	}
	res, err = s.Next(ctx, snap.ID)
	if err != nil || res.State != dom.StateExhausted {
		t.Fatalf("expected exhausted, got %v %+v", err, res)
	}
}

func TestZeroYieldPageAutoAdvances(t *testing.T) {
	b := &scriptedBrowser{pages: map[string]map[int]petsdom.Page{
		"": {
			1: {Items: nil, CurrentPage: 1, TotalPages: 3},
			2: {Items: nil, CurrentPage: 2, TotalPages: 3},
			3: {Items: cands(7), CurrentPage: 3, TotalPages: 3},
		},
	}}
	s := newSvc(t, b)
	ctx := context.Background()

	snap, _ := s.Create(ctx, petsdom.FilterSpec{})
	res, err := s.Next(ctx, snap.ID)
	if err != nil || res.Candidate == nil || res.Candidate.ID != 7 {
		t.Fatalf("expected auto-advance to page 3, got %v %+v", err, res)
	}
	if len(b.calls) != 3 {
		t.Fatalf("expected pages 1..3 fetched, got %v", b.calls)
	}
}

func TestFetchErrorKeepsStateAndRetriesSamePage(t *testing.T) {
	b := &scriptedBrowser{pages: map[string]map[int]petsdom.Page{
		"": {1: {Items: cands(1), CurrentPage: 1, TotalPages: 1}},
	}}
	b.err = perr.Upstreamf(503, "down")
	s := newSvc(t, b)
	ctx := context.Background()

	snap, _ := s.Create(ctx, petsdom.FilterSpec{})
	res, err := s.Next(ctx, snap.ID)
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if res.State != dom.StateError || res.Error == "" {
		t.Fatalf("expected error state with opaque message, got %+v", res)
	}

	b.mu.Lock()
	b.err = nil
	b.mu.Unlock()
	res, err = s.Next(ctx, snap.ID)
	if err != nil || res.Candidate == nil || res.Candidate.ID != 1 {
		t.Fatalf("retry should re-target page 1, got %v %+v", err, res)
	}
	if len(b.calls) != 2 || b.calls[0] != 1 || b.calls[1] != 1 {
		t.Fatalf("expected page 1 fetched twice, got %v", b.calls)
	}
}

func TestApplyFilterResetsEpochButKeepsFavorites(t *testing.T) {
	b := &scriptedBrowser{pages: map[string]map[int]petsdom.Page{
		"dog": {1: {Items: cands(1, 2), CurrentPage: 1, TotalPages: 1}},
		"cat": {1: {Items: cands(9), CurrentPage: 1, TotalPages: 1}},
	}}
	s := newSvc(t, b)
	ctx := context.Background()

	snap, _ := s.Create(ctx, petsdom.FilterSpec{Type: "dog"})
	if _, err := s.Next(ctx, snap.ID); err != nil {
		t.Fatalf("next: %v", err)
	}
	if _, err := s.Decide(ctx, snap.ID, 1, dom.DecisionAccept); err != nil {
		t.Fatalf("decide: %v", err)
	}

	snap2, err := s.ApplyFilter(ctx, snap.ID, petsdom.FilterSpec{Type: "cat"})
	if err != nil {
		t.Fatalf("apply filter: %v", err)
	}
	if snap2.Cursor != 0 || snap2.Loaded != 0 || snap2.Epoch != snap.Epoch+1 {
		t.Fatalf("epoch reset broken: %+v", snap2)
	}

	res, err := s.Next(ctx, snap.ID)
	if err != nil || res.Candidate == nil || res.Candidate.ID != 9 {
		t.Fatalf("new epoch should serve the new filter, got %v %+v", err, res)
	}

	favs, _ := s.Favorites(ctx, snap.ID)
	if len(favs) != 1 || favs[0].ID != 1 {
		t.Fatalf("favorites must persist across epochs, got %+v", favs)
	}
}

func TestRemoveFavorite(t *testing.T) {
	b := &scriptedBrowser{pages: map[string]map[int]petsdom.Page{
		"": {1: {Items: cands(1), CurrentPage: 1, TotalPages: 1}},
	}}
	s := newSvc(t, b)
	ctx := context.Background()

	snap, _ := s.Create(ctx, petsdom.FilterSpec{})
	if _, err := s.Next(ctx, snap.ID); err != nil {
		t.Fatalf("next: %v", err)
	}
	if _, err := s.Decide(ctx, snap.ID, 1, dom.DecisionAccept); err != nil {
		t.Fatalf("decide: %v", err)
	}

	snap2, err := s.RemoveFavorite(ctx, snap.ID, 1)
	if err != nil || snap2.Favorites != 0 {
		t.Fatalf("remove favorite: %v %+v", err, snap2)
	}
	// removing again is a no-op, not an error
	if _, err := s.RemoveFavorite(ctx, snap.ID, 1); err != nil {
		t.Fatalf("re-remove: %v", err)
	}
}

// blockingBrowser parks Browse until released so tests can interleave
type blockingBrowser struct {
	entered chan struct{}
	release chan struct{}
	page    petsdom.Page
	calls   int
	mu      sync.Mutex
}

func (b *blockingBrowser) Browse(_ context.Context, _ petsdom.BrowseInput) (petsdom.Page, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	b.entered <- struct{}{}
	<-b.release
	return b.page, nil
}

func (b *blockingBrowser) Lookup(context.Context, int64) (petsdom.Candidate, error) {
	return petsdom.Candidate{}, nil
}

func TestConcurrentNextCoalescesDuringLoading(t *testing.T) {
	b := &blockingBrowser{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
		page:    petsdom.Page{Items: cands(1), CurrentPage: 1, TotalPages: 1},
	}
	s := newSvc(t, b)
	ctx := context.Background()
	snap, _ := s.Create(ctx, petsdom.FilterSpec{})

	done := make(chan dom.NextResult, 1)
	go func() {
		res, _ := s.Next(ctx, snap.ID)
		done <- res
	}()
	<-b.entered

	// a second advance while loading coalesces instead of double-fetching
	res, err := s.Next(ctx, snap.ID)
	if err != nil || res.State != dom.StateLoading {
		t.Fatalf("expected coalesced loading, got %v %+v", err, res)
	}

	close(b.release)
	first := <-done
	if first.State != dom.StateReady || first.Candidate.ID != 1 {
		t.Fatalf("original advance should complete, got %+v", first)
	}
	if b.calls != 1 {
		t.Fatalf("expected a single fetch, got %d", b.calls)
	}
}

func TestStaleEpochResultIsDiscarded(t *testing.T) {
	b := &blockingBrowser{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
		page:    petsdom.Page{Items: cands(1, 2, 3), CurrentPage: 1, TotalPages: 1},
	}
	s := newSvc(t, b)
	ctx := context.Background()
	snap, _ := s.Create(ctx, petsdom.FilterSpec{Type: "dog"})

	done := make(chan dom.NextResult, 1)
	go func() {
		res, _ := s.Next(ctx, snap.ID)
		done <- res
	}()
	<-b.entered

	// the filter change supersedes the in-flight fetch
	snap2, err := s.ApplyFilter(ctx, snap.ID, petsdom.FilterSpec{Type: "cat"})
	if err != nil {
		t.Fatalf("apply filter: %v", err)
	}

	close(b.release)
	res := <-done
	if res.Candidate != nil {
		t.Fatalf("stale result must not surface a candidate, got %+v", res)
	}

	// the new epoch's buffer must not contain the discarded page
	after, err := s.Restart(ctx, snap.ID)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if after.Loaded != 0 || after.Epoch != snap2.Epoch+1 {
		t.Fatalf("discarded page leaked into buffer: %+v", after)
	}
}
