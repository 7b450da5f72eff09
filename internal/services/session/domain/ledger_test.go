package domain_test

import (
	"testing"

	petsdom "pawmatch/internal/services/pets/domain"
	"pawmatch/internal/services/session/domain"
)

func cand(id int64) petsdom.Candidate { return petsdom.Candidate{ID: id} }

func TestAcceptIsIdempotent(t *testing.T) {
	var l domain.Ledger
	if !l.Accept(cand(1)) {
		t.Fatalf("first accept should change the ledger")
	}
	if l.Accept(cand(1)) {
		t.Fatalf("re-accept must be a no-op")
	}
	if got := l.Favorites(); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected exactly one favorite with id 1, got %+v", got)
	}
}

func TestFavoritesPreserveAcceptOrder(t *testing.T) {
	var l domain.Ledger
	for _, id := range []int64{5, 2, 9} {
		l.Accept(cand(id))
	}
	got := l.Favorites()
	for i, want := range []int64{5, 2, 9} {
		if got[i].ID != want {
			t.Fatalf("order broken at %d: expected %d, got %d", i, want, got[i].ID)
		}
	}
}

func TestRemoveMiddleKeepsIndexConsistent(t *testing.T) {
	var l domain.Ledger
	for _, id := range []int64{1, 2, 3} {
		l.Accept(cand(id))
	}
	if !l.Remove(2) {
		t.Fatalf("remove of present id should report change")
	}
	if l.Remove(2) {
		t.Fatalf("remove of absent id must be a no-op")
	}
	if l.IsFavorited(2) || !l.IsFavorited(1) || !l.IsFavorited(3) {
		t.Fatalf("membership broken after remove")
	}

	// positions must still line up so later removes hit the right entry
	if !l.Remove(3) {
		t.Fatalf("remove after reindex failed")
	}
	got := l.Favorites()
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only id 1 left, got %+v", got)
	}
}

func TestFavoritesReturnsCopy(t *testing.T) {
	var l domain.Ledger
	l.Accept(cand(1))
	got := l.Favorites()
	got[0].ID = 99
	if l.Favorites()[0].ID != 1 {
		t.Fatalf("Favorites must not expose internal storage")
	}
}
