package domain

import (
	petsdom "pawmatch/internal/services/pets/domain"
)

// Ledger records favorites with set semantics keyed by candidate id.
// Accept order is preserved; re-accepting an existing favorite is a no-op.
// Rejections are not recorded, the pager cursor already guarantees each
// candidate is decided once per epoch pass
type Ledger struct {
	favorites []petsdom.Candidate
	index     map[int64]int
}

// Accept adds the candidate to favorites unless its id is already present.
// Reports whether the ledger changed
func (l *Ledger) Accept(c petsdom.Candidate) bool {
	if _, ok := l.index[c.ID]; ok {
		return false
	}
	if l.index == nil {
		l.index = make(map[int64]int)
	}
	l.index[c.ID] = len(l.favorites)
	l.favorites = append(l.favorites, c)
	return true
}

// Remove deletes a favorite by id; no-op if absent.
// Reports whether the ledger changed
func (l *Ledger) Remove(id int64) bool {
	pos, ok := l.index[id]
	if !ok {
		return false
	}
	l.favorites = append(l.favorites[:pos], l.favorites[pos+1:]...)
	delete(l.index, id)
	for i := pos; i < len(l.favorites); i++ {
		l.index[l.favorites[i].ID] = i
	}
	return true
}

// IsFavorited reports whether the id is currently favorited
func (l *Ledger) IsFavorited(id int64) bool {
	_, ok := l.index[id]
	return ok
}

// Favorites returns the favorites in accept order as a defensive copy
func (l *Ledger) Favorites() []petsdom.Candidate {
	out := make([]petsdom.Candidate, len(l.favorites))
	copy(out, l.favorites)
	return out
}

// Len returns the number of favorites
func (l *Ledger) Len() int { return len(l.favorites) }
