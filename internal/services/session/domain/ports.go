package domain

import (
	"context"

	"github.com/google/uuid"

	petsdom "pawmatch/internal/services/pets/domain"
)

// ServicePort is the session surface exposed to transports
type ServicePort interface {
	// Create starts a session with an initial filter
	Create(ctx context.Context, filter petsdom.FilterSpec) (Snapshot, error)
	// ApplyFilter replaces the active filter and starts a new epoch
	ApplyFilter(ctx context.Context, id uuid.UUID, filter petsdom.FilterSpec) (Snapshot, error)
	// Restart starts a new epoch with the current filter
	Restart(ctx context.Context, id uuid.UUID) (Snapshot, error)
	// Next returns the current candidate, fetching a page when the buffer is spent
	Next(ctx context.Context, id uuid.UUID) (NextResult, error)
	// Decide records a verdict for the current candidate and advances the cursor
	Decide(ctx context.Context, id uuid.UUID, candidateID int64, d Decision) (Snapshot, error)
	// Favorites lists favorites in accept order
	Favorites(ctx context.Context, id uuid.UUID) ([]petsdom.Candidate, error)
	// RemoveFavorite deletes one favorite by candidate id
	RemoveFavorite(ctx context.Context, id uuid.UUID, candidateID int64) (Snapshot, error)
}

// StorePort keeps live sessions. With runs fn while holding the session's
// lock; mutations inside fn are visible to subsequent calls
type StorePort interface {
	Create(ctx context.Context, s *Session) error
	With(ctx context.Context, id uuid.UUID, fn func(*Session) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}
