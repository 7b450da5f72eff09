// Package service implements the swipe-session pager and decision handling
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	perr "pawmatch/internal/platform/errors"
	"pawmatch/internal/platform/logger"
	petsdom "pawmatch/internal/services/pets/domain"
	dom "pawmatch/internal/services/session/domain"
)

// Config for the session service
type Config struct {
	// PageSize is the upstream page size each buffer refill requests
	PageSize int
	// Now is injectable for tests; defaults to time.Now
	Now func() time.Time
}

// Service implements domain.ServicePort. The store serializes access per
// session; upstream fetches run outside the session lock so a concurrent
// Next observes Loading and coalesces instead of blocking or duplicating
// the fetch. Results from a superseded epoch are discarded on arrival
type Service struct {
	Browser petsdom.ServicePort
	Store   dom.StorePort
	Cfg     Config
	log     logger.Logger
}

// New constructs a session service around the browse pipeline and a store
func New(browser petsdom.ServicePort, store dom.StorePort, cfg Config) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{Browser: browser, Store: store, Cfg: cfg, log: *logger.Named("session")}
}

// Create implements domain.ServicePort
func (s *Service) Create(ctx context.Context, filter petsdom.FilterSpec) (dom.Snapshot, error) {
	sess := dom.NewSession(filter, s.Cfg.Now())
	if err := s.Store.Create(ctx, sess); err != nil {
		return dom.Snapshot{}, err
	}
	s.log.Debug().Str("session_id", sess.ID.String()).Msg("session created")
	return sess.Snap(), nil
}

// ApplyFilter implements domain.ServicePort; favorites persist across epochs
func (s *Service) ApplyFilter(ctx context.Context, id uuid.UUID, filter petsdom.FilterSpec) (dom.Snapshot, error) {
	var snap dom.Snapshot
	err := s.Store.With(ctx, id, func(sess *dom.Session) error {
		sess.Reset(filter)
		snap = sess.Snap()
		return nil
	})
	return snap, err
}

// Restart implements domain.ServicePort: a new epoch with the same filter
func (s *Service) Restart(ctx context.Context, id uuid.UUID) (dom.Snapshot, error) {
	var snap dom.Snapshot
	err := s.Store.With(ctx, id, func(sess *dom.Session) error {
		sess.Reset(sess.Filter)
		snap = sess.Snap()
		return nil
	})
	return snap, err
}

// fetchTarget pins the epoch and page a fetch was started for
type fetchTarget struct {
	epoch  uint64
	page   int
	filter petsdom.FilterSpec
}

// Next implements domain.ServicePort
//
// The candidate at the cursor is peeked, not consumed; only a decision
// advances the cursor. When the buffer is spent and pages remain, one page
// is fetched per loop turn; pages that refine down to zero items
// auto-advance until something survives or the upstream runs out
func (s *Service) Next(ctx context.Context, id uuid.UUID) (dom.NextResult, error) {
	for {
		var (
			res     dom.NextResult
			fetch   fetchTarget
			doFetch bool
		)
		err := s.Store.With(ctx, id, func(sess *dom.Session) error {
			if c, ok := sess.Current(); ok {
				sess.State = dom.StateReady
				res = dom.NextResult{State: dom.StateReady, Candidate: &c}
				return nil
			}
			if sess.State == dom.StateLoading {
				// a fetch for this epoch is already in flight; coalesce
				res = dom.NextResult{State: dom.StateLoading}
				return nil
			}
			if !sess.MorePages() {
				sess.State = dom.StateExhausted
				res = dom.NextResult{State: dom.StateExhausted}
				return nil
			}
			sess.State = dom.StateLoading
			fetch = fetchTarget{epoch: sess.Epoch, page: sess.RemotePage, filter: sess.Filter}
			doFetch = true
			return nil
		})
		if err != nil {
			return dom.NextResult{}, err
		}
		if !doFetch {
			return res, nil
		}

		page, ferr := s.Browser.Browse(ctx, petsdom.BrowseInput{
			Page:   fetch.page,
			Limit:  s.Cfg.PageSize,
			Filter: fetch.filter,
		})

		var again bool
		err = s.Store.With(ctx, id, func(sess *dom.Session) error {
			if sess.Epoch != fetch.epoch {
				// superseded by a filter change; discard this result
				res = dom.NextResult{State: sess.State}
				if c, ok := sess.Current(); ok && sess.State == dom.StateReady {
					res.Candidate = &c
				}
				ferr = nil
				return nil
			}
			if ferr != nil {
				// prior buffer and cursor stay untouched; a retry re-enters
				// Loading with the same target page
				sess.State = dom.StateError
				sess.LastError = perr.WireFrom(ferr).Message
				res = dom.NextResult{State: dom.StateError, Error: sess.LastError}
				return nil
			}

			if fetch.page == 1 {
				sess.Loaded = page.Items
			} else {
				sess.Loaded = append(sess.Loaded, page.Items...)
			}
			sess.TotalPages = page.TotalPages
			sess.RemotePage = fetch.page + 1
			sess.LastError = ""

			if c, ok := sess.Current(); ok {
				sess.State = dom.StateReady
				res = dom.NextResult{State: dom.StateReady, Candidate: &c}
				return nil
			}
			if sess.MorePages() {
				// page refined down to nothing; go get the next one
				sess.State = dom.StateIdle
				again = true
				return nil
			}
			sess.State = dom.StateExhausted
			res = dom.NextResult{State: dom.StateExhausted}
			return nil
		})
		if err != nil {
			return dom.NextResult{}, err
		}
		if again {
			continue
		}
		if ferr != nil {
			s.log.Warn().Err(ferr).Str("session_id", id.String()).Int("page", fetch.page).Msg("session fetch failed")
			return res, ferr
		}
		return res, nil
	}
}

// Decide implements domain.ServicePort
//
// The verdict must name the candidate at the cursor; anything else is a
// conflict so a stale client cannot double-consume or skip candidates
func (s *Service) Decide(ctx context.Context, id uuid.UUID, candidateID int64, d dom.Decision) (dom.Snapshot, error) {
	if !d.Valid() {
		return dom.Snapshot{}, perr.WithField(perr.Validationf("decision must be accept or reject"), "decision")
	}
	var snap dom.Snapshot
	err := s.Store.With(ctx, id, func(sess *dom.Session) error {
		cur, ok := sess.Current()
		if !ok {
			return perr.Newf(perr.ErrorCodeConflict, "no current candidate to decide")
		}
		if cur.ID != candidateID {
			return perr.Newf(perr.ErrorCodeConflict, "decision names candidate %d but current is %d", candidateID, cur.ID)
		}
		if d == dom.DecisionAccept {
			sess.Ledger.Accept(cur)
		}
		sess.Cursor++
		if _, ok := sess.Current(); !ok && !sess.MorePages() {
			sess.State = dom.StateExhausted
		}
		snap = sess.Snap()
		return nil
	})
	return snap, err
}

// Favorites implements domain.ServicePort
func (s *Service) Favorites(ctx context.Context, id uuid.UUID) ([]petsdom.Candidate, error) {
	var out []petsdom.Candidate
	err := s.Store.With(ctx, id, func(sess *dom.Session) error {
		out = sess.Ledger.Favorites()
		return nil
	})
	return out, err
}

// RemoveFavorite implements domain.ServicePort; no-op if absent
func (s *Service) RemoveFavorite(ctx context.Context, id uuid.UUID, candidateID int64) (dom.Snapshot, error) {
	var snap dom.Snapshot
	err := s.Store.With(ctx, id, func(sess *dom.Session) error {
		sess.Ledger.Remove(candidateID)
		snap = sess.Snap()
		return nil
	})
	return snap, err
}
