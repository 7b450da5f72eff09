// Package repo provides the in-memory session store
package repo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	perr "pawmatch/internal/platform/errors"
	"pawmatch/internal/platform/logger"
	dom "pawmatch/internal/services/session/domain"
)

// Config for the memory store
type Config struct {
	// TTL is how long an untouched session survives
	TTL time.Duration
	// SweepEvery is the janitor interval
	SweepEvery time.Duration
	// Now is injectable for expiry tests; defaults to time.Now
	Now func() time.Time
}

type entry struct {
	mu   sync.Mutex
	sess *dom.Session
}

// Memory keeps live sessions in process. Sessions are not durable by
// design; favorites live only as long as the session does
type Memory struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
	cfg     Config
	log     logger.Logger
	stop    chan struct{}
	done    chan struct{}
}

// NewMemory constructs the store and starts its janitor
func NewMemory(cfg Config) *Memory {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.SweepEvery <= 0 {
		cfg.SweepEvery = time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	m := &Memory{
		entries: make(map[uuid.UUID]*entry),
		cfg:     cfg,
		log:     *logger.Named("session_store"),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go m.janitor()
	return m
}

// Create implements domain.StorePort
func (m *Memory) Create(_ context.Context, s *dom.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[s.ID]; ok {
		return perr.Newf(perr.ErrorCodeConflict, "session %s already exists", s.ID)
	}
	m.entries[s.ID] = &entry{sess: s}
	return nil
}

// With implements domain.StorePort: runs fn holding the session's lock
// and refreshes its TTL on the way out
func (m *Memory) With(_ context.Context, id uuid.UUID, fn func(*dom.Session) error) error {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return perr.Newf(perr.ErrorCodeNotFound, "session %s not found", id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(e.sess); err != nil {
		return err
	}
	e.sess.TouchedAt = m.cfg.Now()
	return nil
}

// Delete implements domain.StorePort
func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return perr.Newf(perr.ErrorCodeNotFound, "session %s not found", id)
	}
	delete(m.entries, id)
	return nil
}

// Len returns the number of live sessions
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close stops the janitor and waits for it to exit
func (m *Memory) Close() {
	close(m.stop)
	<-m.done
}

func (m *Memory) janitor() {
	defer close(m.done)
	t := time.NewTicker(m.cfg.SweepEvery)
	defer t.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-t.C:
			if n := m.sweep(); n > 0 {
				m.log.Debug().Int("expired", n).Msg("session sweep")
			}
		}
	}
}

// sweep drops sessions idle past the TTL
func (m *Memory) sweep() int {
	cutoff := m.cfg.Now().Add(-m.cfg.TTL)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.entries {
		e.mu.Lock()
		expired := e.sess.TouchedAt.Before(cutoff)
		e.mu.Unlock()
		if expired {
			delete(m.entries, id)
			n++
		}
	}
	return n
}
