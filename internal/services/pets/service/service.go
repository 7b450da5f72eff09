// Package service implements the filtered browse pipeline over the upstream lister
package service

import (
	"context"

	dom "pawmatch/internal/services/pets/domain"
)

// Config for the pets service
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// Service implements domain.ServicePort: split the filter, fetch one
// upstream page of remote-eligible predicates, refine locally.
// Refinement may shrink a page below the requested size; no backfill
// happens here, underflow is the session pager's call
type Service struct {
	Lister dom.ListerPort
	Cfg    Config
}

// New constructs a pets service around a required upstream lister
func New(lister dom.ListerPort, cfg Config) *Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 20
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 100
	}
	return &Service{Lister: lister, Cfg: cfg}
}

// Browse implements domain.ServicePort
func (s *Service) Browse(ctx context.Context, in dom.BrowseInput) (dom.Page, error) {
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Limit <= 0 || in.Limit > s.Cfg.MaxLimit {
		in.Limit = s.Cfg.DefaultLimit
	}

	params, residual := in.Filter.Split()
	page, err := s.Lister.Animals(ctx, in.Page, in.Limit, params)
	if err != nil {
		return dom.Page{}, err
	}

	// TotalCount stays at the upstream-reported figure on purpose; the
	// refined item count is not a population statistic
	page.Items = dom.Refine(page.Items, residual)
	return page, nil
}

// Lookup implements domain.ServicePort
func (s *Service) Lookup(ctx context.Context, id int64) (dom.Candidate, error) {
	return s.Lister.Animal(ctx, id)
}
