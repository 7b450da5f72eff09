package domain

import "context"

// BrowseInput is the input for one page of filtered browsing
type BrowseInput struct {
	Page   int        `json:"page" validate:"omitempty,min=1"`
	Limit  int        `json:"limit" validate:"omitempty,min=1,max=100"`
	Filter FilterSpec `json:"filter"`
}

// ServicePort defines the browse pipeline contract
type ServicePort interface {
	// Browse fetches one upstream page, locally refined
	Browse(ctx context.Context, in BrowseInput) (Page, error)
	// Lookup fetches a single candidate by id
	Lookup(ctx context.Context, id int64) (Candidate, error)
}

// ListerPort is the upstream listing collaborator consumed by the service
// params carries only remote-eligible predicates; implementations must always
// restrict results to currently adoptable animals
type ListerPort interface {
	Animals(ctx context.Context, page, limit int, params map[string][]string) (Page, error)
	Animal(ctx context.Context, id int64) (Candidate, error)
}
