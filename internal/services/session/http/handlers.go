// Package http provides http transport for swipe sessions
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/google/uuid"

	"pawmatch/internal/modkit/httpkit"
	perr "pawmatch/internal/platform/errors"
	petsdom "pawmatch/internal/services/pets/domain"
	"pawmatch/internal/services/session/domain"
)

// CreateInput is the body for starting a session
type CreateInput struct {
	Filter petsdom.FilterSpec `json:"filter"`
}

// FilterInput is the body for replacing the active filter
type FilterInput struct {
	Filter petsdom.FilterSpec `json:"filter"`
}

// DecisionInput is the body for deciding the current candidate
type DecisionInput struct {
	CandidateID int64  `json:"candidate_id" validate:"required,min=1"`
	Decision    string `json:"decision" validate:"required,oneof=accept reject"`
}

// Register mounts session endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[CreateInput](r, "/", h.create)
	httpkit.PutJSON[FilterInput](r, "/{id}/filter", h.applyFilter)
	httpkit.Post(r, "/{id}/restart", h.restart)
	httpkit.Get(r, "/{id}/next", h.next)
	httpkit.PostJSON[DecisionInput](r, "/{id}/decisions", h.decide)
	httpkit.Get(r, "/{id}/favorites", h.favorites)
	httpkit.Delete(r, "/{id}/favorites/{candidateID}", h.removeFavorite)
}

type handlers struct{ svc domain.ServicePort }

func (h *handlers) create(r *stdhttp.Request, in CreateInput) (any, error) {
	snap, err := h.svc.Create(r.Context(), in.Filter)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(snap), nil
}

func (h *handlers) applyFilter(r *stdhttp.Request, in FilterInput) (any, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}
	return h.svc.ApplyFilter(r.Context(), id, in.Filter)
}

func (h *handlers) restart(r *stdhttp.Request) (any, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Restart(r.Context(), id)
}

func (h *handlers) next(r *stdhttp.Request) (any, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Next(r.Context(), id)
}

func (h *handlers) decide(r *stdhttp.Request, in DecisionInput) (any, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Decide(r.Context(), id, in.CandidateID, domain.Decision(in.Decision))
}

func (h *handlers) favorites(r *stdhttp.Request) (any, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Favorites(r.Context(), id)
}

func (h *handlers) removeFavorite(r *stdhttp.Request) (any, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}
	raw := httpkit.Param(r, "candidateID")
	cid, convErr := strconv.ParseInt(raw, 10, 64)
	if convErr != nil || cid <= 0 {
		return nil, perr.WithField(perr.Validationf("candidateID must be a positive integer"), "candidateID")
	}
	return h.svc.RemoveFavorite(r.Context(), id, cid)
}

func sessionID(r *stdhttp.Request) (uuid.UUID, error) {
	raw := httpkit.Param(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, perr.WithField(perr.Validationf("id must be a UUID"), "id")
	}
	return id, nil
}
