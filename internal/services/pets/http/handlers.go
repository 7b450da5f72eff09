// Package http provides http transport for pet browsing
package http

import (
	stdhttp "net/http"
	"strconv"
	"strings"

	"pawmatch/internal/modkit/httpkit"
	perr "pawmatch/internal/platform/errors"
	"pawmatch/internal/platform/net/http/bind"
	"pawmatch/internal/services/pets/domain"
)

// Register mounts pet browsing endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.browse)
	httpkit.Get(r, "/{id}", h.lookup)
}

type handlers struct{ svc domain.ServicePort }

func (h *handlers) browse(r *stdhttp.Request) (any, error) {
	in, err := parseBrowse(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Browse(r.Context(), in)
}

func (h *handlers) lookup(r *stdhttp.Request) (any, error) {
	raw := httpkit.Param(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, perr.WithField(perr.Validationf("id must be a positive integer"), "id")
	}
	return h.svc.Lookup(r.Context(), id)
}

// parseBrowse maps query parameters onto a BrowseInput and validates it
func parseBrowse(r *stdhttp.Request) (domain.BrowseInput, error) {
	q := r.URL.Query()
	var in domain.BrowseInput

	var err error
	if in.Page, err = queryInt(q.Get("page"), "page"); err != nil {
		return in, err
	}
	if in.Limit, err = queryInt(q.Get("limit"), "limit"); err != nil {
		return in, err
	}

	in.Filter.Type = q.Get("type")
	in.Filter.Breed = q.Get("breed")
	in.Filter.Age = q.Get("age")
	in.Filter.Size = q.Get("size")
	in.Filter.Gender = q.Get("gender")
	in.Filter.Location = q.Get("location")
	if in.Filter.Distance, err = queryInt(q.Get("distance"), "distance"); err != nil {
		return in, err
	}

	hasPhotos, err := queryTri(q.Get("hasPhotos"), "hasPhotos")
	if err != nil {
		return in, err
	}
	in.Filter.HasPhotos = hasPhotos == domain.Yes
	if in.Filter.GoodWithKids, err = queryTri(q.Get("goodWithKids"), "goodWithKids"); err != nil {
		return in, err
	}
	if in.Filter.GoodWithDogs, err = queryTri(q.Get("goodWithDogs"), "goodWithDogs"); err != nil {
		return in, err
	}
	if in.Filter.GoodWithCats, err = queryTri(q.Get("goodWithCats"), "goodWithCats"); err != nil {
		return in, err
	}

	if err := bind.Validate(in); err != nil {
		return in, err
	}
	return in, nil
}

func queryInt(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, perr.WithField(perr.Validationf("%s must be an integer", field), field)
	}
	return n, nil
}

// queryTri parses an optional boolean query param; absence means Unknown
func queryTri(raw, field string) (domain.TriState, error) {
	switch strings.ToLower(raw) {
	case "":
		return domain.Unknown, nil
	case "true", "1":
		return domain.Yes, nil
	case "false", "0":
		return domain.No, nil
	default:
		return domain.Unknown, perr.WithField(perr.Validationf("%s must be true or false", field), field)
	}
}
