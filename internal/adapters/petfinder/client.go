// Package petfinder is the upstream listing API client with a cached
// client-credentials token
package petfinder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	perr "pawmatch/internal/platform/errors"
	"pawmatch/internal/platform/logger"
	"pawmatch/internal/services/pets/domain"
)

const (
	baseURLDefault = "https://api.petfinder.com/v2"
	defaultTimeout = 10 * time.Second
	defaultUA      = "pawmatch-api"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	ClientID     string
	ClientSecret string

	// Now is injectable for token-expiry tests; defaults to time.Now
	Now func() time.Time
}

// Client issues paginated, filtered listing requests against the upstream.
// It always restricts results to adoptable animals and attaches a bearer
// token from the shared token source. Errors carry the upstream status
// internally; callers see them as upstream failures, not pass-throughs
type Client struct {
	http *http.Client
	opts Options
	tok  *tokenSource
	log  logger.Logger
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	h := &http.Client{Timeout: o.Timeout}
	return &Client{
		http: h,
		opts: o,
		tok:  newTokenSource(h, o.BaseURL, o.ClientID, o.ClientSecret, o.Now),
		log:  *logger.Named("petfinder"),
	}
}

// Ping verifies the upstream credential exchange works; used by readiness probes
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.tok.Token(ctx)
	return err
}

// Animals fetches one page of adoptable animals filtered by params.
// params must carry only remote-eligible predicates; the status filter
// is forced here and cannot be overridden by callers
func (c *Client) Animals(ctx context.Context, page, limit int, params map[string][]string) (domain.Page, error) {
	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("status", "adoptable")
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var out wireAnimalsPage
	if err := c.getJSON(ctx, "/animals?"+q.Encode(), &out); err != nil {
		return domain.Page{}, err
	}
	return out.toDomain(), nil
}

// Animal fetches a single animal by id
func (c *Client) Animal(ctx context.Context, id int64) (domain.Candidate, error) {
	var out wireAnimalEnvelope
	if err := c.getJSON(ctx, fmt.Sprintf("/animals/%d", id), &out); err != nil {
		return domain.Candidate{}, err
	}
	return out.Animal.toDomain(), nil
}

// getJSON acquires a token, issues one GET, and decodes the body.
// No automatic retry: transient upstream failures surface to the caller
// and the session layer decides whether to re-enter the same page
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	tok, err := c.tok.Token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+path, nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "petfinder new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)

	start := c.opts.Now()
	resp, err := c.http.Do(req)
	lat := c.opts.Now().Sub(start)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "petfinder do failed")
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("petfinder close body failed")
		}
	}()

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("petfinder http response")

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		// cached token rejected; drop it so the next call re-exchanges
		c.tok.invalidate()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return perr.Upstreamf(resp.StatusCode, "petfinder rejected token body %s", string(body))
	case http.StatusNotFound:
		return perr.Newf(perr.ErrorCodeNotFound, "petfinder resource not found")
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return perr.Upstreamf(resp.StatusCode, "petfinder status %d body %s", resp.StatusCode, string(body))
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "petfinder body read failed")
	}
	if err := json.Unmarshal(b, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "petfinder body decode failed")
	}
	return nil
}
