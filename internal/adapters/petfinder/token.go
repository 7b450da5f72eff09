package petfinder

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	perr "pawmatch/internal/platform/errors"
)

// safetyMargin is shaved off the issued lifetime so a token is never
// presented to the upstream moments before it dies mid-request
const safetyMargin = 300 * time.Second

// credential is an immutable snapshot; the source replaces it wholesale
// on refresh so readers never observe a partial write
type credential struct {
	value     string
	expiresAt time.Time
}

func (c credential) live(now time.Time) bool {
	return c.value != "" && now.Before(c.expiresAt)
}

// tokenSource owns the single cached client-credentials token.
// Concurrent callers during a refresh serialize on the mutex and the
// second one re-checks before exchanging, so one refresh wins
type tokenSource struct {
	mu   sync.Mutex
	cur  credential
	http *http.Client
	url  string
	id   string
	sec  string
	now  func() time.Time
}

func newTokenSource(h *http.Client, baseURL, id, secret string, now func() time.Time) *tokenSource {
	return &tokenSource{
		http: h,
		url:  baseURL + "/oauth2/token",
		id:   id,
		sec:  secret,
		now:  now,
	}
}

// Token returns a bearer value valid for at least the safety margin,
// exchanging credentials with the upstream only when the cache is stale
func (t *tokenSource) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cur.live(t.now()) {
		return t.cur.value, nil
	}

	cred, err := t.exchange(ctx)
	if err != nil {
		return "", err
	}
	t.cur = cred
	return cred.value, nil
}

// invalidate drops the cached token so the next call re-exchanges
func (t *tokenSource) invalidate() {
	t.mu.Lock()
	t.cur = credential{}
	t.mu.Unlock()
}

func (t *tokenSource) exchange(ctx context.Context) (credential, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", t.id)
	form.Set("client_secret", t.sec)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, strings.NewReader(form.Encode()))
	if err != nil {
		return credential{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "token request build failed")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := t.now()
	resp, err := t.http.Do(req)
	if err != nil {
		return credential{}, perr.Wrapf(err, perr.ErrorCodeUpstreamAuth, "token exchange failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return credential{}, perr.AuthErrf("token exchange status %d body %s", resp.StatusCode, string(body))
	}

	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return credential{}, perr.Wrapf(err, perr.ErrorCodeUpstreamAuth, "token body read failed")
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return credential{}, perr.Wrapf(err, perr.ErrorCodeUpstreamAuth, "token body decode failed")
	}
	if out.AccessToken == "" {
		return credential{}, perr.AuthErrf("token exchange returned empty access_token")
	}

	return credential{
		value:     out.AccessToken,
		expiresAt: start.Add(time.Duration(out.ExpiresIn)*time.Second - safetyMargin),
	}, nil
}
