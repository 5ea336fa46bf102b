package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/asciigraph/pkg/buildinfo"
)

// DefaultMaxBytes caps the size of a fetched body.
const DefaultMaxBytes = 32 << 20

// ErrNotFound is returned for a 404 response.
var ErrNotFound = errors.New("remote dataset not found")

// StatusError reports an unexpected HTTP status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.Code)
}

// Fetcher downloads remote datasets.
type Fetcher struct {
	Client   *http.Client
	Cache    *Cache // nil disables caching
	MaxBytes int64
	Attempts int
}

// NewFetcher returns a Fetcher with a 30 second client timeout. store may
// be nil.
func NewFetcher(store *Cache) *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Cache:    store,
		MaxBytes: DefaultMaxBytes,
		Attempts: 3,
	}
}

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch returns the body at rawURL. A fresh cached copy is used unless
// refresh is set. The returned bool reports a cache hit.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, refresh bool) (*Entry, bool, error) {
	if f.Cache != nil && !refresh {
		if e, err := f.Cache.Get(rawURL); err == nil && e != nil {
			return e, true, nil
		}
	}

	var entry *Entry
	err := Retry(ctx, f.Attempts, retryDelay, func() error {
		e, err := f.get(ctx, rawURL)
		entry = e
		return err
	})
	if err != nil {
		return nil, false, err
	}

	if f.Cache != nil {
		// A failed write only costs a refetch next time.
		_ = f.Cache.Set(rawURL, entry)
	}
	return entry, false, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (*Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "asciigraph/"+buildinfo.Version)
	req.Header.Set("Accept", "application/json, text/csv, application/yaml, application/toml, */*;q=0.5")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(rawURL, resp.StatusCode); err != nil {
		return nil, err
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("GET %s: body exceeds %d bytes", rawURL, limit)
	}

	return &Entry{
		URL:         rawURL,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
		FetchedAt:   time.Now().UTC(),
	}, nil
}

func checkStatus(rawURL string, code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, rawURL)
	case code == http.StatusTooManyRequests || code >= 500:
		return &RetryableError{Err: &StatusError{URL: rawURL, Code: code}}
	default:
		return &StatusError{URL: rawURL, Code: code}
	}
}

// FormatHint maps a Content-Type to a dataset format name, or "" when the
// type says nothing useful.
func FormatHint(contentType string) string {
	mt, _, _ := strings.Cut(strings.ToLower(contentType), ";")
	switch strings.TrimSpace(mt) {
	case "application/json", "text/json":
		return "json"
	case "text/csv", "application/csv":
		return "csv"
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return "yaml"
	case "application/toml", "text/toml":
		return "toml"
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return "xlsx"
	}
	return ""
}
