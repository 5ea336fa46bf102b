package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/asciigraph/pkg/buildinfo"
	"github.com/matzehuels/asciigraph/pkg/chart"
	"github.com/matzehuels/asciigraph/pkg/pipeline"
)

// memCache is a minimal in-memory cache.Cache.
type memCache struct{ data map[string][]byte }

func (c *memCache) Get(_ context.Context, k string) ([]byte, bool, error) {
	d, ok := c.data[k]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, k string, d []byte, _ time.Duration) error {
	c.data[k] = d
	return nil
}

func (c *memCache) Delete(_ context.Context, k string) error { delete(c.data, k); return nil }
func (c *memCache) Close() error                             { return nil }

func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{})
	runner := pipeline.NewRunner(&memCache{data: map[string][]byte{}}, nil, logger)
	return New(runner, logger), &logs
}

const fruitBody = `{
  "dataset": {"title": "Fruit", "points": [
    {"label": "apples", "value": 5},
    {"label": "pears", "value": 3, "colour": "green"}
  ]},
  "options": {"height": 6, "range": "zero-max"}
}`

func post(t *testing.T, h http.Handler, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/render", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRender(t *testing.T) {
	s, _ := newTestServer(t)

	rec := post(t, s.Handler(), fruitBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("X-Cache") != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", rec.Header().Get("X-Cache"))
	}

	ds := chart.Dataset{Title: "Fruit", Points: []chart.DataPoint{
		{Label: "apples", Value: 5},
		{Label: "pears", Value: 3},
	}}
	want, err := chart.RenderString(ds, chart.DefaultConfig().WithMaxHeight(6).WithYRange(chart.ZeroToMax()), chart.Bar)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Body.String() != want {
		t.Errorf("body:\n%s\nwant:\n%s", rec.Body.String(), want)
	}

	rec = post(t, s.Handler(), fruitBody)
	if rec.Header().Get("X-Cache") != "HIT" {
		t.Errorf("second request X-Cache = %q, want HIT", rec.Header().Get("X-Cache"))
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed", `{"dataset":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", `{"dataset":{"points":[]},"opts":{}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad colour", `{"dataset":{"points":[{"label":"a","value":1,"colour":"mauve"}]}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad label", `{"dataset":{"points":[{"label":"a\nb","value":1}]}}`, http.StatusBadRequest, "INVALID_LABEL"},
		{"bad range", `{"dataset":{"points":[{"label":"a","value":1}]},"options":{"range":"up"}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"no data", `{"dataset":{"points":[]}}`, http.StatusUnprocessableEntity, "NO_DATA"},
		{"narrow", `{"dataset":{"points":[{"label":"a","value":1}]},"options":{"width":20}}`, http.StatusUnprocessableEntity, "WIDTH_TOO_SMALL"},
		{"short", `{"dataset":{"points":[{"label":"a","value":1}]},"options":{"height":3}}`, http.StatusUnprocessableEntity, "HEIGHT_TOO_SMALL"},
		{"inverted", `{"dataset":{"points":[{"label":"a","value":1}]},"options":{"range":"5:1"}}`, http.StatusUnprocessableEntity, "INVERTED_CUSTOM_RANGE"},
		{"unsupported", `{"dataset":{"points":[{"label":"a","value":1}]},"options":{"type":"scatter-interpolated"}}`, http.StatusUnprocessableEntity, "UNSUPPORTED_GRAPH_TYPE"},
		{"too wide", `{"dataset":{"points":[{"label":"` + strings.Repeat("x", 60) + `","value":1}]},"options":{"width":40}}`, http.StatusUnprocessableEntity, "COLUMN_TOO_WIDE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)
			rec := post(t, s.Handler(), tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if string(resp.Code) != tt.code {
				t.Errorf("code = %s, want %s", resp.Code, tt.code)
			}
			if resp.Message == "" {
				t.Error("message should not be empty")
			}
		})
	}
}

func TestRenderBodyLimit(t *testing.T) {
	s, _ := newTestServer(t)
	s.MaxBodyBytes = 16
	rec := post(t, s.Handler(), fruitBody)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	s, logs := newTestServer(t)

	rec := post(t, s.Handler(), fruitBody, RequestIDHeader, "req-42")
	if got := rec.Header().Get(RequestIDHeader); got != "req-42" {
		t.Errorf("echoed ID = %q, want req-42", got)
	}
	if !strings.Contains(logs.String(), "req-42") {
		t.Errorf("log should carry request id:\n%s", logs.String())
	}

	rec = post(t, s.Handler(), fruitBody)
	if got := rec.Header().Get(RequestIDHeader); len(got) != 36 {
		t.Errorf("generated ID = %q, want a UUID", got)
	}
}

func TestHealthAndVersion(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	var info buildinfo.Info
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode version: %v", err)
	}
	if info != buildinfo.Get() {
		t.Errorf("version = %+v, want %+v", info, buildinfo.Get())
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/render", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/render = %d, want 405", rec.Code)
	}
}

func TestServeShutdown(t *testing.T) {
	s, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok\n" {
		t.Errorf("body = %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
