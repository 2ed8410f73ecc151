package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/hierletters/pkg/cache"
	"github.com/matzehuels/hierletters/pkg/config"
	"github.com/matzehuels/hierletters/pkg/errors"
	"github.com/matzehuels/hierletters/pkg/observability"
	"github.com/matzehuels/hierletters/pkg/pipeline"
)

func newTestServer(t *testing.T, c cache.Cache) http.Handler {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s, err := newServer(pipeline.NewRunner(c, logger), config.Default(), logger)
	if err != nil {
		t.Fatalf("newServer() error: %v", err)
	}
	return s.routes()
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServeRender(t *testing.T) {
	h := newTestServer(t, nil)

	rec := get(h, "/render/A/E.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if got := rec.Header().Get(headerCache); got != "MISS" {
		t.Errorf("%s = %q, want MISS", headerCache, got)
	}

	img, err := imaging.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds().Size(); got.X != 190 || got.Y != 250 {
		t.Errorf("image size = %v, want 190x250", got)
	}
}

func TestServeRenderQuery(t *testing.T) {
	h := newTestServer(t, nil)

	rec := get(h, "/render/h/s.jpg?scale=2&seed=9")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q, want image/jpeg", ct)
	}
	img, err := imaging.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds().Size(); got.X != 380 || got.Y != 500 {
		t.Errorf("image size = %v, want 380x500", got)
	}
}

func TestServeRenderDefaultFormat(t *testing.T) {
	h := newTestServer(t, nil)

	rec := get(h, "/render/All/Random")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
}

func TestServeRenderCached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	h := newTestServer(t, fc)

	first := get(h, "/render/O/X.png")
	second := get(h, "/render/O/X.png")
	if first.Header().Get(headerCache) != "MISS" || second.Header().Get(headerCache) != "HIT" {
		t.Errorf("cache headers = %q, %q; want MISS, HIT",
			first.Header().Get(headerCache), second.Header().Get(headerCache))
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached response should match the rendered one")
	}
}

func TestServeRenderErrors(t *testing.T) {
	h := newTestServer(t, nil)

	tests := []struct {
		target string
		code   errors.Code
	}{
		{"/render/A/E.webp", errors.ErrCodeInvalidFormat},
		{"/render/A/E.png?scale=0", errors.ErrCodeInvalidInput},
		{"/render/A/E.png?scale=big", errors.ErrCodeInvalidInput},
		{"/render/A/E.png?seed=-1", errors.ErrCodeInvalidInput},
		{"/render/A/" + strings.Repeat("x", 40) + ".png", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(h, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body = %s", rec.Code, rec.Body)
			}
			var resp errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
		})
	}
}

func TestServeLetters(t *testing.T) {
	h := newTestServer(t, nil)

	rec := get(h, "/letters")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var infos []letterInfo
	if err := json.NewDecoder(rec.Body).Decode(&infos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(infos) != 18 {
		t.Errorf("letters = %d entries, want 18", len(infos))
	}
}

func TestServeMask(t *testing.T) {
	h := newTestServer(t, nil)

	rec := get(h, "/mask/L")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := "#....\n#....\n#....\n#....\n#####\n"
	if rec.Body.String() != want {
		t.Errorf("mask L = %q, want %q", rec.Body.String(), want)
	}
	if rec.Header().Get("X-Diagnostic") != "" {
		t.Error("known letter should not carry a diagnostic")
	}

	rec = get(h, "/mask/Q")
	if rec.Header().Get("X-Diagnostic") != string(errors.ErrCodeUnknownLetter) {
		t.Errorf("X-Diagnostic = %q, want %s", rec.Header().Get("X-Diagnostic"), errors.ErrCodeUnknownLetter)
	}
	if strings.Count(rec.Body.String(), "#") != 25 {
		t.Errorf("unknown letter should fill the grid, got %q", rec.Body.String())
	}
}

func TestServeVersionAndHealth(t *testing.T) {
	h := newTestServer(t, nil)

	if rec := get(h, "/healthz"); rec.Code != http.StatusOK {
		t.Errorf("/healthz status = %d", rec.Code)
	}

	rec := get(h, "/version")
	var info map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info["version"] == "" || info["go_version"] == "" {
		t.Errorf("version info = %v", info)
	}
}

func TestServeRequestID(t *testing.T) {
	h := newTestServer(t, nil)

	rec := get(h, "/healthz")
	if id := rec.Header().Get(headerRequestID); len(id) != 36 {
		t.Errorf("generated request ID = %q, want a UUID", id)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(headerRequestID, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if id := rec.Header().Get(headerRequestID); id != "abc-123" {
		t.Errorf("request ID = %q, want the client's", id)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	responses []string
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, method, path string, status int, _ time.Duration) {
	h.responses = append(h.responses, fmt.Sprintf("%s %s %d", method, path, status))
}

func TestServeReportsResponses(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	h := newTestServer(t, nil)
	get(h, "/letters")
	get(h, "/render/A/E.webp")
	get(h, "/nope")

	want := []string{"GET /letters 200", "GET /render/A/E.webp 400", "GET /nope 404"}
	if strings.Join(hooks.responses, "|") != strings.Join(want, "|") {
		t.Errorf("responses = %v, want %v", hooks.responses, want)
	}
}

func TestNewServerMisfitLayout(t *testing.T) {
	cfg := config.Default()
	cfg.Layout = config.Layout{Columns: 5, Rows: 8}

	_, err := newServer(pipeline.NewRunner(nil, nil), cfg, log.Default())
	if !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("newServer() error = %v, want %s", err, errors.ErrCodeInvalidLayout)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidFormat, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{fmt.Errorf("render: %w", context.Canceled), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		if got := httpStatus(tt.err); got != tt.want {
			t.Errorf("httpStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestDisplayURL(t *testing.T) {
	if got := displayURL(":8080"); got != "http://localhost:8080" {
		t.Errorf("displayURL(:8080) = %q", got)
	}
	if got := displayURL("0.0.0.0:9000"); got != "http://0.0.0.0:9000" {
		t.Errorf("displayURL(0.0.0.0:9000) = %q", got)
	}
}
