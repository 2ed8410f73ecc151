package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hierletters/pkg/buildinfo"
	"github.com/matzehuels/hierletters/pkg/config"
	"github.com/matzehuels/hierletters/pkg/core/compose"
	"github.com/matzehuels/hierletters/pkg/core/letter"
	"github.com/matzehuels/hierletters/pkg/errors"
	hio "github.com/matzehuels/hierletters/pkg/io"
	"github.com/matzehuels/hierletters/pkg/observability"
	"github.com/matzehuels/hierletters/pkg/pipeline"
)

const (
	headerRequestID = "X-Request-ID"
	headerCache     = "X-Cache"

	shutdownTimeout = 5 * time.Second
)

// serveFlags holds flags for the serve command.
type serveFlags struct {
	params  paramFlags
	addr    string
	noCache bool
}

// serveCommand creates the serve command exposing rendering over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve hierarchical letters over HTTP",
		Long: `Start an HTTP server that renders composites on request.

Endpoints:
  GET /render/{macro}/{micro}.{ext}   encoded composite (?scale=N&seed=N)
  GET /mask/{letter}                  tile mask as text
  GET /letters                        letter catalog as JSON
  GET /version                        build information as JSON
  GET /healthz                        liveness probe`,
		Example: `  hierletters serve
  hierletters serve --addr :9000 --layout 7x9
  curl -o A-E.png localhost:8080/render/A/E.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := flags.params.apply(cmd, &cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = flags.addr
			}
			return c.runServe(cmd.Context(), cfg, flags.noCache)
		},
	}

	flags.params.register(cmd)
	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config, noCache bool) error {
	runner, err := c.newRunner(ctx, cfg.Cache, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	s, err := newServer(runner, cfg, c.Logger)
	if err != nil {
		return err
	}

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetHTTPHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	printSuccess("Listening on %s", StyleLink.Render(displayURL(cfg.Server.Addr)))
	printDetail("Layout %dx%d · tile %dx%d · composite %dx%d",
		cfg.Layout.Columns, cfg.Layout.Rows,
		cfg.Small.Width, cfg.Small.Height,
		cfg.Large.Width, cfg.Large.Height)

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	printInfo("Server stopped")
	return nil
}

// displayURL turns a listen address into a browsable URL.
func displayURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

// =============================================================================
// Server
// =============================================================================

// server renders composites for HTTP requests with a shared runner.
type server struct {
	runner *pipeline.Runner
	cfg    config.Config
	params compose.Params
	format hio.Format
	logger *log.Logger
}

// newServer checks cfg once so misfit layouts fail at startup instead of on
// every request.
func newServer(runner *pipeline.Runner, cfg config.Config, logger *log.Logger) (*server, error) {
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	if _, err := compose.New(params); err != nil {
		return nil, err
	}
	format, err := cfg.Format()
	if err != nil {
		return nil, err
	}
	return &server{runner: runner, cfg: cfg, params: params, format: format, logger: logger}, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, buildinfo.Get())
	})
	r.Get("/letters", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog())
	})
	r.Get("/mask/{letter}", s.handleMask)
	r.Get("/render/{macro}/{file}", s.handleRender)

	return r
}

// requestID tags each request with an ID and a request-scoped logger.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		ctx := withLogger(r.Context(), s.logger.With("req", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// observe reports requests and responses to the HTTP hooks.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		start := time.Now()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	macro := letter.Parse(chi.URLParam(r, "macro"))
	micro, format, err := s.splitFile(chi.URLParam(r, "file"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Params:   s.params,
		Macros:   []letter.Symbol{macro},
		Micros:   []letter.Symbol{micro},
		Format:   format,
		Scale:    s.cfg.Output.Scale,
		Seed:     s.cfg.Seed,
		CacheTTL: s.cfg.Cache.TTL,
	}
	q := r.URL.Query()
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = strconv.Atoi(v); err != nil || opts.Scale < 1 || opts.Scale > 16 {
			writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "scale must be an integer in [1, 16], got %q", v))
			return
		}
	}
	if v := q.Get("seed"); v != "" {
		if opts.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "seed must be an unsigned integer, got %q", v))
			return
		}
	}

	pair := pipeline.Pair{Macro: macro, Micro: micro}
	data, cached, err := s.runner.RenderPair(r.Context(), opts, pair)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cacheStatus := "MISS"
	if cached {
		cacheStatus = "HIT"
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set(headerCache, cacheStatus)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// splitFile parses "{micro}.{ext}". A missing extension uses the configured
// format.
func (s *server) splitFile(file string) (letter.Symbol, hio.Format, error) {
	name, format := file, s.format
	if i := strings.LastIndexByte(file, '.'); i > 0 {
		f, err := hio.ParseFormat(file[i+1:])
		if err != nil {
			return "", "", err
		}
		name, format = file[:i], f
	}
	sym := letter.Parse(name)
	if err := errors.ValidateSymbol(string(sym)); err != nil {
		return "", "", err
	}
	return sym, format, nil
}

func (s *server) handleMask(w http.ResponseWriter, r *http.Request) {
	sym := letter.Parse(chi.URLParam(r, "letter"))
	if err := errors.ValidateSymbol(string(sym)); err != nil {
		writeError(w, r, err)
		return
	}
	mask := letterMask(sym, s.cfg)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if !sym.Known() {
		w.Header().Set("X-Diagnostic", string(errors.ErrCodeUnknownLetter))
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, mask.String())
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatus(err)
	if status >= http.StatusInternalServerError {
		loggerFromContext(r.Context()).Error("Request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}

// httpStatus maps error codes to HTTP status codes.
func httpStatus(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidLayout,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
