package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stemloop/pkg/buildinfo"
	"github.com/matzehuels/stemloop/pkg/drawing"
	errs "github.com/matzehuels/stemloop/pkg/errors"
	"github.com/matzehuels/stemloop/pkg/observability"
	"github.com/matzehuels/stemloop/pkg/pipeline"
)

const (
	requestIDHeader = "X-Request-ID"
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// contentTypes maps output formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatYAML: "application/yaml",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// serveCommand creates the serve command, which exposes the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render pipeline over HTTP",
		Long: `Serve the layout and render pipeline over HTTP.

Endpoints:
  POST /api/v1/layout   pipeline options as JSON; returns the drawing document
  POST /api/v1/render   pipeline options plus "format"; returns the artifact
  GET  /healthz         liveness check

Every response carries an X-Request-ID header. A valid UUID sent by the
client is echoed back; otherwise one is generated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe listens until ctx is cancelled, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	observability.SetServerHooks(serverLogHooks{c.Logger})
	srv := &http.Server{
		Addr:         addr,
		Handler:      newServer(runner, c.Logger, cfg.Server.MaxBodyBytes).routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("Server listening", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	c.Logger.Info("Server stopped")
	return nil
}

// =============================================================================
// Server
// =============================================================================

type server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
}

func newServer(runner *pipeline.Runner, logger *log.Logger, maxBody int64) *server {
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &server{runner: runner, logger: logger, maxBody: maxBody}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})
	return r
}

// renderRequest is the body of POST /api/v1/render.
type renderRequest struct {
	pipeline.Options
	Format string `json:"format"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := s.decode(w, r, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	t, err := s.runner.Parse(ctx, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, hit, err := s.runner.ComputeLayoutWithCacheInfo(ctx, t, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := drawing.Marshal(d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCacheHeader(w, hit)
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	_, _ = w.Write(data)
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	format := req.Format
	if format == "" && len(req.Formats) > 0 {
		format = req.Formats[0]
	}
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := req.Options
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCacheHeader(w, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)
	w.Header().Set("Content-Type", contentTypes[format])
	_, _ = w.Write(res.Artifacts[format])
}

// decode reads a size-limited JSON body into v.
func (s *server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id"`
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "request_id", requestIDFrom(r.Context()), "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     errs.UserMessage(err),
		Code:      string(errs.GetCode(err)),
		RequestID: requestIDFrom(r.Context()),
	})
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeNotFound:
		return http.StatusNotFound
	case errs.ErrCodeGeometry:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errs.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	if errs.ExitCode(err) == 2 {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// =============================================================================
// Middleware
// =============================================================================

type requestIDKey struct{}

// requestID tags each request with a UUID, reusing a valid client-supplied one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// observe reports each request to the server hooks.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		id := requestIDFrom(r.Context())
		hooks.OnRequest(r.Context(), id, r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), id, r.Method, r.URL.Path, status, time.Since(start))
	})
}

// serverLogHooks logs one line per response.
type serverLogHooks struct{ logger *log.Logger }

func (h serverLogHooks) OnRequest(_ context.Context, id, method, path string) {
	h.logger.Debug("request", "id", id, "method", method, "path", path)
}

func (h serverLogHooks) OnResponse(_ context.Context, id, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "id", id, "method", method, "path", path, "status", status, "duration", d.Round(time.Microsecond))
}
