package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	tperrors "github.com/matzehuels/tinypnr/pkg/errors"
	"github.com/matzehuels/tinypnr/pkg/netlist"
	"github.com/matzehuels/tinypnr/pkg/pipeline"
)

// maxNetlistBytes caps request bodies; netlists at this scale are tiny.
const maxNetlistBytes = 4 << 20

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the place-and-route pipeline over HTTP",
		Long: `Run an HTTP API exposing the pipeline.

Endpoints:
  GET  /healthz     liveness probe
  POST /v1/extract  netlist text in, design JSON out
  POST /v1/run      netlist text (or options JSON) in, DEF text out

POST bodies are raw netlist text by default; with Content-Type
application/json the body is decoded as pipeline options, allowing die
geometry and header overrides per request.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	s := &server{cli: c, runner: runner, defaults: func() pipeline.Options {
		return pipeline.Options{
			DesignName: cfg.Design,
			Units:      cfg.Units,
			Die:        cfg.DiePlan(),
		}
	}}

	srv := &http.Server{Addr: addr, Handler: s.routes(), ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// =============================================================================
// Handlers
// =============================================================================

type server struct {
	cli      *CLI
	runner   *pipeline.Runner
	defaults func() pipeline.Options
}

// routes builds the chi router with all middleware and endpoints.
func (s *server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/extract", s.handleExtract)
	r.Post("/v1/run", s.handleRun)

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleExtract(w http.ResponseWriter, r *http.Request) {
	opts, err := s.readOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	d, _, err := s.runner.Extract(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = netlist.WriteDesign(d, w)
}

func (s *server) handleRun(w http.ResponseWriter, r *http.Request) {
	opts, err := s.readOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Run-ID", result.RunID)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, result.DEF)
}

// readOptions decodes the request into pipeline options. JSON bodies carry
// full options; anything else is treated as raw netlist text with the
// server's configured defaults.
func (s *server) readOptions(r *http.Request) (pipeline.Options, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxNetlistBytes))
	if err != nil {
		return pipeline.Options{}, tperrors.Wrap(tperrors.ErrCodeInvalidInput, err, "read request body")
	}

	opts := s.defaults()
	if r.Header.Get("Content-Type") == "application/json" {
		overrides := s.defaults()
		if err := json.Unmarshal(body, &overrides); err != nil {
			return pipeline.Options{}, tperrors.Wrap(tperrors.ErrCodeInvalidInput, err, "decode options")
		}
		opts = overrides
	} else {
		opts.Netlist = string(body)
	}

	if opts.Netlist == "" {
		return pipeline.Options{}, tperrors.New(tperrors.ErrCodeInvalidInput, "netlist text is required")
	}
	return opts, nil
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	code := tperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case tperrors.ErrCodeMalformedNetlist, tperrors.ErrCodeInvalidInput, tperrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case tperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		Code:      string(code),
		RequestID: uuid.NewString(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logRequests logs each request with its chi request ID and duration.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.cli.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}
