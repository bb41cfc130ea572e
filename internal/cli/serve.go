package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cartesian/pkg/buildinfo"
	"github.com/matzehuels/cartesian/pkg/chart/layers"
	"github.com/matzehuels/cartesian/pkg/chartfile"
	"github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/observability"
	"github.com/matzehuels/cartesian/pkg/pipeline"
)

const (
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 8 << 20
	shutdownTimeout = 10 * time.Second
)

type ctxKey struct{}

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		cache cacheFlags
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts and renders over HTTP",
		Long: `Start an HTTP API.

  POST /v1/layout   chart JSON + inline data, returns the negotiated frame
  POST /v1/render   same body, returns SVG
  GET  /healthz     build information`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newServer(runner, c.Logger).routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			printSuccess("Listening on %s", StyleHighlight.Render(addr))

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			c.Logger.Info("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(sctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cache.register(cmd)
	return cmd
}

// server handles API requests with a shared runner.
type server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

func newServer(r *pipeline.Runner, logger *log.Logger) *server {
	return &server{runner: r, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleChart(pipeline.FormatJSON, "application/json"))
		r.Post("/render", s.handleChart(pipeline.FormatSVG, "image/svg+xml"))
	})
	return r
}

// requestID tags each request with an ID and reports it to the HTTP hooks.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), ctxKey{}, id)

		hooks := observability.HTTP()
		hooks.OnRequest(ctx, id, r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))
		hooks.OnResponse(ctx, id, r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

// chartRequest is a chart definition with one data document per layer.
type chartRequest struct {
	pipeline.Options
	Data []json.RawMessage `json:"data"`
}

func (s *server) handleChart(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := decodeChartRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Formats = []string{format}
		if format == pipeline.FormatJSON {
			opts.Marks = true
		}
		opts.Logger = s.logger.With("request_id", requestIDFrom(r.Context()))

		res, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.RenderHit))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Artifacts[format])
	}
}

func decodeChartRequest(body io.Reader) (pipeline.Options, error) {
	var req chartRequest
	dec := json.NewDecoder(body)
	if err := dec.Decode(&req); err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	opts := req.Options
	if opts.Chart == nil {
		return opts, errors.New(errors.ErrCodeInvalidInput, "chart is required")
	}
	if len(req.Data) != len(opts.Chart.Layers) {
		return opts, errors.New(errors.ErrCodeInvalidInput, "got data for %d layers, chart has %d", len(req.Data), len(opts.Chart.Layers))
	}
	opts.Sources = make([]chartfile.Source, len(req.Data))
	for i, raw := range req.Data {
		t, err := layers.ParseChartType(opts.Chart.Layers[i].Type)
		if err != nil {
			return opts, err
		}
		d, err := chartfile.ReadJSON(bytes.NewReader(raw))
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInvalidData
			}
			return opts, errors.Wrap(code, err, "layer %d", i+1)
		}
		opts.Sources[i] = chartfile.Source{Type: t, Data: d}
	}
	return opts, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// errorBody is the JSON error response.
type errorBody struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id"`
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	id := requestIDFrom(r.Context())
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := code.HTTPStatus()
	observability.HTTP().OnError(r.Context(), id, r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", id, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("bad request", "request_id", id, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err), RequestID: id})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintln(w)
	}
}
