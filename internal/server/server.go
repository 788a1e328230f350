// Package server is the HTTP display surface: a static page, a one-shot
// render endpoint and a live WebSocket session per browser.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/example/go-tokviz/internal/config"
	"github.com/example/go-tokviz/internal/render"
	"github.com/example/go-tokviz/internal/tokenizer"
	"github.com/example/go-tokviz/internal/viewmode"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxTextBytes int
	defaultMode  viewmode.Mode
	engine       string
	logger       *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextBytes: 1 << 20,
		defaultMode:  viewmode.Pieces,
		logger:       slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxTextBytes caps the text accepted by POST /render and by session
// input frames. Zero or less disables the cap.
func WithMaxTextBytes(n int) Option {
	return func(o *options) { o.maxTextBytes = n }
}

// WithDefaultMode sets the mode for new sessions and for render requests
// that omit one.
func WithDefaultMode(m viewmode.Mode) Option {
	return func(o *options) { o.defaultMode = m }
}

// WithEngineName sets the engine reported by /health.
func WithEngineName(name string) Option {
	return func(o *options) { o.engine = name }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

type handler struct {
	tok  tokenizer.Tokenizer
	opts options
	log  *slog.Logger
}

// NewHandler returns an http.Handler that serves /, /health, POST /render
// and the /ws session endpoint.
func NewHandler(tok tokenizer.Tokenizer, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		tok:  tok,
		opts: opts,
		log:  opts.logger,
	}

	mux := http.NewServeMux()
	mux.Handle("/", staticHandler())
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/render", h.handleRender)
	mux.HandleFunc("/ws", h.handleSession)
	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
		"engine":  h.opts.engine,
	})
}

type renderRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

func (h *handler) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	mode := h.opts.defaultMode
	if req.Mode != "" {
		m, err := viewmode.ParseMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		mode = m
	}

	if h.tooLarge(req.Text) {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("text exceeds maximum size of %d bytes", h.opts.maxTextBytes))
		return
	}

	start := time.Now()
	out, err := render.Render(req.Text, mode, h.tok)
	durationMS := time.Since(start).Milliseconds()

	if err != nil {
		h.log.WarnContext(r.Context(), "render failed",
			slog.String("mode", mode.String()),
			slog.Int("text_len", len(req.Text)),
			slog.Int64("duration_ms", durationMS),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.log.InfoContext(r.Context(), "render complete",
		slog.String("mode", mode.String()),
		slog.Int("text_len", len(req.Text)),
		slog.Int64("duration_ms", durationMS),
		slog.Int("output_size", out.Size()),
	)

	writeJSON(w, http.StatusOK, out)
}

func (h *handler) tooLarge(text string) bool {
	return h.opts.maxTextBytes > 0 && len(text) > h.opts.maxTextBytes
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server: wires handler into net/http.Server with graceful shutdown
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	tok             tokenizer.Tokenizer
	log             *slog.Logger
	shutdownTimeout time.Duration
}

// New returns a Server for cfg. tok is shared by every request and session.
func New(cfg config.Config, tok tokenizer.Tokenizer) *Server {
	return &Server{
		cfg:             cfg,
		tok:             tok,
		log:             slog.Default(),
		shutdownTimeout: time.Duration(cfg.Server.ShutdownTimeout) * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

// Start serves until ctx is cancelled. Cancelling ctx also ends every open
// session, since hijacked connections are not drained by Shutdown.
func (s *Server) Start(ctx context.Context) error {
	if s.tok == nil {
		return errors.New("server requires a tokenizer")
	}

	mode, err := viewmode.ParseMode(s.cfg.View.DefaultMode)
	if err != nil {
		return fmt.Errorf("view.default_mode: %w", err)
	}

	engine, err := config.NormalizeEngine(s.cfg.Tokenizer.Engine)
	if err != nil {
		return err
	}

	h := NewHandler(s.tok,
		WithMaxTextBytes(s.cfg.Server.MaxTextBytes),
		WithDefaultMode(mode),
		WithEngineName(engine),
		WithLogger(s.log),
	)

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.log.Info("listening",
		slog.String("addr", s.cfg.Server.ListenAddr),
		slog.String("engine", engine),
		slog.String("default_mode", mode.String()),
	)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

// ProbeHTTP checks that a server answers /health on addr.
func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}
	return nil
}
