package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/jpl-au/glossd/internal/config"
	"github.com/jpl-au/glossd/internal/service"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// ServerOptions configure a Server.
type ServerOptions struct {
	Addr        string
	CORSOrigins []string
	Widget      Options
}

// OptionsFromConfig reads the server options from cfg.
func OptionsFromConfig(cfg *config.Config) ServerOptions {
	return ServerOptions{
		Addr:        cfg.Addr(),
		CORSOrigins: cfg.CORSOrigins(),
		Widget: Options{
			Title:   cfg.Title(),
			Colours: cfg.Colours(),
		},
	}
}

// Server wraps the widget in an HTTP server with request logging and CORS.
type Server struct {
	opts       ServerOptions
	httpServer *http.Server
	logger     *logrus.Logger
}

// NewServer builds a Server for svc. It does not listen until Start.
func NewServer(svc service.Service, opts ServerOptions, logger *logrus.Logger) *Server {
	return &Server{
		opts:   opts,
		logger: logger,
		httpServer: &http.Server{
			Addr:              opts.Addr,
			Handler:           Routes(svc, opts, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Routes returns the widget's handler tree: the widget at /, a health probe
// at /healthz, request logging and, when origins are configured, CORS.
func Routes(svc service.Service, opts ServerOptions, logger *logrus.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/{$}", NewHandler(svc, opts.Widget))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	var h http.Handler = mux
	if len(opts.CORSOrigins) > 0 {
		h = cors.New(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead},
		}).Handler(h)
	}
	return requestLogger(logger, h)
}

// Start listens and serves until Shutdown. It returns nil after a clean
// shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	s.logger.Infof("glossary widget listening on http://%s", ln.Addr())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewLogger builds the request logger. Format is "text" or "json".
func NewLogger(level, format string) (*logrus.Logger, error) {
	logger := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(lvl)
	switch format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func requestLogger(logger *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		fields := logrus.Fields{
			"method":         r.Method,
			"path":           r.URL.Path,
			"status":         rec.status,
			"duration":       time.Since(start),
			"response_bytes": rec.bytes,
			"header_count":   headerCount(r.Header),
		}
		appendField(fields, "query", r.URL.RawQuery)
		appendField(fields, "user_agent", r.UserAgent())
		appendField(fields, "request_id", r.Header.Get("X-Request-Id"))
		appendField(fields, "client_ip", firstForwardedFor(r.Header))
		appendField(fields, "origin", r.Header.Get("Origin"))

		entry := logger.WithFields(fields)
		switch {
		case rec.status >= 500:
			entry.Error("request completed")
		case rec.status >= 400:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	})
}

func appendField(fields logrus.Fields, key, value string) {
	if value == "" {
		return
	}
	fields[key] = value
}

func firstForwardedFor(header http.Header) string {
	forwarded := header.Get("X-Forwarded-For")
	if forwarded == "" {
		return ""
	}
	for _, part := range strings.Split(forwarded, ",") {
		if candidate := strings.TrimSpace(part); candidate != "" {
			return candidate
		}
	}
	return ""
}

func headerCount(header http.Header) int {
	count := 0
	for key := range header {
		count += len(header[key])
	}
	return count
}
