package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/funcroute/logger"
	"github.com/kbukum/funcroute/observability"
	"github.com/kbukum/funcroute/server/endpoint"
	"github.com/kbukum/funcroute/server/middleware"
)

// Server serves a gin engine and any number of plain http.Handler mounts on
// one port. Gin is the fallback handler of the root ServeMux; the whole mux
// is wrapped by h2c so HTTP/2 cleartext clients are accepted too.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	mux        *http.ServeMux
	h2s        *http2.Server
	config     Config
	log        *logger.Logger

	mu       sync.RWMutex
	boundTo  string
	handlers []middleware.Middleware
}

// New creates a Server. No middleware is applied until ApplyMiddleware or
// Use is called.
func New(cfg Config, log *logger.Logger) *Server {
	if log.Zerolog().GetLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	mux := http.NewServeMux()
	mux.Handle("/", engine)

	s := &Server{
		engine: engine,
		mux:    mux,
		h2s: &http2.Server{
			MaxConcurrentStreams: 250,
			IdleTimeout:          120 * time.Second,
		},
		config: cfg,
		log:    log.WithComponent("server"),
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.buildHandler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) buildHandler() http.Handler {
	return h2c.NewHandler(middleware.Chain(s.handlers...)(s.mux), s.h2s)
}

// Engine returns the gin engine for route registration.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Handler returns the root handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Handle mounts an http.Handler on the root ServeMux next to gin. Use a
// trailing slash for subtree patterns, e.g. "/std/".
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
	s.log.Debug("Handler mounted", map[string]any{
		"pattern": pattern,
	})
}

// Use appends server-level middleware. It wraps gin and every mounted
// handler and must be called before Start.
func (s *Server) Use(mws ...middleware.Middleware) {
	s.handlers = append(s.handlers, mws...)
	s.httpServer.Handler = s.buildHandler()
}

// ApplyMiddleware installs the standard stack, outermost first: recovery,
// request ID, request logging, CORS and the body size limit.
func (s *Server) ApplyMiddleware() {
	s.Use(
		middleware.Recovery(s.log),
		middleware.RequestID(),
		middleware.RequestLogger(s.log),
		middleware.CORS(s.config.CORS),
		middleware.BodySizeLimit(s.config.MaxBodySize),
	)
}

// RegisterDefaultEndpoints registers /health, /info and /version on gin.
func (s *Server) RegisterDefaultEndpoints(serviceName string, checks ...observability.HealthChecker) {
	s.engine.GET("/health", endpoint.Health(serviceName, checks...))
	s.engine.GET("/info", endpoint.Info(serviceName))
	s.engine.GET("/version", endpoint.Version())
}

// Start binds the port and serves in the background. It returns once the
// listener is bound, so the port is ready when Start returns nil.
func (s *Server) Start(ctx context.Context) error {
	listener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	s.mu.Lock()
	s.boundTo = listener.Addr().String()
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Server error", map[string]any{
				logger.FieldError: err.Error(),
			})
		}
	}()

	s.log.Info("HTTP server started", map[string]any{
		"addr": s.Addr(),
	})
	return nil
}

// Stop gracefully shuts down the server. In-flight requests get
// Config.ShutdownTimeout to finish; zero waits as long as ctx allows.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	shutdownCtx := ctx
	if s.config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server shutdown error", map[string]any{
			logger.FieldError: err.Error(),
		})
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the bound address once started, the configured one before.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.boundTo != "" {
		return s.boundTo
	}
	return s.httpServer.Addr
}
