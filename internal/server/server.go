// Package server hosts the GutWise HTTP API: the health endpoint, Prometheus
// metrics, Swagger UI, and the routes contributed by handler packages.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	_ "github.com/HerbHall/gutwise/internal/apidocs" // registers the Swagger document
	"github.com/HerbHall/gutwise/internal/version"
)

// HealthMessage is returned by GET /api/.
const HealthMessage = "GutWise Recipe API - Helping heal one recipe at a time"

// RouteRegistrar is implemented by handler packages that expose routes.
type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures a Server.
type Options struct {
	Addr            string
	AllowedOrigins  []string
	RateLimit       float64 // requests per second; 0 disables limiting
	RateBurst       int
	ShutdownTimeout time.Duration
}

// Server is the GutWise HTTP server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	limiter    *rate.Limiter
	db         Pinger
	timeout    time.Duration
}

// New creates a Server and mounts the core routes plus those of each
// registrar. db may be nil.
func New(opts Options, db Pinger, logger *zap.Logger, registrars ...RouteRegistrar) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		logger:  logger,
		mux:     http.NewServeMux(),
		db:      db,
		timeout: opts.ShutdownTimeout,
	}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = int(opts.RateLimit)
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	s.registerCoreRoutes()
	for _, reg := range registrars {
		reg.RegisterRoutes(s.mux)
	}

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.corsHandler(opts.AllowedOrigins).Handler(s.withMiddleware(s.mux)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) corsHandler(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Total-Count", "X-GutWise-Version"},
		AllowCredentials: false,
	})
}

// registerCoreRoutes sets up routes that are always available.
func (s *Server) registerCoreRoutes() {
	s.mux.HandleFunc("GET /api/{$}", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.Handle("GET /api/docs/", httpSwagger.Handler(httpSwagger.URL("/api/docs/doc.json")))
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Run serves until ctx is canceled, then shuts down within the configured
// timeout.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(s.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// HealthResponse is the body of GET /api/.
// @Description API health and build information.
type HealthResponse struct {
	Message string            `json:"message" example:"GutWise Recipe API - Helping heal one recipe at a time"`
	Status  string            `json:"status" example:"ok"`
	Version map[string]string `json:"version"`
}

// handleHealth reports API health.
//
//	@Summary		Health check
//	@Description	Report API status and build information.
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse	"Database unreachable"
//	@Router			/ [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Message: HealthMessage, Status: "ok", Version: version.Map()}
	status := http.StatusOK
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			s.logger.Error("health check: database unreachable", zap.Error(err))
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}
	w.Header().Set("X-GutWise-Version", version.Short())
	WriteJSON(w, status, resp)
}
