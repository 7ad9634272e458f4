package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/growthcast/growthcast/internal/predictor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Config holds the server configuration
type Config struct {
	Host            string
	Port            int
	EnableMetrics   bool
	EnableCORS      bool
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            8501,
		EnableMetrics:   true,
		EnableCORS:      false,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Server serves the prediction form and its JSON API
type Server struct {
	config    *Config
	service   *predictor.Service
	metrics   *Metrics
	gatherer  prometheus.Gatherer
	server    *http.Server
	templates *template.Template
	upgrader  websocket.Upgrader
}

// New creates a server over an already loaded prediction service
func New(config *Config, service *predictor.Service) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if service == nil {
		return nil, fmt.Errorf("prediction service is required")
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		config:    config,
		service:   service,
		templates: templates,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return config.EnableCORS || sameOrigin(r)
			},
		},
	}, nil
}

// UseRegistry registers the server metrics with reg and serves reg on /metrics
func (s *Server) UseRegistry(reg *prometheus.Registry) {
	s.metrics = NewMetricsWithRegistry(reg)
	s.gatherer = reg
}

// initializeMetrics registers metrics with the default registry if none were set
func (s *Server) initializeMetrics() {
	if s.metrics == nil {
		s.metrics = NewMetrics()
		s.gatherer = prometheus.DefaultGatherer
	}
}

// Handler builds the router
func (s *Server) Handler() http.Handler {
	s.initializeMetrics()

	router := mux.NewRouter()
	router.Use(s.requestIDMiddleware)
	router.Use(s.loggingMiddleware)

	if s.config.EnableCORS {
		router.Use(s.corsMiddleware)
	}

	// Form page
	router.HandleFunc("/", s.showForm).Methods("GET")
	router.HandleFunc("/", s.submitForm).Methods("POST")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/predict", s.predict).Methods("POST")
	api.HandleFunc("/engagement-rate", s.engagementRate).Methods("GET")
	api.HandleFunc("/engagement-rate/stream", s.streamEngagementRate).Methods("GET")
	api.HandleFunc("/models", s.listModels).Methods("GET")

	if s.config.EnableCORS {
		api.Methods("OPTIONS").HandlerFunc(s.handleOptions)
	}

	if s.config.EnableMetrics {
		router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	router.HandleFunc("/health", s.healthCheck)

	return router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := s.GetAddr()
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	log.Info().
		Str("addr", addr).
		Int("artifacts", len(s.service.Store().Artifacts())).
		Bool("metrics", s.config.EnableMetrics).
		Msg("Starting growthcast server")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	return nil
}

// Stop stops the HTTP server gracefully
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	log.Info().Msg("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// StartWithGracefulShutdown starts the server and blocks until SIGINT or SIGTERM
func (s *Server) StartWithGracefulShutdown() error {
	if err := s.Start(); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	<-sigChan
	log.Info().Msg("Received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.Stop(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
		return err
	}

	log.Info().Msg("Server shutdown complete")
	return nil
}

// GetAddr returns the server address
func (s *Server) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// handleOptions handles CORS preflight requests
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// sameOrigin accepts websocket upgrades from pages served by this host
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}
