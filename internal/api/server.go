package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/robgonnella/backupcheck/internal/logger"
	"github.com/robgonnella/backupcheck/internal/metrics"
)

// DefaultListen address the api listens on when none is given
const DefaultListen = "0.0.0.0:5000"

const shutdownTimeout = 30 * time.Second

// Server represents the http api server
type Server struct {
	app        App
	metrics    *metrics.Metrics
	router     *mux.Router
	httpServer *http.Server
	log        logger.Logger
	now        func() time.Time
}

// New returns a new api Server for app listening on listen
func New(app App, m *metrics.Metrics, listen string) *Server {
	if listen == "" {
		listen = DefaultListen
	}

	s := &Server{
		app:     app,
		metrics: m,
		router:  mux.NewRouter(),
		log:     logger.New().Component("api"),
		now:     time.Now,
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
		// no write timeout: scan requests answer when the scan finishes
	}

	return s
}

// Handler returns the fully wrapped http handler
func (s *Server) Handler() http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
	)

	return handlers.CombinedLoggingHandler(
		s.log.Writer(),
		cors(handlers.RecoveryHandler()(s.router)),
	)
}

// Start serves until ctx is cancelled or the listener fails
func (s *Server) Start(ctx context.Context) error {
	s.log.Info().Str("address", s.httpServer.Addr).Msg("starting api server")

	errChan := make(chan error, 1)

	go func() {
		err := s.httpServer.ListenAndServe()

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("api server failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-errChan:
		return err
	}
}

// Stop gracefully stops the server
func (s *Server) Stop() error {
	s.log.Info().Msg("stopping api server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("api server shutdown failed: %w", err)
	}

	return nil
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.health).Methods("GET")
	api.HandleFunc("/servers", s.listServers).Methods("GET")
	api.HandleFunc("/servers/{hostname}", s.removeServer).Methods("DELETE")
	api.HandleFunc("/files", s.listFiles).Methods("GET")
	api.HandleFunc("/scan/servers", s.scanServers).Methods("POST")
	api.HandleFunc("/scan/directories", s.scanDirectories).Methods("POST")
	api.HandleFunc("/config", s.getConfig).Methods("GET")
	api.HandleFunc("/config", s.updateConfig).Methods("PUT")

	s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
}
