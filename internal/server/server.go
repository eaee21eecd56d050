// FilePath: internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/terrasense/meteohub/api"
	"github.com/terrasense/meteohub/api/middleware"
	"github.com/terrasense/meteohub/api/resources"
	"github.com/terrasense/meteohub/internal/barani"
	"github.com/terrasense/meteohub/internal/campbell"
	"github.com/terrasense/meteohub/internal/config"
	"github.com/terrasense/meteohub/internal/database"
	"github.com/terrasense/meteohub/internal/davis"
	"github.com/terrasense/meteohub/internal/meteofrance"
	"github.com/terrasense/meteohub/internal/monitoring"
	"github.com/terrasense/meteohub/internal/repository/postgres"
	"github.com/terrasense/meteohub/internal/scheduler"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	db         database.DB
	monitoring *monitoring.Service
	scheduler  *scheduler.Scheduler
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config:     cfg,
		monitoring: monitoring.NewService(),
		scheduler:  scheduler.New(),
	}
}

// Start wires the service graph and begins listening for requests
func (s *Server) Start() error {
	db, err := database.NewPostgresDB(s.config.Database.Postgres)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	s.db = db

	davisRepo, err := postgres.NewDavisRepository(db)
	if err != nil {
		return fmt.Errorf("initializing davis repository: %w", err)
	}
	baraniRepo, err := postgres.NewBaraniRepository(db)
	if err != nil {
		return fmt.Errorf("initializing barani repository: %w", err)
	}
	campbellRepo, err := postgres.NewCampbellRepository(db)
	if err != nil {
		return fmt.Errorf("initializing campbell repository: %w", err)
	}
	meteofranceRepo, err := postgres.NewMeteoFranceRepository(db)
	if err != nil {
		return fmt.Errorf("initializing meteofrance repository: %w", err)
	}

	davisSvc := davis.NewService(davisRepo, davis.NewClient(s.config.Davis), s.config.Davis)
	baraniSvc := barani.NewService(baraniRepo)
	campbellSvc := campbell.NewService(campbellRepo, campbell.NewDropDirScraper(s.config.Scraper))
	meteofranceSvc := meteofrance.NewService(meteofranceRepo, meteofrance.NewClient(s.config.MeteoFrance), s.config.MeteoFrance)

	res := resources.NewResources(baraniSvc, davisSvc, campbellSvc, meteofranceSvc, s.monitoring)
	res.SetHealthCheck(s.handleHealth())
	res.SetStats(s.handleStats())

	router := api.NewRouter(res, middleware.APIKeyConfig{Key: s.config.Auth.APIKey})
	handler := gorillahandlers.RecoveryHandler()(
		gorillahandlers.CombinedLoggingHandler(os.Stdout, router))

	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      handler,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	if s.config.Scheduler.Enabled {
		if err := s.setupScheduler(davisSvc, campbellSvc); err != nil {
			return fmt.Errorf("initializing scheduler: %w", err)
		}
		s.scheduler.Start()
	}

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// setupScheduler registers the recurring pull jobs. Failed ticks are
// counted and logged, the next tick runs on schedule regardless.
func (s *Server) setupScheduler(davisSvc *davis.Service, campbellSvc *campbell.Service) error {
	s.scheduler.OnJobFailed(func(name string, err error) {
		s.monitoring.RecordFailure(name, err)
	})
	s.scheduler.OnJobCompleted(func(name string) {
		nuts.L.Infof("[Server] Scheduled job %s completed", name)
	})

	err := s.scheduler.Register("davis_live", s.config.Scheduler.DavisTriggerFreq, func(ctx context.Context) error {
		result, err := davisSvc.IngestLive(ctx)
		if err != nil {
			return err
		}
		s.monitoring.RecordIngest("davis", result.Inserted, result.Skipped)
		return nil
	})
	if err != nil {
		return err
	}

	return s.scheduler.Register("campbell_scrape", s.config.Scheduler.CampbellTriggerFreq, func(ctx context.Context) error {
		result, err := campbellSvc.Scrape(ctx, true)
		if err != nil {
			return err
		}
		s.monitoring.RecordIngest("campbell", result.Inserted, result.Skipped)
		return nil
	})
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")
	s.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	if s.db != nil {
		s.db.Close()
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// handleHealth returns a simple health check handler
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if err := s.db.Ping(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		w.Write([]byte(`{"status":"` + status + `","version":"` + nuts.GetVersion() + `"}`))
	}
}

// handleStats exposes the per-source ingestion counters
func (s *Server) handleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(s.monitoring.Snapshot())
	}
}
