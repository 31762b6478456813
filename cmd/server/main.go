package main

import (
	"alcyxob/fitness-goals/internal/api"
	"alcyxob/fitness-goals/internal/config"
	"alcyxob/fitness-goals/internal/logging"
	"alcyxob/fitness-goals/internal/metrics"
	"alcyxob/fitness-goals/internal/repository"
	"alcyxob/fitness-goals/internal/repository/mongo"
	"alcyxob/fitness-goals/internal/repository/sqlstore"
	"alcyxob/fitness-goals/internal/service"
	"alcyxob/fitness-goals/internal/storage"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
)

// stores bundles the goal repositories of the configured driver.
type stores struct {
	goals    repository.GoalRepository
	progress repository.ProgressRepository
	close    func()
}

func openStores(ctx context.Context, cfg config.DatabaseConfig) (*stores, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := mongo.ConnectDB(ctx, cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		db := client.Database(cfg.Name)

		indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(indexCtx, db); err != nil {
			_ = mongo.DisconnectDB(client)
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}

		return &stores{
			goals:    mongo.NewMongoGoalRepository(db),
			progress: mongo.NewMongoProgressRepository(db),
			close: func() {
				if err := mongo.DisconnectDB(client); err != nil {
					log.WithError(err).Error("failed to disconnect mongo")
				}
			},
		}, nil

	case config.DriverSQLite, config.DriverPostgres:
		db, err := sqlstore.Open(cfg.Driver, cfg.URI)
		if err != nil {
			return nil, err
		}
		if err := sqlstore.RunMigrations(db.DB, cfg.Driver); err != nil {
			_ = sqlstore.Close(db)
			return nil, err
		}

		return &stores{
			goals:    sqlstore.NewGoalRepository(db),
			progress: sqlstore.NewProgressRepository(db),
			close: func() {
				if err := sqlstore.Close(db); err != nil {
					log.WithError(err).Error("failed to close database")
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.Stdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Info("starting fitness goals server")

	ctx := context.Background()

	// --- Database ---
	st, err := openStores(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("could not open goal store: %s", err)
	}
	defer st.close()
	log.WithField("driver", cfg.Database.Driver).Info("goal store ready")

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager(cfg.Metrics.Namespace, cfg.Metrics.Subsystem, reg)

	// --- Services ---
	clock := service.SystemClock{}
	ids := service.UUIDGenerator{}
	goalService := service.NewGoalService(st.goals, st.progress, clock, ids, metricsManager)
	workoutProcessor := service.NewWorkoutProcessor(st.goals, st.progress, clock, metricsManager)

	var exportService service.ExportService
	if cfg.S3.Enabled() {
		fileStorage, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("failed to initialize s3 storage: %s", err)
		}
		exportService = service.NewExportService(goalService, fileStorage, ids, clock)
	} else {
		log.Warn("s3 bucket not configured, goal history export is disabled")
	}

	// --- HTTP ---
	router := gin.Default()
	api.SetupRoutes(router, cfg.JWT.Secret, reg, goalService, workoutProcessor, exportService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen and serve: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %s", err)
	}

	log.Info("server exiting")
}
