package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/Fram-Jam/healthbridge/pkg/archive"
	"github.com/Fram-Jam/healthbridge/pkg/common/config"
	"github.com/Fram-Jam/healthbridge/pkg/common/database"
	"github.com/Fram-Jam/healthbridge/pkg/common/kafka"
	"github.com/Fram-Jam/healthbridge/pkg/common/logger"
	"github.com/Fram-Jam/healthbridge/pkg/datasets/builtin"
	"github.com/Fram-Jam/healthbridge/pkg/labs"
	"github.com/Fram-Jam/healthbridge/pkg/loader"
	"github.com/Fram-Jam/healthbridge/pkg/server"
	"github.com/Fram-Jam/healthbridge/pkg/session"
)

func main() {
	logger.Init()
	cfg := config.Load()

	catalog, err := labs.Load(cfg.LabCatalogPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load biomarker catalog")
	}
	registry := builtin.NewRegistryWithOptions(cfg.DataDir, builtin.Options{
		Catalog:    &catalog,
		SubjectCap: cfg.SubjectListCap,
	})

	var store session.Store
	switch cfg.SessionStore {
	case "redis":
		store = session.NewRedisStore(database.GetRedis(), cfg.SessionTTL)
		logger.Log.Info("Using Redis session store")
	default:
		store = session.NewMemoryStore()
		logger.Log.Info("Using in-memory session store")
	}

	ldr := loader.New(registry, store).WithSyntheticSeed(cfg.SyntheticSeed)

	var producer *kafka.Producer
	if cfg.EventsEnabled {
		producer = kafka.NewProducer(cfg.KafkaLoadTopic)
		ldr = ldr.WithPublisher(producer)
	}

	if cfg.ArchiveEnabled {
		db, err := database.GetPostgres()
		if err != nil {
			logger.Log.WithError(err).Fatal("failed to connect to postgres")
		}
		repo := archive.NewRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			logger.Log.WithError(err).Fatal("failed to migrate archive tables")
		}
		ldr = ldr.WithAuditor(repo)
	}

	handler := server.NewHandler(registry, ldr, store)

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)
	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	handler.Register(api)

	address := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	srv := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithField("addr", address).Info("HealthBridge server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down HealthBridge server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("server forced to shutdown")
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close kafka producer")
		}
	}
	logger.Log.Info("HealthBridge server stopped")
}
