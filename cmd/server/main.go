// Package main provides the free classroom API server entry point.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/api"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/calendar"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/classroom"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/config"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/logger"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/metrics"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/prefs"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("Starting free classroom server")

	prefStore, err := prefs.Open(cfg.SQLitePath)
	if err != nil {
		log.WithError(err).Error("Failed to open preference database")
		os.Exit(1)
	}
	defer func() { _ = prefStore.Close() }()
	log.WithField("path", cfg.SQLitePath).Info("Preference database opened")

	m := metrics.New()
	log.Info("Metrics initialized")

	cal := calendar.Default()
	if cfg.SemesterStart != "" {
		start, err := calendar.ParseDate(cfg.SemesterStart)
		if err != nil {
			log.WithError(err).Error("Invalid semester start override")
			os.Exit(1)
		}
		cal = calendar.New(start)
		log.WithField("semester_start", cfg.SemesterStart).Info("Semester start overridden")
	}

	source, err := newTableSource(cfg)
	if err != nil {
		log.WithError(err).Error("Failed to create table source")
		os.Exit(1)
	}
	log.WithField("source", cfg.TableSource).Info("Table source created")

	service := classroom.NewService(
		source,
		classroom.NewPlaceholder(rand.NewSource(time.Now().UnixNano())),
		cal,
		log,
		m,
	)

	handler := api.NewHandler(service, prefStore, log)

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware(m))

	setupRoutes(router, cfg, handler, prefStore, source, m)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Failed to start server")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if err := prefStore.Close(); err != nil {
		log.WithError(err).Error("Failed to close preference database")
	}

	log.Info("Server stopped")
}

// newTableSource builds the configured availability table source.
func newTableSource(cfg *config.Config) (classroom.TableSource, error) {
	switch cfg.TableSource {
	case config.SourceR2:
		return store.New(context.Background(), store.Config{
			Endpoint:    cfg.R2Endpoint,
			AccessKeyID: cfg.R2AccessKeyID,
			SecretKey:   cfg.R2SecretKey,
			BucketName:  cfg.R2Bucket,
		})
	case config.SourceLocal:
		return store.NewDir(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown table source %q", cfg.TableSource)
	}
}
