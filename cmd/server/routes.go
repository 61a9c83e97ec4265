// Package main provides the free classroom API server entry point.
package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/api"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/classroom"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/config"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/metrics"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/prefs"
)

// pinger is implemented by table sources that can verify their backend
// is reachable.
type pinger interface {
	Ping(ctx context.Context) error
}

// setupRoutes configures all HTTP routes.
func setupRoutes(router *gin.Engine, cfg *config.Config, handler *api.Handler, prefStore *prefs.Store, source classroom.TableSource, m *metrics.Metrics) {
	rootHandler := func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "https://github.com/Jay-z-d/hit-empty-classroom-atomic-service")
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness probe. Only proves the process is running, never checks
	// dependencies.
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness probe. Checks the preference database and, when the
	// table source supports it, the object store.
	readyHandler := func(c *gin.Context) {
		if err := prefStore.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}

		tables := "unchecked"
		if p, ok := source.(pinger); ok {
			if err := p.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "not ready",
					"reason": err.Error(),
				})
				return
			}
			tables = "reachable"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "ready",
			"database": "connected",
			"tables":   tables,
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	metricsHandler := gin.WrapH(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}))
	if cfg.MetricsAuthEnabled() {
		authorized := router.Group("/", gin.BasicAuth(gin.Accounts{
			cfg.MetricsUser: cfg.MetricsPassword,
		}))
		authorized.GET("/metrics", metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}

	handler.Register(router.Group("/api/v1"))
}
