package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/pkg/container"
	"blog-backend/pkg/logger"
)

// startServices performs health checks and starts the probe endpoint.
func startServices(c *container.Container) error {
	checks := []struct {
		name string
		fn   func(ctx context.Context) error
	}{
		{"redis", c.Redis.HealthCheck},
		{"postgres", c.DB.HealthCheck},
	}

	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("%s check failed: %w", check.name, err)
		}
		logger.Info("health check passed", map[string]interface{}{"check": check.name})
	}

	go startHealthCheckServer(c, getEnv("WORKER_HEALTH_PORT", "9999"))
	return nil
}

func startHealthCheckServer(c *container.Container, port string) {
	router := gin.New()
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "UP", "service": "blog-worker"})
	})
	router.GET("/ready", func(ctx *gin.Context) {
		if err := c.Redis.HealthCheck(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "NOT_READY", "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "READY"})
	})

	logger.Info("worker health server starting", map[string]interface{}{"port": port})
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Error("worker health server failed", err)
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
