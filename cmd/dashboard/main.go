package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/nba-betting-research/internal/dashboard"
	"github.com/jstittsworth/nba-betting-research/pkg/config"
	"github.com/jstittsworth/nba-betting-research/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	logger.WithService("dashboard").WithFields(logrus.Fields{
		"port":     cfg.DashboardPort,
		"api_base": cfg.APIBaseURL,
	}).Info("Starting dashboard")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	client := dashboard.NewClient(dashboard.ClientConfig{
		BaseURL:        cfg.APIBaseURL,
		Timeout:        cfg.APIClientTimeout,
		RequestsPerSec: cfg.APIClientRPS,
		BreakerTimeout: cfg.CircuitBreakerTimeout,
	}, log)

	handler := dashboard.NewHandler(client, cfg.DashboardPollInterval, log)
	router, err := dashboard.NewRouter(handler, log)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.DashboardPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Dashboard listening on port %s", cfg.DashboardPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start dashboard: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down dashboard...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Dashboard forced to shutdown: %v", err)
	}
}
