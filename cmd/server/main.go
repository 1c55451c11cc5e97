package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/nba-betting-research/internal/api"
	"github.com/jstittsworth/nba-betting-research/internal/models"
	"github.com/jstittsworth/nba-betting-research/internal/services"
	"github.com/jstittsworth/nba-betting-research/pkg/config"
	"github.com/jstittsworth/nba-betting-research/pkg/database"
	"github.com/jstittsworth/nba-betting-research/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	logger.WithService("api").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("Starting NBA Betting Research API")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := models.Migrate(db.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is optional
	ctx := context.Background()
	redisClient, err := services.ConnectRedis(ctx, cfg.RedisURL)
	switch {
	case err != nil:
		log.Warnf("Reference cache disabled: %v", err)
	case !cfg.CacheEnabled():
		log.Info("REDIS_URL not set, reference cache disabled")
	default:
		defer redisClient.Close()
	}

	// Initialize services
	cacheService := services.NewCacheService(redisClient, cfg.CacheExpiration)
	store := services.NewStore(db, cacheService, log)
	insightService := services.NewInsightService(store, log)
	standings := services.NewStandingsService(db, cacheService, log, cfg.StandingsSchedule)

	if cfg.SeedOnStartup {
		dataset, err := services.DefaultSampleDataset()
		if err != nil {
			log.Fatalf("Failed to load sample dataset: %v", err)
		}
		seeder := services.NewSeeder(db, dataset, standings, cacheService, log, cfg.SeedRandom)
		if _, err := seeder.Seed(ctx); err != nil {
			log.Fatalf("Failed to seed sample data: %v", err)
		}
	}

	if err := standings.Start(); err != nil {
		log.Errorf("Failed to start standings job: %v", err)
	}
	defer standings.Stop()

	if cfg.IsProduction() && slices.Contains(cfg.CorsOrigins, "*") {
		log.Warn("CORS allows every origin in production")
	}

	router := api.NewRouter(api.Dependencies{
		DB:        db,
		Cache:     cacheService,
		Store:     store,
		Insights:  insightService,
		Standings: standings,
		Logger:    log,
	}, cfg.CorsOrigins)

	for _, route := range router.Routes() {
		log.Debugf("%s %s", route.Method, route.Path)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
