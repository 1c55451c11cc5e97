package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/nba-betting-research/internal/models"
	"github.com/jstittsworth/nba-betting-research/internal/services"
	"github.com/jstittsworth/nba-betting-research/pkg/config"
	"github.com/jstittsworth/nba-betting-research/pkg/database"
	"github.com/jstittsworth/nba-betting-research/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		logrus.Fatal("Usage: migrate [up|down|seed]")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := models.Migrate(db.DB); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Info("Migrations completed successfully")

	case "down":
		if err := models.DropAll(db.DB); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Info("Tables dropped successfully")

	case "seed":
		if err := seed(db, cfg, log); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func seed(db *database.DB, cfg *config.Config, log *logrus.Logger) error {
	ctx := context.Background()
	if err := models.Migrate(db.DB); err != nil {
		return err
	}

	redisClient, err := services.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Warnf("Reference cache disabled: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}
	cache := services.NewCacheService(redisClient, cfg.CacheExpiration)

	dataset, err := services.DefaultSampleDataset()
	if err != nil {
		return err
	}

	standings := services.NewStandingsService(db, cache, log, "")
	seeded, err := services.NewSeeder(db, dataset, standings, cache, log, cfg.SeedRandom).Seed(ctx)
	if err != nil {
		return err
	}
	if seeded {
		log.Info("Data seeded successfully")
	} else {
		log.Info("Teams already present, seeding skipped")
	}
	return nil
}
