package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jstittsworth/nba-betting-research/internal/models"
	"github.com/jstittsworth/nba-betting-research/pkg/database"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StandingsService keeps team win/loss counters in line with completed games.
type StandingsService struct {
	db        *database.DB
	cache     *CacheService
	logger    *logrus.Logger
	cron      *cron.Cron
	schedule  string
	mu        sync.Mutex
	isRunning bool
	lastRun   time.Time
	lastErr   error
}

func NewStandingsService(db *database.DB, cache *CacheService, logger *logrus.Logger, schedule string) *StandingsService {
	return &StandingsService{
		db:       db,
		cache:    cache,
		logger:   logger,
		cron:     cron.New(),
		schedule: schedule,
	}
}

// Start schedules the recompute job. An empty schedule leaves it disabled.
func (s *StandingsService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("standings job is already running")
	}
	if s.schedule == "" {
		s.logger.Info("Standings job disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, s.runScheduled)
	if err != nil {
		return fmt.Errorf("failed to schedule standings job: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	s.logger.WithField("schedule", s.schedule).Info("Standings job started")
	return nil
}

// Stop halts the schedule and waits for a running recompute to finish.
func (s *StandingsService) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	// an in-flight recompute takes mu to record its result
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.logger.Info("Standings job stopped")
}

func (s *StandingsService) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.Recompute(ctx); err != nil {
		s.logger.Errorf("Scheduled standings recompute failed: %v", err)
	}
}

// Recompute rebuilds every team's record from completed games. Ties count
// for neither side.
func (s *StandingsService) Recompute(ctx context.Context) error {
	err := s.recompute(ctx)

	s.mu.Lock()
	s.lastRun = time.Now()
	s.lastErr = err
	s.mu.Unlock()

	return err
}

func (s *StandingsService) recompute(ctx context.Context) error {
	var games []models.Game
	if err := s.db.WithContext(ctx).
		Where("status = ?", models.GameCompleted).
		Find(&games).Error; err != nil {
		return fmt.Errorf("failed to load completed games: %w", err)
	}

	type record struct{ wins, losses int }
	records := make(map[uint]*record)
	tally := func(teamID uint) *record {
		r, ok := records[teamID]
		if !ok {
			r = &record{}
			records[teamID] = r
		}
		return r
	}
	for _, g := range games {
		winner, ok := g.Winner()
		if !ok {
			continue
		}
		loser := g.HomeTeamID
		if winner == g.HomeTeamID {
			loser = g.AwayTeamID
		}
		tally(winner).wins++
		tally(loser).losses++
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var teams []models.Team
		if err := tx.Select("id").Find(&teams).Error; err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		for _, t := range teams {
			r := tally(t.ID)
			if err := tx.Model(&models.Team{}).Where("id = ?", t.ID).Updates(map[string]interface{}{
				"wins":   r.wins,
				"losses": r.losses,
			}).Error; err != nil {
				return fmt.Errorf("failed to update record for team %d: %w", t.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logCacheError(s.logger, "delete", TeamsCacheKey(), s.cache.Delete(ctx, TeamsCacheKey()))

	s.logger.WithFields(logrus.Fields{
		"completed_games": len(games),
		"teams":           len(records),
	}).Debug("Standings recomputed")
	return nil
}

// Status returns job state for the health endpoint.
func (s *StandingsService) Status() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"running":  s.isRunning,
		"schedule": s.schedule,
	}
	if !s.lastRun.IsZero() {
		status["last_run"] = s.lastRun.UTC()
	}
	if s.lastErr != nil {
		status["last_error"] = s.lastErr.Error()
	}
	return status
}
