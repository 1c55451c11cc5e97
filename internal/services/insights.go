package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jstittsworth/nba-betting-research/internal/analytics"
	"github.com/jstittsworth/nba-betting-research/internal/models"
	"github.com/sirupsen/logrus"
)

// PlayerReader is the slice of the Store the insight service depends on.
type PlayerReader interface {
	GetPlayer(ctx context.Context, playerID uint) (*models.Player, error)
	GetPerformancesForPlayer(ctx context.Context, playerID uint) ([]models.PlayerPerformance, error)
	GetTeamName(ctx context.Context, teamID uint) (string, error)
}

// InsightService loads a player's records and runs them through the
// analytics package. Results are recomputed on every call.
type InsightService struct {
	store  PlayerReader
	logger *logrus.Logger
}

func NewInsightService(store PlayerReader, logger *logrus.Logger) *InsightService {
	return &InsightService{
		store:  store,
		logger: logger,
	}
}

// SeasonStats returns ErrNotFound (wrapped) for an unknown player. A player
// without games yields stats with GamesPlayed == 0 and no error.
func (s *InsightService) SeasonStats(ctx context.Context, playerID uint) (analytics.PlayerSeasonStats, error) {
	player, err := s.store.GetPlayer(ctx, playerID)
	if err != nil {
		return analytics.PlayerSeasonStats{}, err
	}

	perfs, err := s.store.GetPerformancesForPlayer(ctx, playerID)
	if err != nil {
		return analytics.PlayerSeasonStats{}, err
	}

	profile := analytics.PlayerProfile{
		Name:     player.Name,
		Position: player.Position,
	}
	if len(perfs) > 0 {
		teamName, err := s.store.GetTeamName(ctx, player.TeamID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// the player exists, so a missing team is a data fault, not a 404
				return analytics.PlayerSeasonStats{}, fmt.Errorf("player %d references missing team %d", playerID, player.TeamID)
			}
			return analytics.PlayerSeasonStats{}, err
		}
		profile.Team = teamName
	}

	stats := analytics.ComputeSeasonStats(profile, perfs)
	s.logger.WithFields(logrus.Fields{
		"player_id":    playerID,
		"games_played": stats.GamesPlayed,
	}).Debug("Computed season stats")
	return stats, nil
}

// Insights returns analytics.ErrInsufficientData (with the player name set on
// the result) for a player without games.
func (s *InsightService) Insights(ctx context.Context, playerID uint) (analytics.BettingInsight, error) {
	stats, err := s.SeasonStats(ctx, playerID)
	if err != nil {
		return analytics.BettingInsight{}, err
	}
	return analytics.GenerateInsights(stats)
}
