package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jstittsworth/nba-betting-research/internal/models"
	"github.com/jstittsworth/nba-betting-research/pkg/database"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a team, player or game id does not resolve.
var ErrNotFound = errors.New("resource not found")

type TeamSummary struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	City   string `json:"city"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

type PlayerSummary struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	TeamID       uint   `json:"team_id"`
	Position     string `json:"position"`
	Age          int    `json:"age"`
	InjuryStatus string `json:"injury_status"`
}

type GameSummary struct {
	ID        uint   `json:"id"`
	Date      string `json:"date"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Status    string `json:"status"`
}

type OddsQuote struct {
	Bookmaker string   `json:"bookmaker"`
	BetType   string   `json:"bet_type"`
	OddsValue float64  `json:"odds_value"`
	Line      *float64 `json:"line"`
}

// Store is the query layer over the relational schema. Every call runs on
// the request's context against the connection pool; it keeps no session
// between calls.
type Store struct {
	db     *database.DB
	cache  *CacheService
	logger *logrus.Logger
}

func NewStore(db *database.DB, cache *CacheService, logger *logrus.Logger) *Store {
	return &Store{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (s *Store) ListTeams(ctx context.Context) ([]TeamSummary, error) {
	var teams []TeamSummary
	err := s.cache.Get(ctx, TeamsCacheKey(), &teams)
	if err == nil {
		return teams, nil
	}
	logCacheError(s.logger, "get", TeamsCacheKey(), err)

	teams = []TeamSummary{}
	if err := s.db.WithContext(ctx).Model(&models.Team{}).Order("id").Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	logCacheError(s.logger, "set", TeamsCacheKey(), s.cache.Set(ctx, TeamsCacheKey(), teams))
	return teams, nil
}

// ListPlayers returns all players, or only those on teamID when it is non-zero.
func (s *Store) ListPlayers(ctx context.Context, teamID uint) ([]PlayerSummary, error) {
	query := s.db.WithContext(ctx).Model(&models.Player{})
	if teamID != 0 {
		query = query.Where("team_id = ?", teamID)
	}

	players := []PlayerSummary{}
	if err := query.Order("id").Find(&players).Error; err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

type gameRow struct {
	ID        uint
	Date      time.Time
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	Status    string
}

// RecentGames returns the newest games first with team names resolved.
func (s *Store) RecentGames(ctx context.Context, limit int) ([]GameSummary, error) {
	var rows []gameRow
	err := s.db.WithContext(ctx).
		Table("games").
		Select(`games.id, games.date,
			COALESCE(home.name, '') AS home_team,
			COALESCE(away.name, '') AS away_team,
			games.home_score, games.away_score, games.status`).
		Joins("LEFT JOIN teams AS home ON home.id = games.home_team_id").
		Joins("LEFT JOIN teams AS away ON away.id = games.away_team_id").
		Order("games.date DESC").
		Order("games.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent games: %w", err)
	}

	games := make([]GameSummary, 0, len(rows))
	for _, r := range rows {
		games = append(games, GameSummary{
			ID:        r.ID,
			Date:      r.Date.Format("2006-01-02"),
			HomeTeam:  r.HomeTeam,
			AwayTeam:  r.AwayTeam,
			HomeScore: r.HomeScore,
			AwayScore: r.AwayScore,
			Status:    r.Status,
		})
	}
	return games, nil
}

// OddsForGame lists every bookmaker quote for a game.
func (s *Store) OddsForGame(ctx context.Context, gameID uint) ([]OddsQuote, error) {
	key := OddsCacheKey(gameID)
	var odds []OddsQuote
	err := s.cache.Get(ctx, key, &odds)
	if err == nil {
		return odds, nil
	}
	logCacheError(s.logger, "get", key, err)

	var game models.Game
	if err := s.db.WithContext(ctx).Select("id").First(&game, gameID).Error; err != nil {
		return nil, notFound("game", gameID, err)
	}

	odds = []OddsQuote{}
	if err := s.db.WithContext(ctx).Model(&models.Odds{}).
		Where("game_id = ?", gameID).
		Order("id").
		Find(&odds).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch odds for game %d: %w", gameID, err)
	}

	logCacheError(s.logger, "set", key, s.cache.Set(ctx, key, odds))
	return odds, nil
}

func (s *Store) GetPlayer(ctx context.Context, playerID uint) (*models.Player, error) {
	var player models.Player
	if err := s.db.WithContext(ctx).First(&player, playerID).Error; err != nil {
		return nil, notFound("player", playerID, err)
	}
	return &player, nil
}

// GetPerformancesForPlayer returns the player's box scores; empty when the
// player has not played.
func (s *Store) GetPerformancesForPlayer(ctx context.Context, playerID uint) ([]models.PlayerPerformance, error) {
	var perfs []models.PlayerPerformance
	if err := s.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("id").
		Find(&perfs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch performances for player %d: %w", playerID, err)
	}
	return perfs, nil
}

func (s *Store) GetTeamName(ctx context.Context, teamID uint) (string, error) {
	var team models.Team
	if err := s.db.WithContext(ctx).Select("id", "name").First(&team, teamID).Error; err != nil {
		return "", notFound("team", teamID, err)
	}
	return team.Name, nil
}

// notFound maps gorm's missing-record error onto ErrNotFound and wraps
// everything else.
func notFound(kind string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return fmt.Errorf("failed to fetch %s %d: %w", kind, id, err)
}
