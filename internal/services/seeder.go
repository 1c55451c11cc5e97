package services

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand"
	"time"

	"github.com/jstittsworth/nba-betting-research/internal/models"
	"github.com/jstittsworth/nba-betting-research/pkg/database"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed sample_data.yaml
var sampleDataYAML []byte

type SampleTeam struct {
	Name       string `yaml:"name"`
	City       string `yaml:"city"`
	Conference string `yaml:"conference"`
	Division   string `yaml:"division"`
}

// SampleDataset describes the synthetic league written by the Seeder.
type SampleDataset struct {
	Teams          []SampleTeam `yaml:"teams"`
	Players        []string     `yaml:"players"`
	Positions      []string     `yaml:"positions"`
	InjuryStatuses []string     `yaml:"injury_statuses"`
	Bookmakers     []string     `yaml:"bookmakers"`
	Games          int          `yaml:"games"`
	DaysBack       int          `yaml:"days_back"`
	PlayersPerGame int          `yaml:"players_per_game"`
}

// LoadSampleDataset parses a dataset and checks it can produce games.
func LoadSampleDataset(data []byte) (*SampleDataset, error) {
	var ds SampleDataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse sample dataset: %w", err)
	}
	switch {
	case len(ds.Teams) < 2:
		return nil, fmt.Errorf("sample dataset needs at least 2 teams, got %d", len(ds.Teams))
	case len(ds.Positions) == 0, len(ds.InjuryStatuses) == 0:
		return nil, fmt.Errorf("sample dataset needs positions and injury statuses")
	case ds.DaysBack < 1:
		return nil, fmt.Errorf("sample dataset days_back must be positive")
	}
	return &ds, nil
}

// DefaultSampleDataset is the embedded six-team league.
func DefaultSampleDataset() (*SampleDataset, error) {
	return LoadSampleDataset(sampleDataYAML)
}

// Seeder fills an empty database with a synthetic league: teams, players,
// completed games with box scores, and odds boards.
type Seeder struct {
	db        *database.DB
	dataset   *SampleDataset
	standings *StandingsService
	cache     *CacheService
	rng       *rand.Rand
	now       func() time.Time
	logger    *logrus.Logger
}

// NewSeeder creates a seeder. A zero seed uses the clock, so each run differs.
func NewSeeder(db *database.DB, dataset *SampleDataset, standings *StandingsService, cache *CacheService, logger *logrus.Logger, seed int64) *Seeder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeder{
		db:        db,
		dataset:   dataset,
		standings: standings,
		cache:     cache,
		rng:       rand.New(rand.NewSource(seed)),
		now:       time.Now,
		logger:    logger,
	}
}

// Seed writes the sample league unless teams already exist. It reports
// whether anything was written.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Team{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count teams: %w", err)
	}
	if count > 0 {
		s.logger.WithField("teams", count).Info("Database already seeded, skipping")
		return false, nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		teams, err := s.seedTeams(tx)
		if err != nil {
			return err
		}
		players, err := s.seedPlayers(tx, teams)
		if err != nil {
			return err
		}
		return s.seedGames(tx, teams, players)
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed sample data: %w", err)
	}

	// game ids may be reused after the tables were dropped
	logCacheError(s.logger, "delete", "odds:*", s.cache.DeletePattern(ctx, "odds:*"))

	if s.standings != nil {
		if err := s.standings.Recompute(ctx); err != nil {
			return true, fmt.Errorf("failed to compute standings after seeding: %w", err)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"teams":   len(s.dataset.Teams),
		"players": len(s.dataset.Players),
		"games":   s.dataset.Games,
	}).Info("Seeded sample data")
	return true, nil
}

func (s *Seeder) seedTeams(tx *gorm.DB) ([]models.Team, error) {
	teams := make([]models.Team, 0, len(s.dataset.Teams))
	for _, t := range s.dataset.Teams {
		teams = append(teams, models.Team{
			Name:       t.Name,
			City:       t.City,
			Conference: t.Conference,
			Division:   t.Division,
		})
	}
	if err := tx.Create(&teams).Error; err != nil {
		return nil, fmt.Errorf("failed to create teams: %w", err)
	}
	return teams, nil
}

func (s *Seeder) seedPlayers(tx *gorm.DB, teams []models.Team) ([]models.Player, error) {
	players := make([]models.Player, 0, len(s.dataset.Players))
	for i, name := range s.dataset.Players {
		players = append(players, models.Player{
			Name:         name,
			TeamID:       teams[i%len(teams)].ID,
			Position:     pick(s.rng, s.dataset.Positions),
			Age:          between(s.rng, 22, 38),
			Height:       fmt.Sprintf("%d'%d\"", between(s.rng, 6, 7), between(s.rng, 0, 11)),
			Weight:       between(s.rng, 180, 280),
			InjuryStatus: pick(s.rng, s.dataset.InjuryStatuses),
		})
	}
	if len(players) == 0 {
		return players, nil
	}
	if err := tx.Create(&players).Error; err != nil {
		return nil, fmt.Errorf("failed to create players: %w", err)
	}
	return players, nil
}

func (s *Seeder) seedGames(tx *gorm.DB, teams []models.Team, players []models.Player) error {
	now := s.now().UTC()
	for i := 0; i < s.dataset.Games; i++ {
		home := teams[s.rng.Intn(len(teams))]
		away := teams[s.rng.Intn(len(teams)-1)]
		if away.ID == home.ID {
			away = teams[len(teams)-1]
		}

		game := models.Game{
			Date:       now.AddDate(0, 0, -between(s.rng, 1, s.dataset.DaysBack)),
			HomeTeamID: home.ID,
			AwayTeamID: away.ID,
			HomeScore:  between(s.rng, 90, 130),
			AwayScore:  between(s.rng, 90, 130),
			Status:     models.GameCompleted,
		}
		if err := tx.Create(&game).Error; err != nil {
			return fmt.Errorf("failed to create game: %w", err)
		}

		perfs := s.performances(game, players)
		if len(perfs) > 0 {
			if err := tx.Create(&perfs).Error; err != nil {
				return fmt.Errorf("failed to create performances for game %d: %w", game.ID, err)
			}
		}

		odds := s.oddsBoard(game)
		if len(odds) > 0 {
			if err := tx.Create(&odds).Error; err != nil {
				return fmt.Errorf("failed to create odds for game %d: %w", game.ID, err)
			}
		}
	}
	return nil
}

// performances produces a box score for up to PlayersPerGame players whose
// team played in the game. Attempts are never below makes.
func (s *Seeder) performances(game models.Game, players []models.Player) []models.PlayerPerformance {
	var perfs []models.PlayerPerformance
	for _, p := range players {
		if len(perfs) >= s.dataset.PlayersPerGame {
			break
		}
		if p.TeamID != game.HomeTeamID && p.TeamID != game.AwayTeamID {
			continue
		}

		fgm := between(s.rng, 3, 15)
		tpm := between(s.rng, 0, 8)
		ftm := between(s.rng, 0, 10)
		perfs = append(perfs, models.PlayerPerformance{
			PlayerID:               p.ID,
			GameID:                 game.ID,
			Points:                 between(s.rng, 5, 35),
			Assists:                between(s.rng, 0, 12),
			Rebounds:               between(s.rng, 2, 15),
			Steals:                 between(s.rng, 0, 4),
			Blocks:                 between(s.rng, 0, 3),
			Turnovers:              between(s.rng, 0, 6),
			FieldGoalsMade:         fgm,
			FieldGoalsAttempted:    max(between(s.rng, 8, 25), fgm),
			ThreePointersMade:      tpm,
			ThreePointersAttempted: max(between(s.rng, 0, 12), tpm),
			FreeThrowsMade:         ftm,
			FreeThrowsAttempted:    max(between(s.rng, 0, 12), ftm),
			MinutesPlayed:          uniform(s.rng, 15, 42),
		})
	}
	return perfs
}

// oddsBoard quotes every bet type at every bookmaker two hours before tip-off.
func (s *Seeder) oddsBoard(game models.Game) []models.Odds {
	stamp := game.Date.Add(-2 * time.Hour)
	odds := make([]models.Odds, 0, len(s.dataset.Bookmakers)*3)
	for _, bookmaker := range s.dataset.Bookmakers {
		for _, betType := range []string{models.BetMoneyline, models.BetSpread, models.BetOverUnder} {
			quote := models.Odds{
				GameID:    game.ID,
				Bookmaker: bookmaker,
				BetType:   betType,
				Timestamp: stamp,
			}
			switch betType {
			case models.BetMoneyline:
				quote.OddsValue = uniform(s.rng, -200, 200)
			case models.BetSpread:
				quote.OddsValue = uniform(s.rng, -115, -105)
				line := uniform(s.rng, -10, 10)
				quote.Line = &line
			case models.BetOverUnder:
				quote.OddsValue = uniform(s.rng, -115, -105)
				line := uniform(s.rng, 200, 240)
				quote.Line = &line
			}
			odds = append(odds, quote)
		}
	}
	return odds
}

// between returns an int in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
