package services

import (
	"io"
	"testing"
	"time"

	"github.com/jstittsworth/nba-betting-research/internal/models"
	"github.com/jstittsworth/nba-betting-research/pkg/database"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a second connection would see a different :memory: database
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.Migrate(gormDB))
	return &database.DB{DB: gormDB}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fixture struct {
	lakers, celtics models.Team
	lebron, tatum   models.Player
	rookie          models.Player
	games           []models.Game
}

// seedFixture writes two teams, three players and two completed games. The
// rookie never plays.
func seedFixture(t *testing.T, db *database.DB) fixture {
	t.Helper()

	f := fixture{
		lakers:  models.Team{Name: "Lakers", City: "Los Angeles", Conference: "Western", Division: "Pacific"},
		celtics: models.Team{Name: "Celtics", City: "Boston", Conference: "Eastern", Division: "Atlantic"},
	}
	require.NoError(t, db.Create(&f.lakers).Error)
	require.NoError(t, db.Create(&f.celtics).Error)

	f.lebron = models.Player{Name: "LeBron James", TeamID: f.lakers.ID, Position: "SF", Age: 38, InjuryStatus: models.InjuryHealthy}
	f.tatum = models.Player{Name: "Jayson Tatum", TeamID: f.celtics.ID, Position: "SF", Age: 25, InjuryStatus: models.InjuryProbable}
	f.rookie = models.Player{Name: "Rookie Bench", TeamID: f.celtics.ID, Position: "PG", Age: 19, InjuryStatus: models.InjuryHealthy}
	for _, p := range []*models.Player{&f.lebron, &f.tatum, &f.rookie} {
		require.NoError(t, db.Create(p).Error)
	}

	base := time.Date(2024, 1, 10, 19, 30, 0, 0, time.UTC)
	f.games = []models.Game{
		{Date: base, HomeTeamID: f.lakers.ID, AwayTeamID: f.celtics.ID, HomeScore: 112, AwayScore: 104, Status: models.GameCompleted},
		{Date: base.AddDate(0, 0, 3), HomeTeamID: f.celtics.ID, AwayTeamID: f.lakers.ID, HomeScore: 120, AwayScore: 99, Status: models.GameCompleted},
	}
	for i := range f.games {
		require.NoError(t, db.Create(&f.games[i]).Error)
	}

	perfs := []models.PlayerPerformance{
		{PlayerID: f.lebron.ID, GameID: f.games[0].ID, Points: 30, Assists: 8, Rebounds: 9, FieldGoalsMade: 12, FieldGoalsAttempted: 21, ThreePointersMade: 2, ThreePointersAttempted: 5},
		{PlayerID: f.lebron.ID, GameID: f.games[1].ID, Points: 27, Assists: 9, Rebounds: 8, FieldGoalsMade: 11, FieldGoalsAttempted: 19, ThreePointersMade: 3, ThreePointersAttempted: 7},
		{PlayerID: f.tatum.ID, GameID: f.games[0].ID, Points: 22, Assists: 4, Rebounds: 7, FieldGoalsMade: 8, FieldGoalsAttempted: 20, ThreePointersMade: 3, ThreePointersAttempted: 9},
	}
	require.NoError(t, db.Create(&perfs).Error)

	line := 7.5
	odds := []models.Odds{
		{GameID: f.games[0].ID, Bookmaker: "DraftKings", BetType: models.BetMoneyline, OddsValue: -150},
		{GameID: f.games[0].ID, Bookmaker: "DraftKings", BetType: models.BetSpread, OddsValue: -110, Line: &line},
	}
	require.NoError(t, db.Create(&odds).Error)

	return f
}
