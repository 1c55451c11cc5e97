package models

import "time"

type GameStatus string

const (
	GameScheduled GameStatus = "scheduled"
	GameLive      GameStatus = "live"
	GameCompleted GameStatus = "completed"
)

type Game struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Date       time.Time  `gorm:"index" json:"date"`
	HomeTeamID uint       `gorm:"index" json:"home_team_id"`
	AwayTeamID uint       `gorm:"index" json:"away_team_id"`
	HomeScore  int        `json:"home_score"`
	AwayScore  int        `json:"away_score"`
	Status     GameStatus `gorm:"default:scheduled" json:"status"`

	HomeTeam *Team  `gorm:"foreignKey:HomeTeamID" json:"-"`
	AwayTeam *Team  `gorm:"foreignKey:AwayTeamID" json:"-"`
	Odds     []Odds `gorm:"foreignKey:GameID" json:"-"`
}

// TableName specifies the table name for GORM
func (Game) TableName() string {
	return "games"
}

// Winner returns the winning team id of a completed game. Ties and games
// that are not completed have no winner.
func (g Game) Winner() (uint, bool) {
	if g.Status != GameCompleted || g.HomeScore == g.AwayScore {
		return 0, false
	}
	if g.HomeScore > g.AwayScore {
		return g.HomeTeamID, true
	}
	return g.AwayTeamID, true
}
