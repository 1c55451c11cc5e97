package models

import "time"

const (
	BetMoneyline = "moneyline"
	BetSpread    = "spread"
	BetOverUnder = "over_under"
)

// Odds is an opaque bookmaker quote for a game. Line is only set for spread
// and over/under markets.
type Odds struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GameID    uint      `gorm:"index;not null" json:"game_id"`
	Bookmaker string    `json:"bookmaker"`
	BetType   string    `json:"bet_type"`
	OddsValue float64   `json:"odds_value"`
	Line      *float64  `json:"line"`
	Timestamp time.Time `json:"timestamp"`
}

// TableName specifies the table name for GORM
func (Odds) TableName() string {
	return "odds"
}
