package models

// PlayerPerformance is one box-score line for a player in a game.
type PlayerPerformance struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	PlayerID uint `gorm:"index;not null" json:"player_id"`
	GameID   uint `gorm:"index;not null" json:"game_id"`

	Points    int `gorm:"default:0" json:"points"`
	Assists   int `gorm:"default:0" json:"assists"`
	Rebounds  int `gorm:"default:0" json:"rebounds"`
	Steals    int `gorm:"default:0" json:"steals"`
	Blocks    int `gorm:"default:0" json:"blocks"`
	Turnovers int `gorm:"default:0" json:"turnovers"`

	FieldGoalsMade         int `gorm:"default:0" json:"field_goals_made"`
	FieldGoalsAttempted    int `gorm:"default:0" json:"field_goals_attempted"`
	ThreePointersMade      int `gorm:"default:0" json:"three_pointers_made"`
	ThreePointersAttempted int `gorm:"default:0" json:"three_pointers_attempted"`
	FreeThrowsMade         int `gorm:"default:0" json:"free_throws_made"`
	FreeThrowsAttempted    int `gorm:"default:0" json:"free_throws_attempted"`

	MinutesPlayed float64 `gorm:"default:0" json:"minutes_played"`
}

// TableName specifies the table name for GORM
func (PlayerPerformance) TableName() string {
	return "player_performances"
}
