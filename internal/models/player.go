package models

const (
	InjuryHealthy      = "healthy"
	InjuryProbable     = "probable"
	InjuryQuestionable = "questionable"
)

type Player struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"index;not null" json:"name"`
	TeamID       uint   `gorm:"index" json:"team_id"`
	Position     string `json:"position"` // PG, SG, SF, PF, C
	Age          int    `json:"age"`
	Height       string `json:"height"`
	Weight       int    `json:"weight"`
	InjuryStatus string `gorm:"default:healthy" json:"injury_status"`

	Team         *Team               `gorm:"foreignKey:TeamID" json:"-"`
	Performances []PlayerPerformance `gorm:"foreignKey:PlayerID" json:"-"`
}

// TableName specifies the table name for GORM
func (Player) TableName() string {
	return "players"
}
