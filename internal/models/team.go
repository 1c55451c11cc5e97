package models

type Team struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"uniqueIndex;not null" json:"name"`
	City       string `json:"city"`
	Conference string `json:"conference"` // "Eastern" or "Western"
	Division   string `json:"division"`
	Wins       int    `gorm:"default:0" json:"wins"`
	Losses     int    `gorm:"default:0" json:"losses"`

	Players []Player `gorm:"foreignKey:TeamID" json:"-"`
}

// TableName specifies the table name for GORM
func (Team) TableName() string {
	return "teams"
}
