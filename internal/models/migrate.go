package models

import (
	"fmt"

	"gorm.io/gorm"
)

// All returns every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&Team{},
		&Player{},
		&Game{},
		&PlayerPerformance{},
		&Odds{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}
	return nil
}

// DropAll drops every table in reverse dependency order.
func DropAll(db *gorm.DB) error {
	all := All()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}
