package database

import (
	"fmt"

	"github.com/lshigami/Edutrack/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate creates or updates every table and seeds the default subscription
// status that teachers receive on their first subscription.
func Migrate(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	status := model.SubscriptionStatus{Base: model.Base{ID: model.DefaultSubscriptionStatusID}, Name: "active"}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&status).Error; err != nil {
		return fmt.Errorf("seed default subscription status: %w", err)
	}
	// The explicit id above does not advance the serial sequence.
	if err := db.Exec(`SELECT setval(pg_get_serial_sequence('subscription_statuses', 'id'), (SELECT MAX(id) FROM subscription_statuses))`).Error; err != nil {
		return fmt.Errorf("sync subscription status sequence: %w", err)
	}

	log.Info().Msg("Database migration completed successfully.")
	return nil
}
