package database

import (
	"fmt"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/gorm"
)

// Migrate brings the reservations and tables schema up to date.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Reservation{}, &models.Table{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
