package database

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed seeds/*.json
var seedFiles embed.FS

// Seed truncates both tables, restarting their ids, and loads the bundled
// sample data, reservations first so tables can point at them.
func Seed(db *gorm.DB) error {
	var reservations []models.Reservation
	if err := readSeed("seeds/reservations.json", &reservations); err != nil {
		return err
	}
	var tables []models.Table
	if err := readSeed("seeds/tables.json", &tables); err != nil {
		return err
	}

	if err := truncate(db); err != nil {
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reservations).Error; err != nil {
			return fmt.Errorf("insert reservations: %w", err)
		}
		if err := tx.Create(&tables).Error; err != nil {
			return fmt.Errorf("insert tables: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	utils.InfoLogger.Printf("Seeded %d reservations and %d tables", len(reservations), len(tables))
	return nil
}

// truncate empties both tables and restarts their ids at 1.
func truncate(db *gorm.DB) error {
	tables := clause.Table{Name: "tables"}
	reservations := clause.Table{Name: "reservations"}

	switch db.Dialector.Name() {
	case "postgres":
		if err := db.Exec("TRUNCATE TABLE ?, ? RESTART IDENTITY CASCADE", tables, reservations).Error; err != nil {
			return fmt.Errorf("truncate: %w", err)
		}
	case "mysql":
		for _, t := range []clause.Table{tables, reservations} {
			if err := db.Exec("TRUNCATE TABLE ?", t).Error; err != nil {
				return fmt.Errorf("truncate %s: %w", t.Name, err)
			}
		}
	default:
		return db.Transaction(func(tx *gorm.DB) error {
			wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
			if err := wipe.Delete(&models.Table{}).Error; err != nil {
				return fmt.Errorf("truncate tables: %w", err)
			}
			if err := wipe.Delete(&models.Reservation{}).Error; err != nil {
				return fmt.Errorf("truncate reservations: %w", err)
			}
			// only present when a table was declared AUTOINCREMENT
			if tx.Migrator().HasTable("sqlite_sequence") {
				return tx.Exec("DELETE FROM sqlite_sequence WHERE name IN (?, ?)", tables.Name, reservations.Name).Error
			}
			return nil
		})
	}
	return nil
}

func readSeed(name string, v interface{}) error {
	raw, err := seedFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
