package services

import (
	"context"
	"errors"

	"github.com/yeremiapane/restaurant-reservations/models"
	"gorm.io/gorm"
)

// TableService owns table rows. Seating and finishing also move the linked
// reservation, always inside one transaction.
type TableService struct {
	DB           *gorm.DB
	Reservations *ReservationService
}

func NewTableService(db *gorm.DB, reservations *ReservationService) *TableService {
	return &TableService{DB: db, Reservations: reservations}
}

func (s *TableService) List(ctx context.Context) ([]models.Table, error) {
	tables := []models.Table{}
	err := s.DB.WithContext(ctx).Order("table_name ASC").Find(&tables).Error
	return tables, err
}

func (s *TableService) Read(ctx context.Context, id uint) (*models.Table, error) {
	return readTable(s.DB.WithContext(ctx), id)
}

// Create inserts a table. When the table arrives already linked to a
// reservation, that reservation is seated in the same transaction.
func (s *TableService) Create(ctx context.Context, t *models.Table) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if t.ReservationID != nil {
			t.Occupied = true
			if err := s.Reservations.withTx(tx).markSeated(ctx, *t.ReservationID); err != nil {
				return err
			}
		}
		return tx.Create(t).Error
	})
}

// Seat links a free table to a booked reservation.
func (s *TableService) Seat(ctx context.Context, tableID, reservationID uint) (*models.Table, error) {
	var seated *models.Table
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Table{}).
			Where("table_id = ? AND occupied = ?", tableID, false).
			Updates(map[string]interface{}{"reservation_id": reservationID, "occupied": true})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if _, err := readTable(tx, tableID); err != nil {
				return err
			}
			return ErrTableOccupied
		}

		if err := s.Reservations.withTx(tx).markSeated(ctx, reservationID); err != nil {
			return err
		}

		t, err := readTable(tx, tableID)
		seated = t
		return err
	})
	if err != nil {
		return nil, err
	}
	return seated, nil
}

// Finish frees an occupied table and closes out its reservation.
func (s *TableService) Finish(ctx context.Context, tableID uint) (*models.Table, error) {
	var freed *models.Table
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := readTable(tx, tableID)
		if err != nil {
			return err
		}
		if !t.Occupied {
			return ErrTableNotOccupied
		}

		res := tx.Model(&models.Table{}).
			Where("table_id = ? AND occupied = ?", tableID, true).
			Updates(map[string]interface{}{"reservation_id": nil, "occupied": false})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTableNotOccupied
		}

		if t.ReservationID != nil {
			if err := s.Reservations.withTx(tx).markFinished(ctx, *t.ReservationID); err != nil {
				return err
			}
		}

		freed, err = readTable(tx, tableID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return freed, nil
}

func readTable(db *gorm.DB, id uint) (*models.Table, error) {
	var t models.Table
	if err := db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
