package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/yeremiapane/restaurant-reservations/models"
	"gorm.io/gorm"
)

// mobileDigits strips the punctuation people type into phone numbers so a
// search for "5550100" matches "555-0100" and "(555) 0100".
const mobileDigits = "REPLACE(REPLACE(REPLACE(REPLACE(REPLACE(mobile_number, '(', ''), ')', ''), '-', ''), ' ', ''), '.', '')"

type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// withTx binds the service to a running transaction.
func (s *ReservationService) withTx(tx *gorm.DB) *ReservationService {
	return &ReservationService{DB: tx}
}

// ListByDate returns the day's reservations that are not finished, earliest
// first.
func (s *ReservationService) ListByDate(ctx context.Context, date string) ([]models.Reservation, error) {
	reservations := []models.Reservation{}
	err := s.DB.WithContext(ctx).
		Where("reservation_date = ? AND status <> ?", date, models.StatusFinished).
		Order("reservation_time ASC").
		Order("reservation_id ASC").
		Find(&reservations).Error
	return reservations, err
}

// SearchByMobile matches any part of the mobile number, ignoring punctuation.
func (s *ReservationService) SearchByMobile(ctx context.Context, mobile string) ([]models.Reservation, error) {
	reservations := []models.Reservation{}

	q := s.DB.WithContext(ctx)
	if digits := onlyDigits(mobile); digits != "" {
		q = q.Where(mobileDigits+" LIKE ?", "%"+digits+"%")
	} else {
		q = q.Where("mobile_number LIKE ?", "%"+mobile+"%")
	}

	err := q.Order("reservation_date ASC").
		Order("reservation_time ASC").
		Find(&reservations).Error
	return reservations, err
}

func (s *ReservationService) Read(ctx context.Context, id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.DB.WithContext(ctx).First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *ReservationService) Create(ctx context.Context, r *models.Reservation) error {
	if r.Status == "" {
		r.Status = models.StatusBooked
	}
	return s.DB.WithContext(ctx).Create(r).Error
}

// UpdateStatus stores a new status unless the reservation is already
// finished. Seated guests cannot go back to booked, and leaving seated frees
// every table the reservation holds in the same transaction.
func (s *ReservationService) UpdateStatus(ctx context.Context, id uint, status string) (string, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.Reservation{}).
			Where("reservation_id = ? AND status <> ?", id, models.StatusFinished)
		if status == models.StatusBooked {
			q = q.Where("status <> ?", models.StatusSeated)
		}
		res := q.Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			current, err := s.withTx(tx).Read(ctx, id)
			if err != nil {
				return err
			}
			switch current.Status {
			case models.StatusFinished:
				return ErrReservationClosed
			case models.StatusSeated:
				return ErrReservationSeated
			}
			return nil
		}

		if status == models.StatusSeated {
			return nil
		}
		return tx.Model(&models.Table{}).
			Where("reservation_id = ?", id).
			Updates(map[string]interface{}{"reservation_id": nil, "occupied": false}).Error
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// Update replaces the guest-facing details. Status is left alone.
func (s *ReservationService) Update(ctx context.Context, id uint, details *models.Reservation) (*models.Reservation, error) {
	db := s.DB.WithContext(ctx)
	res := db.Model(&models.Reservation{}).
		Where("reservation_id = ?", id).
		Updates(map[string]interface{}{
			"first_name":       details.FirstName,
			"last_name":        details.LastName,
			"mobile_number":    details.MobileNumber,
			"people":           details.People,
			"reservation_date": details.ReservationDate,
			"reservation_time": details.ReservationTime,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	return s.Read(ctx, id)
}

// markSeated moves a booked reservation to seated. It only succeeds from
// booked, and seated never returns to booked, so two tables can never seat
// the same party.
func (s *ReservationService) markSeated(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Model(&models.Reservation{}).
		Where("reservation_id = ? AND status = ?", id, models.StatusBooked).
		Updates(map[string]interface{}{"status": models.StatusSeated, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	current, err := s.Read(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == models.StatusSeated {
		return ErrReservationSeated
	}
	return ErrReservationClosed
}

func (s *ReservationService) markFinished(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Model(&models.Reservation{}).
		Where("reservation_id = ?", id).
		Updates(map[string]interface{}{"status": models.StatusFinished, "updated_at": time.Now()}).Error
}

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
