package validation

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type TableInput struct {
	TableName     string      `json:"table_name"`
	Capacity      interface{} `json:"capacity"`
	ReservationID interface{} `json:"reservation_id"`
}

// SeatInput accepts reservation_id as a number or a numeric string.
type SeatInput struct {
	ReservationID interface{} `json:"reservation_id"`
}

// NewTable validates a creation payload. A reservation_id seats the table
// straight away.
func NewTable(in *TableInput) (*models.Table, error) {
	if in == nil {
		return nil, utils.BadRequest("Data Missing!")
	}

	if utf8.RuneCountInString(in.TableName) < 2 {
		return nil, utils.BadRequest("Invalid table_name")
	}

	n, ok := in.Capacity.(float64)
	if !ok {
		return nil, utils.BadRequest("Invalid capacity")
	}
	capacity, ok := wholePositive(n)
	if !ok {
		return nil, utils.BadRequest("Invalid capacity")
	}

	t := &models.Table{
		TableName: in.TableName,
		Capacity:  capacity,
	}
	id, present, err := reservationID(in.ReservationID)
	if err != nil {
		return nil, err
	}
	if present {
		t.ReservationID = &id
		t.Occupied = true
	}
	return t, nil
}

// SeatReservationID extracts the reservation to seat.
func SeatReservationID(in *SeatInput) (uint, error) {
	if in == nil {
		return 0, utils.BadRequest("Data Missing!")
	}
	id, present, err := reservationID(in.ReservationID)
	if err != nil {
		return 0, err
	}
	if !present {
		return 0, utils.BadRequest("reservation_id is missing")
	}
	return id, nil
}

// Seatable rejects reservations that are already at a table or closed.
func Seatable(r *models.Reservation) error {
	if r.Status == models.StatusSeated {
		return utils.BadRequest("Guests are already seated")
	}
	if r.IsClosed() {
		return utils.BadRequest("Reservation %d is %s.", r.ReservationID, r.Status)
	}
	return nil
}

// Capacity checks that the table can take the party and is free.
func Capacity(t *models.Table, r *models.Reservation) error {
	if t.Capacity < r.People {
		return utils.BadRequest("Invalid capacity. %s is unable to seat %d people.", t.TableName, r.People)
	}
	if t.Occupied {
		return utils.BadRequest("%s is currently occupied.", t.TableName)
	}
	return nil
}

// Finishable requires the table to be in use.
func Finishable(t *models.Table) error {
	if !t.Occupied {
		return utils.BadRequest("%s is not occupied.", t.TableName)
	}
	return nil
}

// reservationID reads a decoded reservation_id. Absent, empty and zero count
// as not given.
func reservationID(v interface{}) (uint, bool, error) {
	switch x := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		if x == 0 {
			return 0, false, nil
		}
		if n, ok := wholePositive(x); ok {
			return uint(n), true, nil
		}
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false, nil
		}
		if n, err := strconv.ParseUint(s, 10, 32); err == nil {
			if n == 0 {
				return 0, false, nil
			}
			return uint(n), true, nil
		}
	}
	return 0, false, utils.BadRequest("Invalid reservation_id")
}
