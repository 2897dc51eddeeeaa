package services

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrTableOccupied     = errors.New("table is occupied")
	ErrTableNotOccupied  = errors.New("table is not occupied")
	ErrReservationSeated = errors.New("reservation is already seated")
	ErrReservationClosed = errors.New("reservation is finished or cancelled")
)
