package models

import "time"

// Reservation statuses. Finished is terminal; cancelled is reachable from
// any non-terminal status.
const (
	StatusBooked    = "booked"
	StatusSeated    = "seated"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

type Reservation struct {
	ReservationID   uint      `gorm:"column:reservation_id;primaryKey" json:"reservation_id"`
	FirstName       string    `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName        string    `gorm:"type:varchar(255);not null" json:"last_name"`
	MobileNumber    string    `gorm:"type:varchar(50);not null;index" json:"mobile_number"`
	People          int       `gorm:"not null" json:"people"`
	ReservationDate string    `gorm:"type:varchar(10);not null;index" json:"reservation_date"`
	ReservationTime string    `gorm:"type:varchar(5);not null" json:"reservation_time"`
	Status          string    `gorm:"type:varchar(20);not null;default:'booked'" json:"status"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

// IsClosed reports whether the reservation can no longer be seated.
func (r *Reservation) IsClosed() bool {
	return r.Status == StatusFinished || r.Status == StatusCancelled
}
