package models

import "time"

type Table struct {
	TableID       uint      `gorm:"column:table_id;primaryKey" json:"table_id"`
	TableName     string    `gorm:"type:varchar(100);not null;index" json:"table_name"`
	Capacity      int       `gorm:"not null" json:"capacity"`
	Occupied      bool      `gorm:"not null;default:false" json:"occupied"`
	ReservationID *uint     `gorm:"column:reservation_id;index" json:"reservation_id"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
