package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation groups the tickets a user booked in one atomic transaction.
// It is created once and never mutated afterwards.
type Reservation struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	User      User
	Tickets   []Ticket `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (reservation *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	return
}
