package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket claims a single seat for one session. The unique index on
// (session_id, row, seat) is what resolves concurrent bookings of the same
// seat: the second writer fails at commit instead of double-booking.
type Ticket struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	Row           int       `gorm:"not null;uniqueIndex:idx_tickets_session_seat"`
	Seat          int       `gorm:"not null;uniqueIndex:idx_tickets_session_seat"`
	SessionID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tickets_session_seat"`
	Session       Session
	ReservationID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}
