package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session schedules a Show in a Dome at a specific time. The unique index on
// (dome_id, show_time) keeps a dome from hosting two sessions at once.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ShowID    uuid.UUID `gorm:"type:uuid;not null"`
	Show      Show
	DomeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sessions_dome_time"`
	Dome      Dome
	ShowTime  time.Time `gorm:"not null;uniqueIndex:idx_sessions_dome_time"`
	Tickets   []Ticket  `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (session *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	return
}
