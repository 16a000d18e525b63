package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dome is a physical venue with a fixed seat grid. Valid seat coordinates
// are [1..Rows] x [1..SeatsInRow].
type Dome struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	Name       string    `gorm:"not null"`
	Rows       int       `gorm:"not null"`
	SeatsInRow int       `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (dome *Dome) BeforeCreate(tx *gorm.DB) (err error) {
	if dome.ID == uuid.Nil {
		dome.ID = uuid.New()
	}
	return
}
