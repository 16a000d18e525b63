package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Theme struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"not null"`
	Shows     []Show    `gorm:"many2many:show_themes;"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (theme *Theme) BeforeCreate(tx *gorm.DB) (err error) {
	if theme.ID == uuid.Nil {
		theme.ID = uuid.New()
	}
	return
}
