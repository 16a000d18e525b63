package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Show struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Themes      []Theme   `gorm:"many2many:show_themes;"`
	Sessions    []Session `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (show *Show) BeforeCreate(tx *gorm.DB) (err error) {
	if show.ID == uuid.Nil {
		show.ID = uuid.New()
	}
	return
}
