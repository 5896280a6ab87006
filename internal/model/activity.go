package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity is a single logged entry. CreatedAt is server-assigned and never
// changes; Date is a user-editable display date (free-form YYYY-MM-DD).
type Activity struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID  `json:"user_id" gorm:"type:char(36);not null;index:idx_owner_created"`
	Title        string     `json:"title" gorm:"size:255;not null"`
	Description  string     `json:"description" gorm:"type:text;not null"`
	Date         string     `json:"date,omitempty" gorm:"size:32;index"`
	CreatedAt    time.Time  `json:"created_at" gorm:"index:idx_owner_created"`
	EditCount    int        `json:"edit_count" gorm:"not null;default:0"`
	LastEditedAt *time.Time `json:"last_edited_at,omitempty"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
