package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workshop represents a repair shop that answers quotation requests.
type Workshop struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:200;not null" json:"name"`
	Address   string    `gorm:"size:500" json:"address,omitempty"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Workshop) TableName() string { return "workshops" }

func (w *Workshop) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
