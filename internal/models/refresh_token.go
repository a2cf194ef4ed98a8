package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshToken is a long-lived revocable credential bound to one user and
// optionally one device. The token column stores the raw random value and is
// the lookup key; rows are deleted once expired.
type RefreshToken struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Token     string    `gorm:"uniqueIndex;size:128;not null" json:"-"`
	UserID    string    `gorm:"size:36;index;not null" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`
	DeviceID  string    `gorm:"size:100;index" json:"deviceId,omitempty"`
	UserAgent string    `gorm:"size:255" json:"userAgent,omitempty"`
	IPAddress string    `gorm:"size:64" json:"ipAddress,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
