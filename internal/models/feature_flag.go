package models

import "time"

// FeatureFlag is a database-backed boolean switch consulted at request time.
type FeatureFlag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"uniqueIndex;size:100;not null" json:"key"`
	Enabled     bool      `gorm:"default:false" json:"enabled"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (FeatureFlag) TableName() string { return "feature_flags" }
