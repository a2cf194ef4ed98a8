package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Brand is a vehicle manufacturer in the catalog.
type Brand struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VehicleModel is a model belonging to a brand; the name is unique per brand.
type VehicleModel struct {
	ID        string    `gorm:"primaryKey;size:36;" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_brand_model" json:"name"`
	BrandID   string    `gorm:"size:36;not null;uniqueIndex:idx_brand_model;index" json:"brandId"`
	Brand     *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Brand) TableName() string        { return "brands" }
func (VehicleModel) TableName() string { return "vehicle_models" }

func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (m *VehicleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
