package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle is a customer-owned car identified by its license plate.
type Vehicle struct {
	ID        string        `gorm:"primaryKey;size:36" json:"id"`
	Plate     string        `gorm:"uniqueIndex;size:20;not null" json:"plate"`
	Year      int           `json:"year"`
	OwnerID   string        `gorm:"size:36;index;not null" json:"ownerId"`
	Owner     *User         `gorm:"foreignKey:OwnerID" json:"-"`
	BrandID   string        `gorm:"size:36;index;not null" json:"brandId"`
	Brand     *Brand        `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	ModelID   string        `gorm:"size:36;index;not null" json:"modelId"`
	Model     *VehicleModel `gorm:"foreignKey:ModelID" json:"model,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (Vehicle) TableName() string { return "vehicles" }

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
