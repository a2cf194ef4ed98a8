package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Part is a priced spare part offered by a workshop.
type Part struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"size:200;not null" json:"name"`
	Reference  string    `gorm:"size:100" json:"reference,omitempty"`
	Price      float64   `gorm:"not null" json:"price"`
	WorkshopID string    `gorm:"size:36;index;not null" json:"workshopId"`
	Workshop   *Workshop `gorm:"foreignKey:WorkshopID" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// LaborTask is a priced unit of labor offered by a workshop.
type LaborTask struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	HourlyRate  float64   `gorm:"not null" json:"hourlyRate"`
	WorkshopID  string    `gorm:"size:36;index;not null" json:"workshopId"`
	Workshop    *Workshop `gorm:"foreignKey:WorkshopID" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Part) TableName() string      { return "parts" }
func (LaborTask) TableName() string { return "labor_tasks" }

func (p *Part) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (l *LaborTask) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
