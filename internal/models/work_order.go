package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Work order statuses
const (
	WorkOrderStatusOpen       = "OPEN"
	WorkOrderStatusInProgress = "IN_PROGRESS"
	WorkOrderStatusCompleted  = "COMPLETED"
)

// WorkOrder is the job a workshop performs after its quotation is accepted.
type WorkOrder struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Status      string     `gorm:"size:20;default:OPEN" json:"status"` // OPEN, IN_PROGRESS, COMPLETED
	QuotationID string     `gorm:"size:36;uniqueIndex;not null" json:"quotationId"`
	Quotation   *Quotation `gorm:"foreignKey:QuotationID" json:"quotation,omitempty"`
	VehicleID   string     `gorm:"size:36;index;not null" json:"vehicleId"`
	WorkshopID  string     `gorm:"size:36;index;not null" json:"workshopId"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (WorkOrder) TableName() string { return "work_orders" }

func (w *WorkOrder) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
