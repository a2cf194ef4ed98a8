package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses
const (
	AppointmentStatusScheduled = "SCHEDULED"
	AppointmentStatusCancelled = "CANCELLED"
	AppointmentStatusDone      = "DONE"
)

// Appointment is a scheduled vehicle drop-off at a workshop.
type Appointment struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	ScheduledAt time.Time  `gorm:"index;not null" json:"scheduledAt"`
	Status      string     `gorm:"size:20;default:SCHEDULED" json:"status"` // SCHEDULED, CANCELLED, DONE
	Notes       string     `gorm:"size:1000" json:"notes,omitempty"`
	CustomerID  string     `gorm:"size:36;index;not null" json:"customerId"`
	WorkshopID  string     `gorm:"size:36;index;not null" json:"workshopId"`
	WorkOrderID *string    `gorm:"size:36;index" json:"workOrderId,omitempty"`
	WorkOrder   *WorkOrder `gorm:"foreignKey:WorkOrderID" json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Appointment) TableName() string { return "appointments" }

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
