package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quotation request statuses
const (
	RequestStatusNew    = "NEW"
	RequestStatusQuoted = "QUOTED"
	RequestStatusClosed = "CLOSED"
)

// Quotation statuses
const (
	QuotationStatusPending  = "PENDING"
	QuotationStatusAccepted = "ACCEPTED"
	QuotationStatusRejected = "REJECTED"
)

// Quotation item kinds
const (
	ItemKindPart  = "PART"
	ItemKindLabor = "LABOR"
)

// QuotationRequest is a customer's description of a repair they want priced.
type QuotationRequest struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Description string    `gorm:"size:2000;not null" json:"description"`
	Status      string    `gorm:"size:20;default:NEW" json:"status"` // NEW, QUOTED, CLOSED
	CustomerID  string    `gorm:"size:36;index;not null" json:"customerId"`
	Customer    *User     `gorm:"foreignKey:CustomerID" json:"-"`
	VehicleID   string    `gorm:"size:36;index;not null" json:"vehicleId"`
	Vehicle     *Vehicle  `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Quotation is a workshop's itemized answer to a quotation request.
type Quotation struct {
	ID         string            `gorm:"primaryKey;size:36" json:"id"`
	Status     string            `gorm:"size:20;default:PENDING" json:"status"` // PENDING, ACCEPTED, REJECTED
	Total      float64           `json:"total"`
	RequestID  string            `gorm:"size:36;index;not null" json:"requestId"`
	Request    *QuotationRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	WorkshopID string            `gorm:"size:36;index;not null" json:"workshopId"`
	Workshop   *Workshop         `gorm:"foreignKey:WorkshopID" json:"workshop,omitempty"`
	Items      []QuotationItem   `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// QuotationItem is one part or labor line of a quotation.
type QuotationItem struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	QuotationID string    `gorm:"size:36;index;not null" json:"quotationId"`
	Kind        string    `gorm:"size:10;not null" json:"kind"` // PART, LABOR
	Description string    `gorm:"size:500;not null" json:"description"`
	Quantity    float64   `gorm:"default:1" json:"quantity"`
	UnitPrice   float64   `gorm:"not null" json:"unitPrice"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (QuotationRequest) TableName() string { return "quotation_requests" }
func (Quotation) TableName() string        { return "quotations" }
func (QuotationItem) TableName() string    { return "quotation_items" }

func (r *QuotationRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

func (i *QuotationItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// Subtotal returns the line total for the item.
func (i *QuotationItem) Subtotal() float64 {
	return i.Quantity * i.UnitPrice
}
