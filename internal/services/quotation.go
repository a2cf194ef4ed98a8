package services

import (
	"errors"
	"fmt"

	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
	"gorm.io/gorm"
)

// QuotationService manages workshop quotations and their acceptance flow.
type QuotationService struct {
	db            *gorm.DB
	requests      *QuotationRequestService
	notifications *NotificationService
}

func NewQuotationService(db *gorm.DB, requests *QuotationRequestService, notifications *NotificationService) *QuotationService {
	return &QuotationService{db: db, requests: requests, notifications: notifications}
}

type QuotationItemRequest struct {
	Kind        string  `json:"kind" binding:"required,oneof=PART LABOR"`
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" binding:"required,gt=0"`
}

type CreateQuotationRequest struct {
	RequestID string                 `json:"requestId" binding:"required"`
	Items     []QuotationItemRequest `json:"items" binding:"required,min=1,dive"`
}

func quotationTotal(items []models.QuotationItem) float64 {
	var total float64
	for i := range items {
		total += items[i].Subtotal()
	}
	return total
}

func (s *QuotationService) GetByID(id string) (*models.Quotation, error) {
	var quotation models.Quotation
	err := s.db.Preload("Items").Preload("Workshop").Preload("Request").
		First(&quotation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("quotation not found")
		}
		return nil, err
	}
	return &quotation, nil
}

// ListForRequest returns all quotations answering one request. Only the
// customer who filed the request may see them.
func (s *QuotationService) ListForRequest(requestID, customerID string) ([]models.Quotation, error) {
	request, err := s.requests.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if request.CustomerID != customerID {
		return nil, response.NewForbidden("request belongs to another customer")
	}

	var quotations []models.Quotation
	err = s.db.Preload("Items").Preload("Workshop").
		Where("request_id = ?", requestID).
		Order("created_at DESC").
		Find(&quotations).Error
	if err != nil {
		return nil, err
	}
	return quotations, nil
}

func (s *QuotationService) ListByWorkshop(workshopID string) ([]models.Quotation, error) {
	var quotations []models.Quotation
	err := s.db.Preload("Items").Preload("Request").
		Where("workshop_id = ?", workshopID).
		Order("created_at DESC").
		Find(&quotations).Error
	if err != nil {
		return nil, err
	}
	return quotations, nil
}

// Create files a quotation against an open request. The total is always
// recomputed from the items, client-supplied totals are ignored.
func (s *QuotationService) Create(workshopID string, req *CreateQuotationRequest) (*models.Quotation, error) {
	request, err := s.requests.GetByID(req.RequestID)
	if err != nil {
		return nil, err
	}
	if request.Status == models.RequestStatusClosed {
		return nil, response.NewConflict("request is closed")
	}

	var existing int64
	if err := s.db.Model(&models.Quotation{}).
		Where("request_id = ? AND workshop_id = ?", req.RequestID, workshopID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, response.NewConflict("workshop already quoted this request")
	}

	items := make([]models.QuotationItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.QuotationItem{
			Kind:        item.Kind,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	quotation := models.Quotation{
		Status:     models.QuotationStatusPending,
		Total:      quotationTotal(items),
		RequestID:  req.RequestID,
		WorkshopID: workshopID,
		Items:      items,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quotation).Error; err != nil {
			return err
		}
		return s.requests.markQuoted(tx, req.RequestID)
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(request.CustomerID, "New quotation received",
		fmt.Sprintf("A workshop has quoted your request for %.2f", quotation.Total))

	return s.GetByID(quotation.ID)
}

// Accept marks the quotation accepted, rejects every sibling quotation on the
// same request, closes the request and opens a work order, all in one
// transaction.
func (s *QuotationService) Accept(id, customerID string) (*models.WorkOrder, error) {
	quotation, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	request, err := s.requests.GetByID(quotation.RequestID)
	if err != nil {
		return nil, err
	}
	if request.CustomerID != customerID {
		return nil, response.NewForbidden("request belongs to another customer")
	}
	if quotation.Status != models.QuotationStatusPending {
		return nil, response.NewConflict("quotation is no longer pending")
	}

	workOrder := models.WorkOrder{
		Status:      models.WorkOrderStatusOpen,
		QuotationID: quotation.ID,
		VehicleID:   request.VehicleID,
		WorkshopID:  quotation.WorkshopID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		accepted := tx.Model(&models.Quotation{}).
			Where("id = ? AND status = ?", id, models.QuotationStatusPending).
			Update("status", models.QuotationStatusAccepted)
		if accepted.Error != nil {
			return accepted.Error
		}
		if accepted.RowsAffected == 0 {
			return response.NewConflict("quotation is no longer pending")
		}

		if err := tx.Model(&models.Quotation{}).
			Where("request_id = ? AND id != ? AND status = ?",
				quotation.RequestID, id, models.QuotationStatusPending).
			Update("status", models.QuotationStatusRejected).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.QuotationRequest{}).
			Where("id = ?", quotation.RequestID).
			Update("status", models.RequestStatusClosed).Error; err != nil {
			return err
		}

		return tx.Create(&workOrder).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifyWorkshop(quotation.WorkshopID, "Quotation accepted",
		"A customer accepted your quotation, a work order has been opened")

	return &workOrder, nil
}

// notifyWorkshop fans a notification out to every user attached to the
// workshop.
func (s *QuotationService) notifyWorkshop(workshopID, title, message string) {
	var users []models.User
	if err := s.db.Where("workshop_id = ?", workshopID).Find(&users).Error; err != nil {
		return
	}
	for i := range users {
		s.notifications.Notify(users[i].ID, title, message)
	}
}

// Reject declines a pending quotation. The request stays open for others.
func (s *QuotationService) Reject(id, customerID string) (*models.Quotation, error) {
	quotation, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	request, err := s.requests.GetByID(quotation.RequestID)
	if err != nil {
		return nil, err
	}
	if request.CustomerID != customerID {
		return nil, response.NewForbidden("request belongs to another customer")
	}
	if quotation.Status != models.QuotationStatusPending {
		return nil, response.NewConflict("quotation is no longer pending")
	}

	if err := s.db.Model(quotation).Update("status", models.QuotationStatusRejected).Error; err != nil {
		return nil, err
	}
	quotation.Status = models.QuotationStatusRejected

	s.notifyWorkshop(quotation.WorkshopID, "Quotation rejected",
		"A customer rejected your quotation")

	return quotation, nil
}
