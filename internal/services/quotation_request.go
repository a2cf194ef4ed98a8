package services

import (
	"errors"

	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
	"gorm.io/gorm"
)

// QuotationRequestService manages customer repair requests.
type QuotationRequestService struct {
	db *gorm.DB
}

func NewQuotationRequestService(db *gorm.DB) *QuotationRequestService {
	return &QuotationRequestService{db: db}
}

type CreateQuotationRequestRequest struct {
	Description string `json:"description" binding:"required,min=10"`
	VehicleID   string `json:"vehicleId" binding:"required"`
}

// ListOpen returns requests still awaiting quotations, newest first.
// Workshops browse this list to pick work to quote.
func (s *QuotationRequestService) ListOpen() ([]models.QuotationRequest, error) {
	var requests []models.QuotationRequest
	err := s.db.Preload("Vehicle").Preload("Vehicle.Brand").Preload("Vehicle.Model").
		Where("status IN ?", []string{models.RequestStatusNew, models.RequestStatusQuoted}).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *QuotationRequestService) ListByCustomer(customerID string) ([]models.QuotationRequest, error) {
	var requests []models.QuotationRequest
	err := s.db.Preload("Vehicle").Preload("Vehicle.Brand").Preload("Vehicle.Model").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *QuotationRequestService) GetByID(id string) (*models.QuotationRequest, error) {
	var request models.QuotationRequest
	err := s.db.Preload("Vehicle").Preload("Vehicle.Brand").Preload("Vehicle.Model").
		First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("quotation request not found")
		}
		return nil, err
	}
	return &request, nil
}

func (s *QuotationRequestService) Create(customerID string, req *CreateQuotationRequestRequest) (*models.QuotationRequest, error) {
	var vehicle models.Vehicle
	if err := s.db.First(&vehicle, "id = ?", req.VehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("vehicle not found")
		}
		return nil, err
	}
	if vehicle.OwnerID != customerID {
		return nil, response.NewForbidden("vehicle belongs to another customer")
	}

	request := models.QuotationRequest{
		Description: req.Description,
		Status:      models.RequestStatusNew,
		CustomerID:  customerID,
		VehicleID:   req.VehicleID,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}
	return s.GetByID(request.ID)
}

// Close marks a request closed so workshops stop quoting it. Only the owning
// customer can close it.
func (s *QuotationRequestService) Close(id, customerID string) (*models.QuotationRequest, error) {
	request, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request.CustomerID != customerID {
		return nil, response.NewForbidden("request belongs to another customer")
	}
	if request.Status == models.RequestStatusClosed {
		return request, nil
	}

	request.Status = models.RequestStatusClosed
	if err := s.db.Model(request).Update("status", models.RequestStatusClosed).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// markQuoted flips a NEW request to QUOTED when its first quotation lands.
func (s *QuotationRequestService) markQuoted(tx *gorm.DB, id string) error {
	return tx.Model(&models.QuotationRequest{}).
		Where("id = ? AND status = ?", id, models.RequestStatusNew).
		Update("status", models.RequestStatusQuoted).Error
}
