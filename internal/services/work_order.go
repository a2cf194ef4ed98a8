package services

import (
	"errors"
	"time"

	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
	"gorm.io/gorm"
)

// WorkOrderService tracks repair jobs from acceptance to completion.
type WorkOrderService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewWorkOrderService(db *gorm.DB, notifications *NotificationService) *WorkOrderService {
	return &WorkOrderService{db: db, notifications: notifications}
}

// validTransitions holds the allowed status moves. Orders only go forward.
var validTransitions = map[string]string{
	models.WorkOrderStatusOpen:       models.WorkOrderStatusInProgress,
	models.WorkOrderStatusInProgress: models.WorkOrderStatusCompleted,
}

func (s *WorkOrderService) GetByID(id string) (*models.WorkOrder, error) {
	var order models.WorkOrder
	err := s.db.Preload("Quotation").Preload("Quotation.Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("work order not found")
		}
		return nil, err
	}
	return &order, nil
}

func (s *WorkOrderService) ListByWorkshop(workshopID string) ([]models.WorkOrder, error) {
	var orders []models.WorkOrder
	err := s.db.Preload("Quotation").
		Where("workshop_id = ?", workshopID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByCustomer returns work orders on the customer's vehicles.
func (s *WorkOrderService) ListByCustomer(customerID string) ([]models.WorkOrder, error) {
	var orders []models.WorkOrder
	err := s.db.Preload("Quotation").
		Joins("JOIN vehicles ON vehicles.id = work_orders.vehicle_id").
		Where("vehicles.owner_id = ?", customerID).
		Order("work_orders.created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Advance moves a work order to the given status. Only the owning workshop
// can advance its orders, and only along OPEN -> IN_PROGRESS -> COMPLETED.
func (s *WorkOrderService) Advance(id, workshopID, status string) (*models.WorkOrder, error) {
	order, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.WorkshopID != workshopID {
		return nil, response.NewForbidden("work order belongs to another workshop")
	}
	if validTransitions[order.Status] != status {
		return nil, response.NewConflict("invalid status transition")
	}

	now := time.Now()
	updates := map[string]interface{}{"status": status}
	switch status {
	case models.WorkOrderStatusInProgress:
		updates["started_at"] = now
		order.StartedAt = &now
	case models.WorkOrderStatusCompleted:
		updates["completed_at"] = now
		order.CompletedAt = &now
	}

	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, err
	}
	order.Status = status

	var vehicle models.Vehicle
	if err := s.db.First(&vehicle, "id = ?", order.VehicleID).Error; err == nil {
		title := "Work order started"
		message := "Your repair is now in progress"
		if status == models.WorkOrderStatusCompleted {
			title = "Work order completed"
			message = "Your repair is finished, your vehicle is ready for pickup"
		}
		s.notifications.Notify(vehicle.OwnerID, title, message)
	}

	return order, nil
}
