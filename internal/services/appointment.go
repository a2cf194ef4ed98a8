package services

import (
	"errors"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/es"

	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
	"gorm.io/gorm"
)

// AppointmentService schedules vehicle drop-offs at workshops. Drop-offs are
// only allowed on business days, weekends and public holidays are rejected.
type AppointmentService struct {
	db            *gorm.DB
	notifications *NotificationService
	calendar      *cal.BusinessCalendar
}

func NewAppointmentService(db *gorm.DB, notifications *NotificationService) *AppointmentService {
	c := cal.NewBusinessCalendar()
	c.Name = "workshop schedule"
	c.AddHoliday(es.Holidays...)
	return &AppointmentService{db: db, notifications: notifications, calendar: c}
}

type CreateAppointmentRequest struct {
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	WorkshopID  string    `json:"workshopId" binding:"required"`
	Notes       string    `json:"notes"`
	WorkOrderID *string   `json:"workOrderId"`
}

func (s *AppointmentService) GetByID(id string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("appointment not found")
		}
		return nil, err
	}
	return &appointment, nil
}

func (s *AppointmentService) ListByCustomer(customerID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Where("customer_id = ?", customerID).
		Order("scheduled_at").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *AppointmentService) ListByWorkshop(workshopID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Where("workshop_id = ?", workshopID).
		Order("scheduled_at").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *AppointmentService) Create(customerID string, req *CreateAppointmentRequest) (*models.Appointment, error) {
	if req.ScheduledAt.Before(time.Now()) {
		return nil, response.NewBadRequest("appointment must be in the future")
	}
	if !s.calendar.IsWorkday(req.ScheduledAt) {
		return nil, response.NewBadRequest("workshops are closed on this date")
	}

	var workshopCount int64
	if err := s.db.Model(&models.Workshop{}).Where("id = ?", req.WorkshopID).Count(&workshopCount).Error; err != nil {
		return nil, err
	}
	if workshopCount == 0 {
		return nil, response.NewNotFound("workshop not found")
	}

	if req.WorkOrderID != nil {
		var order models.WorkOrder
		if err := s.db.First(&order, "id = ?", *req.WorkOrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewNotFound("work order not found")
			}
			return nil, err
		}
		if order.WorkshopID != req.WorkshopID {
			return nil, response.NewBadRequest("work order belongs to another workshop")
		}
	}

	appointment := models.Appointment{
		ScheduledAt: req.ScheduledAt,
		Status:      models.AppointmentStatusScheduled,
		Notes:       req.Notes,
		CustomerID:  customerID,
		WorkshopID:  req.WorkshopID,
		WorkOrderID: req.WorkOrderID,
	}
	if err := s.db.Create(&appointment).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Cancel marks an appointment cancelled. Either side can cancel, but only
// while it is still scheduled.
func (s *AppointmentService) Cancel(id, userID, role string) (*models.Appointment, error) {
	appointment, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == models.RoleCustomer && appointment.CustomerID != userID {
		return nil, response.NewForbidden("appointment belongs to another customer")
	}
	if appointment.Status != models.AppointmentStatusScheduled {
		return nil, response.NewConflict("appointment is no longer scheduled")
	}

	if err := s.db.Model(appointment).Update("status", models.AppointmentStatusCancelled).Error; err != nil {
		return nil, err
	}
	appointment.Status = models.AppointmentStatusCancelled

	s.notifications.Notify(appointment.CustomerID, "Appointment cancelled",
		"Your appointment for "+appointment.ScheduledAt.Format("2006-01-02 15:04")+" was cancelled")

	return appointment, nil
}

// Complete marks a scheduled appointment done after the drop-off happened.
func (s *AppointmentService) Complete(id, workshopID string) (*models.Appointment, error) {
	appointment, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appointment.WorkshopID != workshopID {
		return nil, response.NewForbidden("appointment belongs to another workshop")
	}
	if appointment.Status != models.AppointmentStatusScheduled {
		return nil, response.NewConflict("appointment is no longer scheduled")
	}

	if err := s.db.Model(appointment).Update("status", models.AppointmentStatusDone).Error; err != nil {
		return nil, err
	}
	appointment.Status = models.AppointmentStatusDone
	return appointment, nil
}

// NextAvailableDay returns the first business day at or after the given time.
func (s *AppointmentService) NextAvailableDay(from time.Time) time.Time {
	day := from
	for !s.calendar.IsWorkday(day) {
		day = day.AddDate(0, 0, 1)
	}
	return day
}
