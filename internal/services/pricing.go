package services

import (
	"errors"

	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
	"gorm.io/gorm"
)

// PricingService manages a workshop's part and labor price lists.
type PricingService struct {
	db *gorm.DB
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{db: db}
}

type PartRequest struct {
	Name      string  `json:"name" binding:"required"`
	Reference string  `json:"reference"`
	Price     float64 `json:"price" binding:"required,gt=0"`
}

type LaborTaskRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	HourlyRate  float64 `json:"hourlyRate" binding:"required,gt=0"`
}

func (s *PricingService) ListParts(workshopID string) ([]models.Part, error) {
	var parts []models.Part
	if err := s.db.Where("workshop_id = ?", workshopID).Order("name").Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func (s *PricingService) GetPart(id string) (*models.Part, error) {
	var part models.Part
	if err := s.db.First(&part, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("part not found")
		}
		return nil, err
	}
	return &part, nil
}

func (s *PricingService) CreatePart(workshopID string, req *PartRequest) (*models.Part, error) {
	part := models.Part{
		Name:       req.Name,
		Reference:  req.Reference,
		Price:      req.Price,
		WorkshopID: workshopID,
	}
	if err := s.db.Create(&part).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

func (s *PricingService) UpdatePart(id, workshopID string, req *PartRequest) (*models.Part, error) {
	part, err := s.GetPart(id)
	if err != nil {
		return nil, err
	}
	if part.WorkshopID != workshopID {
		return nil, response.NewForbidden("part belongs to another workshop")
	}

	part.Name = req.Name
	part.Reference = req.Reference
	part.Price = req.Price
	if err := s.db.Save(part).Error; err != nil {
		return nil, err
	}
	return part, nil
}

func (s *PricingService) DeletePart(id, workshopID string) error {
	part, err := s.GetPart(id)
	if err != nil {
		return err
	}
	if part.WorkshopID != workshopID {
		return response.NewForbidden("part belongs to another workshop")
	}
	return s.db.Delete(part).Error
}

func (s *PricingService) ListLaborTasks(workshopID string) ([]models.LaborTask, error) {
	var tasks []models.LaborTask
	if err := s.db.Where("workshop_id = ?", workshopID).Order("name").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *PricingService) GetLaborTask(id string) (*models.LaborTask, error) {
	var task models.LaborTask
	if err := s.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("labor task not found")
		}
		return nil, err
	}
	return &task, nil
}

func (s *PricingService) CreateLaborTask(workshopID string, req *LaborTaskRequest) (*models.LaborTask, error) {
	task := models.LaborTask{
		Name:        req.Name,
		Description: req.Description,
		HourlyRate:  req.HourlyRate,
		WorkshopID:  workshopID,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *PricingService) UpdateLaborTask(id, workshopID string, req *LaborTaskRequest) (*models.LaborTask, error) {
	task, err := s.GetLaborTask(id)
	if err != nil {
		return nil, err
	}
	if task.WorkshopID != workshopID {
		return nil, response.NewForbidden("labor task belongs to another workshop")
	}

	task.Name = req.Name
	task.Description = req.Description
	task.HourlyRate = req.HourlyRate
	if err := s.db.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (s *PricingService) DeleteLaborTask(id, workshopID string) error {
	task, err := s.GetLaborTask(id)
	if err != nil {
		return err
	}
	if task.WorkshopID != workshopID {
		return response.NewForbidden("labor task belongs to another workshop")
	}
	return s.db.Delete(task).Error
}
