package services

import (
	"errors"

	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
	"gorm.io/gorm"
)

type WorkshopService struct {
	db *gorm.DB
}

func NewWorkshopService(db *gorm.DB) *WorkshopService {
	return &WorkshopService{db: db}
}

type CreateWorkshopRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
}

type UpdateWorkshopRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
}

func (s *WorkshopService) List() ([]models.Workshop, error) {
	var workshops []models.Workshop
	if err := s.db.Order("name").Find(&workshops).Error; err != nil {
		return nil, err
	}
	return workshops, nil
}

func (s *WorkshopService) GetByID(id string) (*models.Workshop, error) {
	var workshop models.Workshop
	if err := s.db.First(&workshop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("workshop not found")
		}
		return nil, err
	}
	return &workshop, nil
}

func (s *WorkshopService) Create(req *CreateWorkshopRequest) (*models.Workshop, error) {
	var count int64
	if err := s.db.Model(&models.Workshop{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("a workshop with this name already exists")
	}

	workshop := models.Workshop{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if err := s.db.Create(&workshop).Error; err != nil {
		return nil, err
	}
	return &workshop, nil
}

func (s *WorkshopService) Update(id string, req *UpdateWorkshopRequest) (*models.Workshop, error) {
	workshop, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		workshop.Name = req.Name
	}
	if req.Address != "" {
		workshop.Address = req.Address
	}
	if req.Phone != "" {
		workshop.Phone = req.Phone
	}
	if req.Email != "" {
		workshop.Email = req.Email
	}

	if err := s.db.Save(workshop).Error; err != nil {
		return nil, err
	}
	return workshop, nil
}

func (s *WorkshopService) Delete(id string) error {
	workshop, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.db.Delete(workshop).Error
}
