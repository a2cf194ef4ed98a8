package services

import (
	"errors"

	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
	"gorm.io/gorm"
)

// CatalogService manages the brand and vehicle-model catalog.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type CreateBrandRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateModelRequest struct {
	Name    string `json:"name" binding:"required"`
	BrandID string `json:"brandId" binding:"required"`
}

func (s *CatalogService) ListBrands() ([]models.Brand, error) {
	var brands []models.Brand
	if err := s.db.Order("name").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (s *CatalogService) GetBrand(id string) (*models.Brand, error) {
	var brand models.Brand
	if err := s.db.First(&brand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("brand not found")
		}
		return nil, err
	}
	return &brand, nil
}

func (s *CatalogService) CreateBrand(req *CreateBrandRequest) (*models.Brand, error) {
	var count int64
	if err := s.db.Model(&models.Brand{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("a brand with this name already exists")
	}

	brand := models.Brand{Name: req.Name}
	if err := s.db.Create(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (s *CatalogService) DeleteBrand(id string) error {
	brand, err := s.GetBrand(id)
	if err != nil {
		return err
	}

	var modelCount int64
	if err := s.db.Model(&models.VehicleModel{}).Where("brand_id = ?", id).Count(&modelCount).Error; err != nil {
		return err
	}
	if modelCount > 0 {
		return response.NewConflict("brand still has models")
	}

	return s.db.Delete(brand).Error
}

// ListModels returns models, optionally filtered by brand.
func (s *CatalogService) ListModels(brandID string) ([]models.VehicleModel, error) {
	var vehicleModels []models.VehicleModel
	query := s.db.Preload("Brand").Order("name")
	if brandID != "" {
		query = query.Where("brand_id = ?", brandID)
	}
	if err := query.Find(&vehicleModels).Error; err != nil {
		return nil, err
	}
	return vehicleModels, nil
}

func (s *CatalogService) GetModel(id string) (*models.VehicleModel, error) {
	var model models.VehicleModel
	if err := s.db.Preload("Brand").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("model not found")
		}
		return nil, err
	}
	return &model, nil
}

func (s *CatalogService) CreateModel(req *CreateModelRequest) (*models.VehicleModel, error) {
	if _, err := s.GetBrand(req.BrandID); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.VehicleModel{}).
		Where("brand_id = ? AND name = ?", req.BrandID, req.Name).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("this brand already has a model with this name")
	}

	model := models.VehicleModel{Name: req.Name, BrandID: req.BrandID}
	if err := s.db.Create(&model).Error; err != nil {
		return nil, err
	}
	return &model, nil
}

func (s *CatalogService) DeleteModel(id string) error {
	model, err := s.GetModel(id)
	if err != nil {
		return err
	}
	return s.db.Delete(model).Error
}
