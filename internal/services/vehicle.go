package services

import (
	"errors"
	"strings"

	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
	"gorm.io/gorm"
)

// VehicleService manages customer vehicles.
type VehicleService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewVehicleService(db *gorm.DB, catalog *CatalogService) *VehicleService {
	return &VehicleService{db: db, catalog: catalog}
}

type CreateVehicleRequest struct {
	Plate   string `json:"plate" binding:"required"`
	Year    int    `json:"year" binding:"required,min=1950"`
	BrandID string `json:"brandId" binding:"required"`
	ModelID string `json:"modelId" binding:"required"`
}

type UpdateVehicleRequest struct {
	Plate   *string `json:"plate"`
	Year    *int    `json:"year"`
	BrandID *string `json:"brandId"`
	ModelID *string `json:"modelId"`
}

// normalizePlate keeps plate lookups case and whitespace insensitive.
func normalizePlate(plate string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), " ", ""))
}

// ListByOwner returns the vehicles registered to one customer.
func (s *VehicleService) ListByOwner(ownerID string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := s.db.Preload("Brand").Preload("Model").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (s *VehicleService) GetByID(id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.db.Preload("Brand").Preload("Model").First(&vehicle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("vehicle not found")
		}
		return nil, err
	}
	return &vehicle, nil
}

func (s *VehicleService) Create(ownerID string, req *CreateVehicleRequest) (*models.Vehicle, error) {
	plate := normalizePlate(req.Plate)
	if plate == "" {
		return nil, response.NewBadRequest("plate is required")
	}

	var count int64
	if err := s.db.Model(&models.Vehicle{}).Where("plate = ?", plate).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("a vehicle with this plate already exists")
	}

	model, err := s.catalog.GetModel(req.ModelID)
	if err != nil {
		return nil, err
	}
	if model.BrandID != req.BrandID {
		return nil, response.NewBadRequest("model does not belong to the given brand")
	}

	vehicle := models.Vehicle{
		Plate:   plate,
		Year:    req.Year,
		OwnerID: ownerID,
		BrandID: req.BrandID,
		ModelID: req.ModelID,
	}
	if err := s.db.Create(&vehicle).Error; err != nil {
		return nil, err
	}
	return s.GetByID(vehicle.ID)
}

func (s *VehicleService) Update(id string, req *UpdateVehicleRequest) (*models.Vehicle, error) {
	vehicle, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Plate != nil {
		plate := normalizePlate(*req.Plate)
		if plate == "" {
			return nil, response.NewBadRequest("plate cannot be empty")
		}
		if plate != vehicle.Plate {
			var count int64
			if err := s.db.Model(&models.Vehicle{}).Where("plate = ?", plate).Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, response.NewConflict("a vehicle with this plate already exists")
			}
		}
		vehicle.Plate = plate
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.BrandID != nil {
		vehicle.BrandID = *req.BrandID
	}
	if req.ModelID != nil {
		vehicle.ModelID = *req.ModelID
	}

	model, err := s.catalog.GetModel(vehicle.ModelID)
	if err != nil {
		return nil, err
	}
	if model.BrandID != vehicle.BrandID {
		return nil, response.NewBadRequest("model does not belong to the given brand")
	}

	if err := s.db.Save(vehicle).Error; err != nil {
		return nil, err
	}
	return s.GetByID(vehicle.ID)
}

func (s *VehicleService) Delete(id string) error {
	vehicle, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.db.Delete(vehicle).Error
}
