package services

import (
	"errors"

	"github.com/nmoreno/tallerplus/backend/internal/models"
	"gorm.io/gorm"
)

// FeatureFlagService reads database-backed feature switches. Every lookup is
// a fresh read; flags flip without a restart.
type FeatureFlagService struct {
	db *gorm.DB
}

func NewFeatureFlagService(db *gorm.DB) *FeatureFlagService {
	return &FeatureFlagService{db: db}
}

// GetBool returns the flag value, or def when the flag does not exist.
func (s *FeatureFlagService) GetBool(key string, def bool) bool {
	var flag models.FeatureFlag
	if err := s.db.Where("key = ?", key).First(&flag).Error; err != nil {
		return def
	}
	return flag.Enabled
}

// Set creates or updates a flag.
func (s *FeatureFlagService) Set(key string, enabled bool) error {
	var flag models.FeatureFlag
	err := s.db.Where("key = ?", key).First(&flag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&models.FeatureFlag{Key: key, Enabled: enabled}).Error
	}
	if err != nil {
		return err
	}
	return s.db.Model(&flag).Update("enabled", enabled).Error
}

// List returns all flags.
func (s *FeatureFlagService) List() ([]models.FeatureFlag, error) {
	var flags []models.FeatureFlag
	if err := s.db.Order("key").Find(&flags).Error; err != nil {
		return nil, err
	}
	return flags, nil
}
