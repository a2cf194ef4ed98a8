package services

import (
	"errors"

	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
	"gorm.io/gorm"
)

type UserService struct {
	db    *gorm.DB
	flags *FeatureFlagService
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db, flags: NewFeatureFlagService(db)}
}

type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email" binding:"omitempty,email"`
}

// List returns users filtered by role. The customer-only flag flips the
// listing between CUSTOMER and WORKSHOP accounts.
func (s *UserService) List() ([]models.User, error) {
	role := models.RoleWorkshop
	if s.flags.GetBool("customer-only", false) {
		role = models.RoleCustomer
	}

	var users []models.User
	if err := s.db.Where("role = ?", role).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Update(id string, req *UpdateUserRequest) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && req.Email != user.Email {
		var count int64
		if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, response.NewConflict("a user with this email already exists")
		}
		user.Email = req.Email
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user; their refresh tokens go with them (cascade).
func (s *UserService) Delete(id string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.db.Delete(user).Error
}
