package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleCustomer = "CUSTOMER"
	RoleWorkshop = "WORKSHOP"
	RoleAdmin    = "ADMIN"
)

// User represents a platform account: a customer, a workshop member or an admin.
// The password column holds a bcrypt hash and is never serialized.
type User struct {
	ID                   string     `gorm:"primaryKey;size:36" json:"id"`
	Email                string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password             string     `gorm:"size:255;not null" json:"-"`
	FirstName            string     `gorm:"size:100;not null" json:"firstName"`
	LastName             string     `gorm:"size:100;not null" json:"lastName"`
	Phone                string     `gorm:"size:50" json:"phone,omitempty"`
	Role                 string     `gorm:"size:20;default:CUSTOMER" json:"role"` // CUSTOMER, WORKSHOP, ADMIN
	WorkshopID           *string    `gorm:"size:36;index" json:"workshopId,omitempty"`
	ResetPasswordToken   *string    `gorm:"uniqueIndex;size:64" json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// ValidRole reports whether role is one of the enumerated user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleWorkshop, RoleAdmin:
		return true
	}
	return false
}
