package services

import (
	"errors"
	"time"

	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/internal/utils"
	"github.com/nmoreno/tallerplus/backend/pkg/logger"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
	"gorm.io/gorm"
)

// ForgotPasswordMessage is returned whether or not the email exists, so the
// endpoint cannot be used to enumerate accounts.
const ForgotPasswordMessage = "if the email exists, a password reset link has been sent"

const resetTokenTTL = time.Hour

// PasswordResetService issues time-boxed single-use reset tokens and consumes
// them to set a new password.
type PasswordResetService struct {
	db       *gorm.DB
	emailSvc *EmailService
}

func NewPasswordResetService(db *gorm.DB, emailSvc *EmailService) *PasswordResetService {
	return &PasswordResetService{db: db, emailSvc: emailSvc}
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ForgotPassword stores a reset token on the user record and dispatches the
// reset email. An unknown email is not an error: the caller returns the same
// generic message either way.
func (s *PasswordResetService) ForgotPassword(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Debug().Str("email", email).Msg("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := randomToken(32)
	if err != nil {
		return err
	}

	expires := time.Now().Add(resetTokenTTL)
	err = s.db.Model(&user).Updates(map[string]interface{}{
		"reset_password_token":   token,
		"reset_password_expires": expires,
	}).Error
	if err != nil {
		return err
	}

	s.emailSvc.SendPasswordResetEmail(user.Email, token)
	LogInfo("Auth", "ForgotPassword", "password reset requested", &user.ID, "", "", nil)
	return nil
}

// ResetPassword consumes a reset token: it must match a user and not be
// expired. On success the password is replaced and both reset fields are
// cleared so the token cannot be replayed.
func (s *PasswordResetService) ResetPassword(token, newPassword string) error {
	var user models.User
	err := s.db.
		Where("reset_password_token = ? AND reset_password_expires >= ?", token, time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewBadRequest("invalid or expired token")
		}
		return err
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	err = s.db.Model(&user).Updates(map[string]interface{}{
		"password":               hashed,
		"reset_password_token":   nil,
		"reset_password_expires": nil,
	}).Error
	if err != nil {
		return err
	}

	s.emailSvc.SendPasswordChangeConfirmation(user.Email)
	LogInfo("Auth", "ResetPassword", "password reset completed", &user.ID, "", "", nil)
	return nil
}
