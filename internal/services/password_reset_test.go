package services

import (
	"errors"
	"testing"
	"time"

	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/internal/utils"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
)

func newTestResetService(t *testing.T) (*PasswordResetService, *AuthService) {
	t.Helper()
	utils.SetJWTSecret("test-secret")
	db := setupTestDB(t)
	return NewPasswordResetService(db, disabledEmailService()), NewAuthService(db, testJWTConfig())
}

func storedResetToken(t *testing.T, svc *PasswordResetService, email string) string {
	t.Helper()
	var user models.User
	if err := svc.db.Where("email = ?", email).First(&user).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if user.ResetPasswordToken == nil {
		t.Fatal("reset token was not stored")
	}
	return *user.ResetPasswordToken
}

func TestForgotPasswordStoresToken(t *testing.T) {
	svc, _ := newTestResetService(t)
	createTestUser(t, svc.db, "amaya@example.com", "oldpassword1", models.RoleCustomer)

	if err := svc.ForgotPassword("amaya@example.com"); err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}

	token := storedResetToken(t, svc, "amaya@example.com")
	if len(token) != 64 {
		t.Errorf("reset token length = %d, expected 64", len(token))
	}

	var user models.User
	svc.db.Where("email = ?", "amaya@example.com").First(&user)
	if user.ResetPasswordExpires == nil {
		t.Fatal("reset expiry was not stored")
	}
	remaining := time.Until(*user.ResetPasswordExpires)
	if remaining < 55*time.Minute || remaining > 65*time.Minute {
		t.Errorf("reset expiry %v from now, expected about 1 hour", remaining)
	}
}

// An unknown email is silently accepted so the endpoint cannot confirm which
// accounts exist.
func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _ := newTestResetService(t)

	if err := svc.ForgotPassword("nobody@example.com"); err != nil {
		t.Errorf("ForgotPassword() unknown email error = %v, expected nil", err)
	}
}

func TestResetPasswordRoundTrip(t *testing.T) {
	svc, authSvc := newTestResetService(t)
	createTestUser(t, svc.db, "amaya@example.com", "oldpassword1", models.RoleCustomer)

	if err := svc.ForgotPassword("amaya@example.com"); err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}
	token := storedResetToken(t, svc, "amaya@example.com")

	if err := svc.ResetPassword(token, "newpassword1"); err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	// Old password is out, new one works.
	if _, _, err := authSvc.Login(&LoginRequest{Email: "amaya@example.com", Password: "oldpassword1"}, DeviceContext{}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("login with old password error = %v, expected ErrInvalidCredentials", err)
	}
	if _, _, err := authSvc.Login(&LoginRequest{Email: "amaya@example.com", Password: "newpassword1"}, DeviceContext{}); err != nil {
		t.Errorf("login with new password error = %v", err)
	}
}

func TestResetPasswordTokenSingleUse(t *testing.T) {
	svc, _ := newTestResetService(t)
	createTestUser(t, svc.db, "amaya@example.com", "oldpassword1", models.RoleCustomer)

	svc.ForgotPassword("amaya@example.com")
	token := storedResetToken(t, svc, "amaya@example.com")

	if err := svc.ResetPassword(token, "newpassword1"); err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	err := svc.ResetPassword(token, "anotherpass1")
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 400 {
		t.Errorf("replayed ResetPassword() error = %v, expected 400", err)
	}

	var user models.User
	svc.db.Where("email = ?", "amaya@example.com").First(&user)
	if user.ResetPasswordToken != nil || user.ResetPasswordExpires != nil {
		t.Error("reset fields should be cleared after a successful reset")
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, _ := newTestResetService(t)
	createTestUser(t, svc.db, "amaya@example.com", "oldpassword1", models.RoleCustomer)

	svc.ForgotPassword("amaya@example.com")
	token := storedResetToken(t, svc, "amaya@example.com")

	svc.db.Model(&models.User{}).
		Where("email = ?", "amaya@example.com").
		Update("reset_password_expires", time.Now().Add(-time.Minute))

	err := svc.ResetPassword(token, "newpassword1")
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 400 {
		t.Errorf("expired ResetPassword() error = %v, expected 400", err)
	}
}

func TestResetPasswordUnknownToken(t *testing.T) {
	svc, _ := newTestResetService(t)

	err := svc.ResetPassword("not-a-token", "newpassword1")
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 400 {
		t.Errorf("unknown token ResetPassword() error = %v, expected 400", err)
	}
}

// A second forgot request replaces the first token.
func TestForgotPasswordReplacesToken(t *testing.T) {
	svc, _ := newTestResetService(t)
	createTestUser(t, svc.db, "amaya@example.com", "oldpassword1", models.RoleCustomer)

	svc.ForgotPassword("amaya@example.com")
	first := storedResetToken(t, svc, "amaya@example.com")

	svc.ForgotPassword("amaya@example.com")
	second := storedResetToken(t, svc, "amaya@example.com")

	if first == second {
		t.Fatal("second request should mint a new token")
	}
	if err := svc.ResetPassword(first, "newpassword1"); err == nil {
		t.Error("first token should be dead after replacement")
	}
	if err := svc.ResetPassword(second, "newpassword1"); err != nil {
		t.Errorf("second token should work, got error = %v", err)
	}
}
