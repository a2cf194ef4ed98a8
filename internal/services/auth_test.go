package services

import (
	"errors"
	"testing"

	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/internal/utils"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	utils.SetJWTSecret("test-secret")
	return NewAuthService(setupTestDB(t), testJWTConfig())
}

func registerRequest(email string) *RegisterRequest {
	return &RegisterRequest{
		FirstName: "Nuria",
		LastName:  "Vidal",
		Email:     email,
		Password:  "password123",
		Role:      models.RoleCustomer,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(t)

	bundle, user, err := svc.Register(registerRequest("nuria@example.com"), DeviceContext{DeviceID: "web"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == "" {
		t.Error("registered user should have an id")
	}
	if user.Password == "password123" {
		t.Error("password must not be stored in plain text")
	}
	if bundle.AccessToken == "" || bundle.RefreshToken == "" {
		t.Fatal("registration should issue both tokens")
	}
	if bundle.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, expected %q", bundle.TokenType, "Bearer")
	}

	loginBundle, loginUser, err := svc.Login(&LoginRequest{
		Email:    "nuria@example.com",
		Password: "password123",
	}, DeviceContext{})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loginUser.ID != user.ID {
		t.Errorf("login user id = %q, expected %q", loginUser.ID, user.ID)
	}
	if loginBundle.RefreshToken == bundle.RefreshToken {
		t.Error("each login must issue a fresh refresh token")
	}

	claims, err := utils.ParseToken(loginBundle.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %q, expected %q", claims.UserID, user.ID)
	}
	if claims.Role != models.RoleCustomer {
		t.Errorf("claims.Role = %q, expected %q", claims.Role, models.RoleCustomer)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)

	if _, _, err := svc.Register(registerRequest("dup@example.com"), DeviceContext{}); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, _, err := svc.Register(registerRequest("dup@example.com"), DeviceContext{})
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 409 {
		t.Errorf("duplicate Register() error = %v, expected 409 conflict", err)
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestLoginFailureShape(t *testing.T) {
	svc := newTestAuthService(t)
	createTestUser(t, svc.db, "known@example.com", "correct-password", models.RoleCustomer)

	_, _, unknownErr := svc.Login(&LoginRequest{Email: "ghost@example.com", Password: "whatever1"}, DeviceContext{})
	_, _, wrongErr := svc.Login(&LoginRequest{Email: "known@example.com", Password: "wrong-password"}, DeviceContext{})

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, expected ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, expected ErrInvalidCredentials", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Error("failure messages must match for both cases")
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := newTestAuthService(t)

	bundle, user, err := svc.Register(registerRequest("rotate@example.com"), DeviceContext{DeviceID: "phone"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	refreshed, err := svc.Refresh(&RefreshRequest{RefreshToken: bundle.RefreshToken}, DeviceContext{DeviceID: "phone"})
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if refreshed.RefreshToken == bundle.RefreshToken {
		t.Error("Refresh() must rotate the refresh token")
	}

	claims, err := utils.ParseToken(refreshed.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %q, expected %q", claims.UserID, user.ID)
	}

	// The replaced token no longer refreshes.
	if _, err := svc.Refresh(&RefreshRequest{RefreshToken: bundle.RefreshToken}, DeviceContext{}); !errors.Is(err, ErrRefreshRevoked) {
		t.Errorf("stale Refresh() error = %v, expected ErrRefreshRevoked", err)
	}
}

// Role changes land in the access token on the next refresh because claims
// are rebuilt from the user row.
func TestRefreshPicksUpRoleChange(t *testing.T) {
	svc := newTestAuthService(t)

	bundle, user, err := svc.Register(registerRequest("promoted@example.com"), DeviceContext{})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	svc.db.Model(&models.User{}).Where("id = ?", user.ID).Update("role", models.RoleAdmin)

	refreshed, err := svc.Refresh(&RefreshRequest{RefreshToken: bundle.RefreshToken}, DeviceContext{})
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	claims, _ := utils.ParseToken(refreshed.AccessToken)
	if claims.Role != models.RoleAdmin {
		t.Errorf("claims.Role = %q, expected %q after role change", claims.Role, models.RoleAdmin)
	}
}

func TestLogoutAllKillsEverySession(t *testing.T) {
	svc := newTestAuthService(t)

	first, user, err := svc.Register(registerRequest("sessions@example.com"), DeviceContext{DeviceID: "a"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	second, _, err := svc.Login(&LoginRequest{Email: "sessions@example.com", Password: "password123", DeviceID: "b"}, DeviceContext{DeviceID: "b"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	sessions, err := svc.ListSessions(user.ID)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("ListSessions() = %d sessions, expected 2", len(sessions))
	}

	if err := svc.LogoutAll(user.ID); err != nil {
		t.Fatalf("LogoutAll() error = %v", err)
	}

	for _, token := range []string{first.RefreshToken, second.RefreshToken} {
		if _, err := svc.Refresh(&RefreshRequest{RefreshToken: token}, DeviceContext{}); !errors.Is(err, ErrRefreshRevoked) {
			t.Errorf("Refresh() after LogoutAll error = %v, expected ErrRefreshRevoked", err)
		}
	}

	sessions, _ = svc.ListSessions(user.ID)
	if len(sessions) != 0 {
		t.Errorf("ListSessions() after LogoutAll = %d sessions, expected 0", len(sessions))
	}
}

func TestCreateAdminIfNotExists(t *testing.T) {
	svc := newTestAuthService(t)

	if err := svc.CreateAdminIfNotExists(); err != nil {
		t.Fatalf("CreateAdminIfNotExists() error = %v", err)
	}
	if err := svc.CreateAdminIfNotExists(); err != nil {
		t.Fatalf("second CreateAdminIfNotExists() error = %v", err)
	}

	var count int64
	svc.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count != 1 {
		t.Errorf("admin count = %d, expected 1", count)
	}
}
