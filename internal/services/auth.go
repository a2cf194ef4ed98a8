package services

import (
	"errors"
	"time"

	"github.com/nmoreno/tallerplus/backend/internal/config"
	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/internal/utils"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password so the response never reveals which check failed.
var ErrInvalidCredentials = response.NewNotFound("user not found or invalid credentials")

// AuthService orchestrates login, registration, refresh rotation, logout and
// session listing over the credential store and the refresh token store.
type AuthService struct {
	db         *gorm.DB
	refreshSvc *RefreshTokenService
	jwtConfig  *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{
		db:         db,
		refreshSvc: NewRefreshTokenService(db, jwtCfg),
		jwtConfig:  jwtCfg,
	}
}

// RefreshTokens exposes the underlying refresh token store (cleanup task,
// session endpoints).
func (s *AuthService) RefreshTokens() *RefreshTokenService {
	return s.refreshSvc
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	DeviceID string `json:"deviceId"`
}

type RegisterRequest struct {
	FirstName  string  `json:"firstName" binding:"required"`
	LastName   string  `json:"lastName" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Phone      string  `json:"phone"`
	Password   string  `json:"password" binding:"required,min=8"`
	Role       string  `json:"role" binding:"required,oneof=CUSTOMER WORKSHOP ADMIN"`
	WorkshopID *string `json:"workshopId"`
	DeviceID   string  `json:"deviceId"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
	DeviceID     string `json:"deviceId"`
}

// TokenBundle is the response body of login, register and refresh.
type TokenBundle struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"` // access token lifetime in seconds
	TokenType    string `json:"tokenType"`
}

func (s *AuthService) accessTTL() time.Duration {
	return time.Duration(s.jwtConfig.AccessExpireMin) * time.Minute
}

func (s *AuthService) issueTokens(user *models.User, device DeviceContext) (*TokenBundle, error) {
	accessToken, err := utils.GenerateToken(user.ID, user.FirstName, user.LastName, user.Email, user.Role, s.accessTTL())
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.refreshSvc.Generate(user.ID, device)
	if err != nil {
		return nil, err
	}

	return &TokenBundle{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.accessTTL().Seconds()),
		TokenType:    "Bearer",
	}, nil
}

// Login verifies the credentials and issues a fresh token pair scoped to the
// supplied device context.
func (s *AuthService) Login(req *LoginRequest, device DeviceContext) (*TokenBundle, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, nil, ErrInvalidCredentials
	}

	bundle, err := s.issueTokens(&user, device)
	if err != nil {
		return nil, nil, err
	}

	LogInfo("Auth", "Login", "user logged in", &user.ID, device.IPAddress, device.UserAgent, nil)
	return bundle, &user, nil
}

// Register creates a user and immediately logs it in.
func (s *AuthService) Register(req *RegisterRequest, device DeviceContext) (*TokenBundle, *models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count > 0 {
		return nil, nil, response.NewConflict("a user with this email already exists")
	}

	if req.Role == models.RoleWorkshop && req.WorkshopID != nil {
		var wsCount int64
		if err := s.db.Model(&models.Workshop{}).Where("id = ?", *req.WorkshopID).Count(&wsCount).Error; err != nil {
			return nil, nil, err
		}
		if wsCount == 0 {
			return nil, nil, response.NewBadRequest("workshop not found")
		}
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := models.User{
		Email:      req.Email,
		Password:   hashed,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Role:       req.Role,
		WorkshopID: req.WorkshopID,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, nil, err
	}

	bundle, err := s.issueTokens(&user, device)
	if err != nil {
		return nil, nil, err
	}

	LogInfo("Auth", "Register", "user registered", &user.ID, device.IPAddress, device.UserAgent, nil)
	return bundle, &user, nil
}

// Refresh rotates the presented refresh token and issues a new access token.
// Claims are re-derived from the current user row so role or name changes take
// effect on the next refresh.
func (s *AuthService) Refresh(req *RefreshRequest, device DeviceContext) (*TokenBundle, error) {
	if req.DeviceID != "" {
		device.DeviceID = req.DeviceID
	}

	newRefresh, userID, err := s.refreshSvc.Rotate(req.RefreshToken, device)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshInvalid
		}
		return nil, err
	}

	accessToken, err := utils.GenerateToken(user.ID, user.FirstName, user.LastName, user.Email, user.Role, s.accessTTL())
	if err != nil {
		return nil, err
	}

	return &TokenBundle{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    int(s.accessTTL().Seconds()),
		TokenType:    "Bearer",
	}, nil
}

// Logout revokes the single refresh token if one was presented. Cookies are
// cleared by the handler regardless.
func (s *AuthService) Logout(refreshToken string) error {
	return s.refreshSvc.Revoke(refreshToken)
}

// LogoutAll revokes every live session the user owns.
func (s *AuthService) LogoutAll(userID string) error {
	if err := s.refreshSvc.RevokeAllForUser(userID); err != nil {
		return err
	}
	LogInfo("Auth", "LogoutAll", "all sessions revoked", &userID, "", "", nil)
	return nil
}

// LogoutDevice revokes the user's sessions on one device.
func (s *AuthService) LogoutDevice(userID, deviceID string) error {
	return s.refreshSvc.RevokeForDevice(userID, deviceID)
}

// ListSessions returns the user's active sessions, newest first.
func (s *AuthService) ListSessions(userID string) ([]SessionInfo, error) {
	return s.refreshSvc.ListActiveSessions(userID)
}

// DecodeAccessToken verifies an access token and returns its claims. Used by
// the "who am I" endpoint when the token comes from a cookie.
func (s *AuthService) DecodeAccessToken(token string) (*utils.Claims, error) {
	return utils.ParseToken(token)
}

// CreateAdminIfNotExists creates the default admin account on first boot.
func (s *AuthService) CreateAdminIfNotExists() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)

	if count == 0 {
		hashed, err := utils.HashPassword("ChangeMe123")
		if err != nil {
			return err
		}

		admin := models.User{
			Email:     "admin@tallerplus.local",
			Password:  hashed,
			FirstName: "Admin",
			LastName:  "Admin",
			Role:      models.RoleAdmin,
		}
		return s.db.Create(&admin).Error
	}

	return nil
}
