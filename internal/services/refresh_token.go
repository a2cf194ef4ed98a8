package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/nmoreno/tallerplus/backend/internal/config"
	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/pkg/logger"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
	"gorm.io/gorm"
)

// Refresh token failure modes. All surface as 401; the message is the
// sub-reason and is kept in logs.
var (
	ErrRefreshInvalid = response.NewUnauthorized("invalid refresh token")
	ErrRefreshRevoked = response.NewUnauthorized("refresh token revoked")
	ErrRefreshExpired = response.NewUnauthorized("refresh token expired")
)

// RefreshTokenService persists and validates long-lived refresh tokens.
// Tokens are stored as the raw random value and looked up by exact string
// match; every validation is a fresh read, no cache sits in front.
type RefreshTokenService struct {
	db         *gorm.DB
	expireDays int
}

func NewRefreshTokenService(db *gorm.DB, jwtCfg *config.JWTConfig) *RefreshTokenService {
	days := 30
	if jwtCfg != nil && jwtCfg.RefreshExpireDays > 0 {
		days = jwtCfg.RefreshExpireDays
	}
	return &RefreshTokenService{db: db, expireDays: days}
}

// DeviceContext carries optional client-supplied device identity plus the
// observed user agent and IP.
type DeviceContext struct {
	DeviceID  string
	UserAgent string
	IPAddress string
}

// SessionInfo describes one active session without exposing the token value.
type SessionInfo struct {
	ID        string    `json:"id"`
	DeviceID  string    `json:"deviceId,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Generate creates a refresh token for the user and returns the raw value.
func (s *RefreshTokenService) Generate(userID string, device DeviceContext) (string, error) {
	return s.generate(s.db, userID, device)
}

func (s *RefreshTokenService) generate(db *gorm.DB, userID string, device DeviceContext) (string, error) {
	token, err := randomToken(64)
	if err != nil {
		return "", err
	}

	record := models.RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().AddDate(0, 0, s.expireDays),
		DeviceID:  device.DeviceID,
		UserAgent: device.UserAgent,
		IPAddress: device.IPAddress,
	}
	if err := db.Create(&record).Error; err != nil {
		return "", err
	}

	logger.Debug().Str("user_id", userID).Str("device_id", device.DeviceID).Msg("refresh token issued")
	return token, nil
}

// Validate looks up a token and returns the owning user and the row id.
// Check order matters: not-found, then revoked, then expired. An expired row
// is deleted as a side effect.
func (s *RefreshTokenService) Validate(token string) (userID, tokenID string, err error) {
	var stored models.RefreshToken
	if err := s.db.Where("token = ?", token).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrRefreshInvalid
		}
		return "", "", err
	}

	if stored.IsRevoked {
		return "", "", ErrRefreshRevoked
	}

	if stored.ExpiresAt.Before(time.Now()) {
		if err := s.db.Delete(&models.RefreshToken{}, "id = ?", stored.ID).Error; err != nil {
			logger.Warn().Err(err).Str("token_id", stored.ID).Msg("failed to delete expired refresh token")
		}
		return "", "", ErrRefreshExpired
	}

	return stored.UserID, stored.ID, nil
}

// Revoke marks the matching token revoked. Idempotent: revoking an unknown or
// already-revoked token is not an error.
func (s *RefreshTokenService) Revoke(token string) error {
	if token == "" {
		return nil
	}
	return s.db.Model(&models.RefreshToken{}).
		Where("token = ?", token).
		Update("is_revoked", true).Error
}

// RevokeAllForUser revokes every live token the user owns ("logout everywhere").
func (s *RefreshTokenService) RevokeAllForUser(userID string) error {
	return s.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Update("is_revoked", true).Error
}

// RevokeForDevice revokes the user's live tokens scoped to one device.
func (s *RefreshTokenService) RevokeForDevice(userID, deviceID string) error {
	return s.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND device_id = ? AND is_revoked = ?", userID, deviceID, false).
		Update("is_revoked", true).Error
}

// Rotate exchanges a valid token for a fresh one bound to the same user,
// revoking the old token, and returns the new token with the owning user id.
// The revocation is a conditional update inside a transaction: when two
// requests race on the same token, only the one whose update flips is_revoked
// wins; the loser observes "revoked".
func (s *RefreshTokenService) Rotate(oldToken string, device DeviceContext) (newToken, userID string, err error) {
	userID, tokenID, err := s.Validate(oldToken)
	if err != nil {
		return "", "", err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.RefreshToken{}).
			Where("id = ? AND is_revoked = ?", tokenID, false).
			Update("is_revoked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRefreshRevoked
		}

		token, err := s.generate(tx, userID, device)
		if err != nil {
			return err
		}
		newToken = token
		return nil
	})
	if err != nil {
		return "", "", err
	}

	return newToken, userID, nil
}

// ListActiveSessions returns the user's non-revoked, non-expired tokens,
// newest first, excluding the raw token value.
func (s *RefreshTokenService) ListActiveSessions(userID string) ([]SessionInfo, error) {
	var tokens []models.RefreshToken
	err := s.db.
		Where("user_id = ? AND is_revoked = ? AND expires_at >= ?", userID, false, time.Now()).
		Order("created_at DESC").
		Find(&tokens).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]SessionInfo, 0, len(tokens))
	for _, t := range tokens {
		sessions = append(sessions, SessionInfo{
			ID:        t.ID,
			DeviceID:  t.DeviceID,
			UserAgent: t.UserAgent,
			IPAddress: t.IPAddress,
			CreatedAt: t.CreatedAt,
			ExpiresAt: t.ExpiresAt,
		})
	}
	return sessions, nil
}

// CleanupExpired bulk-deletes every token whose expiry is in the past,
// regardless of revocation state, and returns the number removed.
func (s *RefreshTokenService) CleanupExpired() (int64, error) {
	res := s.db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// randomToken returns n random bytes hex-encoded (2n characters).
func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
