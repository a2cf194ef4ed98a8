package services

import (
	"errors"

	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/pkg/logger"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
	"gorm.io/gorm"
)

// NotificationService stores and delivers in-app notifications.
type NotificationService struct {
	db    *gorm.DB
	flags *FeatureFlagService
}

func NewNotificationService(db *gorm.DB, flags *FeatureFlagService) *NotificationService {
	return &NotificationService{db: db, flags: flags}
}

// Notify creates a notification for a user. Failures are logged but never
// propagated, a missed notification must not fail the triggering operation.
func (s *NotificationService) Notify(userID, title, message string) {
	if !s.flags.GetBool("notifications-enabled", true) {
		return
	}
	n := models.Notification{UserID: userID, Title: title, Message: message}
	if err := s.db.Create(&n).Error; err != nil {
		logger.Error().Err(err).
			Str("userId", userID).
			Str("title", title).
			Msg("failed to create notification")
	}
}

func (s *NotificationService) ListForUser(userID string, unreadOnly bool) ([]models.Notification, error) {
	var notifications []models.Notification
	query := s.db.Where("user_id = ?", userID).Order("created_at DESC")
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(id, userID string) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.First(&n, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("notification not found")
		}
		return nil, err
	}
	if !n.IsRead {
		n.IsRead = true
		if err := s.db.Model(&n).Update("is_read", true).Error; err != nil {
			return nil, err
		}
	}
	return &n, nil
}

func (s *NotificationService) MarkAllRead(userID string) (int64, error) {
	result := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (s *NotificationService) UnreadCount(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
