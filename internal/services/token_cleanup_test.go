package services

import (
	"testing"
	"time"

	"github.com/nmoreno/tallerplus/backend/internal/models"
)

func TestTokenCleanupRunNow(t *testing.T) {
	svc, user := newTestRefreshService(t)
	task := NewTokenCleanupTask(svc, nil)

	live, _ := svc.Generate(user.ID, DeviceContext{})
	expired, _ := svc.Generate(user.ID, DeviceContext{})
	svc.db.Model(&models.RefreshToken{}).
		Where("token = ?", expired).
		Update("expires_at", time.Now().Add(-24*time.Hour))

	deleted, err := task.RunNow()
	if err != nil {
		t.Fatalf("RunNow() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("RunNow() deleted = %d, expected 1", deleted)
	}

	if _, _, err := svc.Validate(live); err != nil {
		t.Errorf("live token should survive cleanup, got error = %v", err)
	}
}

// Revoked tokens whose expiry has passed are purged too; revoked but live
// tokens stay so the revocation record holds until expiry.
func TestTokenCleanupKeepsRevokedLiveTokens(t *testing.T) {
	svc, user := newTestRefreshService(t)
	task := NewTokenCleanupTask(svc, nil)

	revoked, _ := svc.Generate(user.ID, DeviceContext{})
	_ = svc.Revoke(revoked)

	revokedExpired, _ := svc.Generate(user.ID, DeviceContext{})
	_ = svc.Revoke(revokedExpired)
	svc.db.Model(&models.RefreshToken{}).
		Where("token = ?", revokedExpired).
		Update("expires_at", time.Now().Add(-time.Hour))

	deleted, err := task.RunNow()
	if err != nil {
		t.Fatalf("RunNow() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("RunNow() deleted = %d, expected 1", deleted)
	}

	var count int64
	svc.db.Model(&models.RefreshToken{}).Where("token = ?", revoked).Count(&count)
	if count != 1 {
		t.Error("revoked but unexpired token should remain until expiry")
	}
}

// The nightly sweep also trims audit entries past the retention window.
func TestTokenCleanupTrimsOldAuditEntries(t *testing.T) {
	svc, user := newTestRefreshService(t)
	auditSvc := NewAuditLogService(svc.db)
	task := NewTokenCleanupTask(svc, auditSvc)

	old := models.AuditLog{
		Level:     "info",
		Module:    "Auth",
		Action:    "Login",
		Message:   "user logged in",
		UserID:    &user.ID,
		CreatedAt: time.Now().AddDate(0, 0, -(auditRetentionDays + 1)),
	}
	recent := models.AuditLog{
		Level:     "info",
		Module:    "Auth",
		Action:    "Login",
		Message:   "user logged in",
		UserID:    &user.ID,
		CreatedAt: time.Now(),
	}
	if err := svc.db.Create(&old).Error; err != nil {
		t.Fatalf("failed to insert audit entry: %v", err)
	}
	if err := svc.db.Create(&recent).Error; err != nil {
		t.Fatalf("failed to insert audit entry: %v", err)
	}

	task.run()

	var count int64
	svc.db.Model(&models.AuditLog{}).Count(&count)
	if count != 1 {
		t.Errorf("audit entries after sweep = %d, expected 1", count)
	}
	svc.db.Model(&models.AuditLog{}).Where("id = ?", recent.ID).Count(&count)
	if count != 1 {
		t.Error("recent audit entry should survive the sweep")
	}
}

func TestTokenCleanupStartStop(t *testing.T) {
	svc, _ := newTestRefreshService(t)
	task := NewTokenCleanupTask(svc, nil)

	task.Start()
	task.Stop()
}
