package services

import (
	"github.com/nmoreno/tallerplus/backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Audit entries older than this are dropped by the nightly sweep.
const auditRetentionDays = 90

// TokenCleanupTask deletes expired refresh tokens once a day and trims the
// audit log to its retention window on the same schedule. Best-effort
// housekeeping: failures are logged and swallowed, never surfaced to a request.
type TokenCleanupTask struct {
	refreshSvc    *RefreshTokenService
	auditSvc      *AuditLogService
	cronScheduler *cron.Cron
}

func NewTokenCleanupTask(refreshSvc *RefreshTokenService, auditSvc *AuditLogService) *TokenCleanupTask {
	return &TokenCleanupTask{refreshSvc: refreshSvc, auditSvc: auditSvc}
}

// Start registers the daily sweep at 02:00 and starts the scheduler.
func (t *TokenCleanupTask) Start() {
	t.cronScheduler = cron.New()

	if _, err := t.cronScheduler.AddFunc("0 2 * * *", t.run); err != nil {
		logger.Errorf("[TokenCleanup] Failed to schedule cleanup job: %v", err)
		return
	}

	t.cronScheduler.Start()
	logger.Infof("[TokenCleanup] Scheduler started (daily at 02:00)")
}

// Stop cancels the scheduled sweep.
func (t *TokenCleanupTask) Stop() {
	if t.cronScheduler != nil {
		t.cronScheduler.Stop()
	}
}

func (t *TokenCleanupTask) run() {
	deleted, err := t.refreshSvc.CleanupExpired()
	if err != nil {
		logger.Errorf("[TokenCleanup] Failed to cleanup expired tokens: %v", err)
	} else if deleted > 0 {
		logger.Infof("[TokenCleanup] Removed %d expired refresh tokens", deleted)
	}

	if t.auditSvc == nil {
		return
	}
	trimmed, err := t.auditSvc.CleanupOld(auditRetentionDays)
	if err != nil {
		logger.Errorf("[TokenCleanup] Failed to trim audit log: %v", err)
	} else if trimmed > 0 {
		logger.Infof("[TokenCleanup] Removed %d audit entries older than %d days", trimmed, auditRetentionDays)
	}
}

// RunNow triggers an out-of-band token sweep and returns the number of rows
// removed. Audit retention stays on the nightly schedule.
func (t *TokenCleanupTask) RunNow() (int64, error) {
	return t.refreshSvc.CleanupExpired()
}
