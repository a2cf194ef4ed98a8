package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"net/url"
	"strings"

	"github.com/nmoreno/tallerplus/backend/internal/config"
	"github.com/nmoreno/tallerplus/backend/pkg/logger"
)

// EmailService builds and delivers transactional mail. Delivery goes through
// the task queue so SMTP round-trips never sit on a request's critical path.
// With email disabled in config, messages are logged instead of sent, which
// keeps development flows observable.
type EmailService struct {
	cfg   *config.EmailConfig
	queue TaskQueue
}

func NewEmailService(cfg *config.EmailConfig, queue TaskQueue) *EmailService {
	return &EmailService{cfg: cfg, queue: queue}
}

// SendPasswordResetEmail dispatches the reset link for the given token.
// Failures are logged and swallowed: the caller already committed the token
// and must return the generic response either way.
func (s *EmailService) SendPasswordResetEmail(email, resetToken string) {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s",
		strings.TrimSuffix(s.cfg.FrontendURL, "/"), url.QueryEscape(resetToken))

	if !s.cfg.Enabled || s.cfg.Host == "" {
		logger.Info().Str("to", email).Str("reset_url", resetURL).Msg("email disabled, reset link logged only")
		return
	}

	body := s.buildResetBody(resetURL)
	s.enqueue(&EmailTask{
		To:      email,
		Subject: "[TallerPlus] Password reset request",
		Body:    body,
	})
}

// SendPasswordChangeConfirmation notifies the user their password changed.
func (s *EmailService) SendPasswordChangeConfirmation(email string) {
	if !s.cfg.Enabled || s.cfg.Host == "" {
		logger.Info().Str("to", email).Msg("email disabled, password change confirmation logged only")
		return
	}

	s.enqueue(&EmailTask{
		To:      email,
		Subject: "[TallerPlus] Your password was changed",
		Body: "<html><body style=\"font-family: Arial, sans-serif;\">" +
			"<h2>Password changed</h2>" +
			"<p>Your TallerPlus password has been changed successfully.</p>" +
			"<p>If you did not make this change, contact support immediately.</p>" +
			"</body></html>",
	})
}

func (s *EmailService) enqueue(task *EmailTask) {
	if err := s.queue.Enqueue(task); err != nil {
		logger.Warn().Err(err).Str("to", task.To).Msg("failed to enqueue email")
	}
}

func (s *EmailService) buildResetBody(resetURL string) string {
	var sb strings.Builder

	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString("<h2>Password reset</h2>")
	sb.WriteString("<p>We received a request to reset your TallerPlus password.</p>")
	sb.WriteString(fmt.Sprintf("<p><a href=\"%s\" style=\"background: #1a73e8; color: #fff; padding: 10px 16px; border-radius: 4px; text-decoration: none;\">Reset password</a></p>", resetURL))
	sb.WriteString(fmt.Sprintf("<p style=\"color: #888;\">Or copy this link: %s</p>", resetURL))
	sb.WriteString("<p>The link expires in 1 hour. If you did not request a reset, you can ignore this email.</p>")
	sb.WriteString("</body></html>")

	return sb.String()
}

// Deliver sends one queued email over SMTP. Registered as the task queue
// processor.
func (s *EmailService) Deliver(ctx context.Context, task *EmailTask) error {
	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}
	to := []string{task.To}

	headers := make(map[string]string)
	headers["From"] = from
	headers["To"] = task.To
	headers["Subject"] = task.Subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var message strings.Builder
	for k, v := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	message.WriteString("\r\n")
	message.WriteString(task.Body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" && s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	var err error
	if s.cfg.UseTLS {
		err = s.deliverTLS(addr, auth, from, to, message.String())
	} else {
		err = smtp.SendMail(addr, auth, from, to, []byte(message.String()))
	}

	if err != nil {
		logger.Warn().Err(err).Str("to", task.To).Msg("failed to send email")
		return err
	}

	logger.Info().Str("to", task.To).Str("subject", task.Subject).Msg("email sent")
	return nil
}

func (s *EmailService) deliverTLS(addr string, auth smtp.Auth, from string, to []string, message string) error {
	tlsConfig := &tls.Config{
		ServerName: s.cfg.Host,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}

	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}

	if _, err = w.Write([]byte(message)); err != nil {
		return err
	}

	return w.Close()
}
