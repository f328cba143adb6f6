// Package mailer sends transactional notifications over SMTP. Delivery is
// best effort; callers log failures and move on.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/stridekart/backend/pkg/config"
	"github.com/stridekart/backend/pkg/logger"
)

// Mailer sends plain-text notification mail.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer delivers through the configured SMTP relay.
type SMTPMailer struct {
	cfg  config.MailConfig
	logg *logger.Logger
}

// NewSMTPMailer constructs a mailer; it returns a no-op sender when mail is
// not configured so callers never need to branch.
func NewSMTPMailer(cfg config.MailConfig, logg *logger.Logger) Mailer {
	if !cfg.Enabled() {
		return &noopMailer{logg: logg}
	}
	return &SMTPMailer{cfg: cfg, logg: logg}
}

// Send delivers one message to a single recipient.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient is required")
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}

type noopMailer struct {
	logg *logger.Logger
}

func (n *noopMailer) Send(ctx context.Context, to, subject, body string) error {
	if n.logg != nil {
		n.logg.Info(n.logg.WithField(ctx, "mail_to", to), "mail disabled, skipping notification")
	}
	return nil
}
