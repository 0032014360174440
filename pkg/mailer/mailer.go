// Package mailer is the outbound email collaborator. Sending is always
// best-effort: callers must never fail a committed state transition because a
// notification could not be delivered.
package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog/log"

	"github.com/DhavalSuthar-24/transferportal/config"
)

// Mailer sends a single plain-text email.
type Mailer interface {
	Send(to, subject, body string) error
}

// NewFromConfig returns an SMTP mailer when a host is configured and a
// log-only mailer otherwise (development default).
func NewFromConfig(cfg *config.Config) Mailer {
	if cfg.SMTP.Host == "" {
		return &logMailer{}
	}
	return &smtpMailer{
		addr: cfg.SMTP.Host + ":" + cfg.SMTP.Port,
		auth: smtp.PlainAuth("", cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Host),
		from: cfg.SMTP.FromAddress,
	}
}

type smtpMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}

type logMailer struct{}

func (m *logMailer) Send(to, subject, body string) error {
	log.Info().Str("to", to).Str("subject", subject).Msg("mailer: email not sent (no SMTP host configured)")
	return nil
}

// SendBestEffort delivers through the given mailer and swallows any failure,
// logging it instead of returning it.
func SendBestEffort(m Mailer, to, subject, body string) {
	if to == "" {
		return
	}
	if err := m.Send(to, subject, body); err != nil {
		log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("mailer: send failed")
	}
}
