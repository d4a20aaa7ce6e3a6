package digest

import (
	"fmt"
	"strings"
	"time"

	gomail "gopkg.in/mail.v2"

	"marketwire/internal/model"
)

// MailerConfig holds SMTP settings for morning-brief delivery.
type MailerConfig struct {
	Host    string
	Port    int
	User    string
	Pass    string
	From    string
	To      string
	Enabled bool
}

// Mailer delivers freshly generated morning briefs over SMTP. Delivery is
// best-effort; a send failure never affects the pipeline run.
type Mailer struct {
	cfg MailerConfig
}

func NewMailer(cfg MailerConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Send(brief model.MorningBrief) error {
	if !m.cfg.Enabled {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.To)
	msg.SetHeader("Subject", brief.Title)
	msg.SetBody("text/plain", renderBrief(brief))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Pass)
	dialer.Timeout = 10 * time.Second

	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send brief: %w", err)
	}
	return nil
}

func renderBrief(brief model.MorningBrief) string {
	var sb strings.Builder
	sb.WriteString(brief.Title + "\n\n")
	for _, b := range brief.Bullets {
		sb.WriteString("* " + b + "\n")
	}
	if len(brief.WhatToWatch) > 0 {
		sb.WriteString("\nWhat to watch:\n")
		for _, w := range brief.WhatToWatch {
			sb.WriteString("* " + w + "\n")
		}
	}
	return sb.String()
}
