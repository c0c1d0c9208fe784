// Package email delivers notifications over SMTP.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"quarters/internal/shared/config"
)

// SMTPSender implements notification.Sender over a single SMTP account.
type SMTPSender struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
	}
}

func (s *SMTPSender) Send(to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
