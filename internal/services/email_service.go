package services

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendInstallNotification(portalID int64, expiresAt time.Time) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
	ops    string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, opsEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
		ops:    opsEmail,
	}
}

// SendInstallNotification — письмо оператору о новой установке приложения.
func (s *emailService) SendInstallNotification(portalID int64, expiresAt time.Time) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.ops)
	m.SetHeader("Subject", fmt.Sprintf("HubSpot app installed in portal %d", portalID))

	body := fmt.Sprintf(`
		<h3>New HubSpot installation</h3>
		<p>Portal: <strong>%d</strong></p>
		<p>Access token valid until: %s</p>
	`, portalID, expiresAt.Format(time.RFC3339))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send install notification: %w", err)
	}
	return nil
}
