package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendAssignmentNotice(toEmail, orgName, reportTitle string, reportId uint) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	enabled     bool
}

// NewEmailService builds the SMTP mailer. With an empty host the service
// becomes a no-op so local setups work without an SMTP account.
func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		enabled:     host != "",
	}
}

func (s *emailService) SendAssignmentNotice(toEmail, orgName, reportTitle string, reportId uint) error {
	if !s.enabled {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Report #%d assigned to %s", reportId, orgName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New report assignment</h2>
			<p>The city has assigned report <strong>#%d %s</strong> to %s.</p>
			<p>Please open the dashboard to triage it.</p>
		</div>
	`, reportId, reportTitle, orgName)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send assignment notice to %s: %w", toEmail, err)
	}
	return nil
}
