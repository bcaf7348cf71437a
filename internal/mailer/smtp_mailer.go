package mailer

import (
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPMailer implements Mailer over SMTP using gomail.
type SMTPMailer struct {
	host     string
	port     int
	from     string
	password string
	logger   *logger.Logger
}

// NewSMTPMailer creates an SMTPMailer.
func NewSMTPMailer(host string, port int, from, password string, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		logger:   log.Named("SMTPMailer"),
	}
}

// SendListingDeletedEmail notifies a seller that their ad was
// permanently removed. Failures are the caller's to log; deletion never
// depends on this mail going out.
func (s *SMTPMailer) SendListingDeletedEmail(toEmail, listingTitle string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your ad has been deleted")
	m.SetBody("text/plain", "Your ad '"+listingTitle+"' has been permanently deleted from Bazaar.")

	d := gomail.NewDialer(s.host, s.port, s.from, s.password)
	if err := d.DialAndSend(m); err != nil {
		s.logger.Error("Failed to send listing deleted email",
			zap.String("to", toEmail), zap.Error(err))
		return err
	}
	s.logger.Info("Listing deleted email sent", zap.String("to", toEmail))
	return nil
}
