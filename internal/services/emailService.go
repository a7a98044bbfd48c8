package services

import (
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"petlove/internal/config"
	"petlove/internal/metrics"
)

type EmailService interface {
	SendEmail(to, subject, msg string) error
}

type emailService struct {
	from   string
	dialer *gomail.Dialer
}

// NewEmailService returns an SMTP sender, or a sender that only logs when
// SMTP_HOST is not configured.
func NewEmailService(cfg *config.Config) EmailService {
	if !cfg.EmailEnabled() {
		log.Warn().Msg("SMTP_HOST not set, notification emails will only be logged")
		return logOnlyEmailService{}
	}

	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUsername
	}
	return &emailService{
		from:   from,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

func (e *emailService) SendEmail(to, subject, msg string) error {
	m := gomail.NewMessage()

	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", msg)

	if err := e.dialer.DialAndSend(m); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("failed").Inc()
		return err
	}
	metrics.EmailsSentTotal.WithLabelValues("sent").Inc()
	return nil
}

type logOnlyEmailService struct{}

func (logOnlyEmailService) SendEmail(to, subject, _ string) error {
	log.Info().Str("to", to).Str("subject", subject).Msg("Email delivery disabled, skipping")
	metrics.EmailsSentTotal.WithLabelValues("skipped").Inc()
	return nil
}
