package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"

	"github.com/careaxis/hms-api/internal/config"
)

type smtpService struct {
	dialer *gomail.Dialer
	from   string
	logger zerolog.Logger
}

func NewSMTPService(cfg config.SMTPConfig, logger zerolog.Logger) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

func (s *smtpService) SendPasswordReset(ctx context.Context, email, token string) error {
	body := fmt.Sprintf(
		"A password reset was requested for your account.\n\nReset token: %s\n\nThe token expires in one hour. If you did not request this, ignore this message.",
		token,
	)
	return s.send(ctx, email, "Password reset", body)
}

func (s *smtpService) SendWelcome(ctx context.Context, email, name string) error {
	body := fmt.Sprintf("Welcome %s, your account has been created.", name)
	return s.send(ctx, email, "Welcome", body)
}

func (s *smtpService) SendCustom(ctx context.Context, to, subject, content string) error {
	return s.send(ctx, to, subject, content)
}

func (s *smtpService) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Debug().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
