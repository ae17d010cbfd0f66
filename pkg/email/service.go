package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Service sends staff-facing mail.
type Service interface {
	SendCredentials(ctx context.Context, to, name, password string) error
	SendCustom(ctx context.Context, to, subject, body string) error
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendCredentials(ctx context.Context, to, name, password string) error {
	body := fmt.Sprintf(
		"Olá %s,\n\nSua conta de acesso ao sistema de atendimento foi criada.\n\nUsuário: %s\nSenha inicial: %s\n\nAltere a senha no primeiro acesso.",
		name, to, password,
	)
	return s.SendCustom(ctx, to, "Acesso ao sistema de atendimento", body)
}

func (s *smtpService) SendCustom(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
