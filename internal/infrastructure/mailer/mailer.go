// Package mailer envía los correos transaccionales de Stocker por SMTP.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// Config conexión SMTP y remitente.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPMailer implementación SMTP del puerto Mailer de invitaciones.
type SMTPMailer struct {
	cfg    Config
	dialer *gomail.Dialer
}

// NewSMTPMailer construye el mailer. No abre conexión; gomail marca por
// mensaje.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// SendInvitation envía el correo de invitación con la URL de registro.
// Respeta la cancelación del contexto haciendo el envío en una goroutine.
func (m *SMTPMailer) SendInvitation(ctx context.Context, to, registrationURL, role string, expiresAt time.Time) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", invitationSubject(role))
	msg.SetBody("text/plain", invitationText(registrationURL, role, expiresAt))
	msg.AddAlternative("text/html", invitationHTML(registrationURL, role, expiresAt))

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.dialer.DialAndSend(msg)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("smtp: enviar invitación a %s: %w", to, err)
		}
		log.Debug().Str("to", to).Msg("correo de invitación entregado al SMTP")
		return nil
	}
}
