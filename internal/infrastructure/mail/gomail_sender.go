// Package mail implementa el envío de correos SMTP con gomail.
package mail

import (
	"context"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// GomailSender envía correos con un adjunto PDF opcional. Si el host SMTP
// está vacío el envío se omite y solo se deja registro (modo desarrollo).
type GomailSender struct {
	cfg config.SMTPConfig
	log *logger.Logger
}

// NewGomailSender construye el sender.
func NewGomailSender(cfg config.SMTPConfig, log *logger.Logger) *GomailSender {
	return &GomailSender{cfg: cfg, log: log}
}

// Send envía un correo con cuerpo HTML y, si attachment no es nil, lo
// adjunta con el nombre dado.
func (s *GomailSender) Send(ctx context.Context, to, subject, htmlBody string, attachment []byte, filename string) error {
	if s.cfg.Host == "" {
		s.log.Info().
			Str("to", to).
			Str("subject", subject).
			Msg("SMTP sin configurar; correo omitido")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	if attachment != nil {
		m.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)

	// gomail no acepta context; respetamos la cancelación antes de marcar.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar correo a %s: %w", to, err)
	}
	return nil
}
