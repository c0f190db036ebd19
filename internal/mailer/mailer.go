package mailer

import (
	"fmt"
	"io"

	gomail "github.com/go-mail/mail/v2"

	"dfseducation/internal/config"
)

// Mailer sends transactional mail. Callers treat delivery as best-effort;
// a failed send never blocks the triggering operation.
type Mailer interface {
	Send(to, subject, body string) error
}

// New returns the mailer selected by EMAIL_BACKEND: an SMTP sender or a
// console writer that logs messages instead of delivering them.
func New(cfg config.EmailConfig, out io.Writer) Mailer {
	if cfg.Backend == config.EmailBackendSMTP {
		return NewSMTP(cfg)
	}
	return NewConsole(cfg.DefaultFrom, out)
}

// smtpMailer delivers mail through an SMTP relay using gomail.
type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTP creates an SMTP mailer from the email configuration.
func NewSMTP(cfg config.EmailConfig) Mailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.HostUser, cfg.HostPassword)
	if cfg.UseTLS {
		d.StartTLSPolicy = gomail.MandatoryStartTLS
	}
	return &smtpMailer{dialer: d, from: cfg.DefaultFrom}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// consoleMailer writes messages to the given writer. Used in development
// and as the fallback when SMTP is not configured.
type consoleMailer struct {
	from string
	out  io.Writer
}

// NewConsole creates a console mailer writing to out.
func NewConsole(from string, out io.Writer) Mailer {
	return &consoleMailer{from: from, out: out}
}

func (m *consoleMailer) Send(to, subject, body string) error {
	_, err := fmt.Fprintf(m.out, "From: %s\nTo: %s\nSubject: %s\n\n%s\n%s\n",
		m.from, to, subject, body, "-----------------------------------")
	return err
}
