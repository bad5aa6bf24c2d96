// Package mailer sends transactional email over SMTP.
package mailer

import (
	"context"
	"fmt"

	"marketplus/internal/config"
	"marketplus/internal/observability"

	gomail "github.com/wneessen/go-mail"
)

// Mailer sends transactional mail. Implementations must be safe for
// concurrent use.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, resetURL string) error
}

// SMTPMailer sends mail through a configured SMTP server.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer builds an SMTPMailer from the application config.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
	}
}

// SendPasswordReset delivers the password reset link to the user.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, name, resetURL string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set mail sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set mail recipient: %w", err)
	}
	msg.Subject("Reset your password")
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your password. Use the link below to choose a new one:\n\n%s\n\nThe link expires in 60 minutes. If you did not request a reset you can ignore this email.\n",
		name, resetURL,
	))

	opts := []gomail.Option{
		gomail.WithPort(m.port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if m.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.username),
			gomail.WithPassword(m.password),
		)
	}

	c, err := gomail.NewClient(m.host, opts...)
	if err != nil {
		observability.EmailDispatches.WithLabelValues("password_reset", "error").Inc()
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := c.DialAndSendWithContext(ctx, msg); err != nil {
		observability.EmailDispatches.WithLabelValues("password_reset", "error").Inc()
		return fmt.Errorf("send password reset mail: %w", err)
	}
	observability.EmailDispatches.WithLabelValues("password_reset", "ok").Inc()
	return nil
}
