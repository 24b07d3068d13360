package infra

import (
	"fmt"
	"net/smtp"

	"purobeach/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending confirmation emails with the
// PDF ticket attached.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendConfirmacion sends a reservation confirmation to the customer,
// attaching the PDF when pdfPath is not empty.
func (m *Mailer) SendConfirmacion(to, subject, body, pdfPath string) error {
	e := email.NewEmail()
	e.From = fmt.Sprintf("Puro Beach <%s>", m.user)
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
