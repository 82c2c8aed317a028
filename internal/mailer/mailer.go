package mailer

import (
	"context"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/Skotchmaster/furnishing_catalog/internal/config"
	"github.com/Skotchmaster/furnishing_catalog/internal/logging"
	"github.com/Skotchmaster/furnishing_catalog/internal/service"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer delivers enquiry notifications to the shop owner.
type SMTPMailer struct {
	dialer dialer
	From   string
	To     string
	Now    func() time.Time
}

func New(cfg config.Config) *SMTPMailer {
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	d.SSL = cfg.SMTPPort == 465
	return &SMTPMailer{dialer: d, From: cfg.EmailFrom, To: cfg.OwnerEmail, Now: time.Now}
}

func (m *SMTPMailer) SendEnquiry(ctx context.Context, data service.EnquiryEmail) error {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	subject, html, text, err := Render(data, now())
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return err
		}
		logging.FromContext(ctx).Info("mail_sent", "to", m.To, "enquiry_id", data.EnquiryID)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
