package mailer

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/talkincode/foodhub/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const ContactSubject = "Thank you for contacting us!"

// Message a single plain-text email to one recipient
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers mail synchronously. There is no retry; the caller sees
// every failure.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	Verify(ctx context.Context) error
}

// ContactAcknowledgement builds the reply sent for a contact submission
func ContactAcknowledgement(to, name, about, signature string) Message {
	return Message{
		To:      to,
		Subject: ContactSubject,
		Body: fmt.Sprintf("Hello %s,\n\nThank you for your message: \"%s\".\n\nWe will get back to you soon!\n\nRegards,\n%s",
			name, about, signature),
	}
}

// SMTPMailer sends through one fixed account
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

var _ Sender = (*SMTPMailer)(nil)

// NewSMTPMailer port 465 gets implicit TLS, other ports use STARTTLS
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.Username,
	}
}

// Verify opens and closes one authenticated session
func (m *SMTPMailer) Verify(ctx context.Context) error {
	if m.from == "" {
		return errors.New("mail account not configured")
	}
	sc, err := m.dialer.Dial()
	if err != nil {
		return errors.Wrapf(err, "dial %s:%d", m.dialer.Host, m.dialer.Port)
	}
	return sc.Close()
}

// Send blocks until the server accepts or rejects the message. gomail has
// no context support; a started send always runs to completion.
func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return errors.Wrapf(err, "send mail to %s", msg.To)
	}
	zap.L().Info("mail sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
