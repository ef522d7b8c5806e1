package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/foodhub/config"
)

func TestContactAcknowledgement(t *testing.T) {
	msg := ContactAcknowledgement("jo@example.com", "Jo", "Great pizza", "Your Company")

	assert.Equal(t, "jo@example.com", msg.To)
	assert.Equal(t, "Thank you for contacting us!", msg.Subject)
	assert.Equal(t,
		"Hello Jo,\n\nThank you for your message: \"Great pizza\".\n\nWe will get back to you soon!\n\nRegards,\nYour Company",
		msg.Body)
}

func TestVerifyWithoutAccount(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{Host: "127.0.0.1", Port: 465})
	assert.Error(t, m.Verify(context.Background()))
}

func TestSendIgnoresCancelledContext(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{Host: "127.0.0.1", Port: 1, Username: "a@example.com"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// the dial is still attempted, so the failure comes from the server
	err := m.Send(ctx, Message{To: "b@example.com", Subject: "s", Body: "b"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "send mail to b@example.com")
}

func TestSendUnreachableServer(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{Host: "127.0.0.1", Port: 1, Username: "a@example.com"})
	err := m.Send(context.Background(), Message{To: "b@example.com", Subject: "s", Body: "b"})
	assert.Error(t, err)
}
