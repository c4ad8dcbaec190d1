package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

const (
	smtpGmailHost = "smtp.gmail.com"
	smtpGmailPort = 587
)

type EmailSender interface {
	Send(subject string, body string, recipients []string) error
}

type GmailSender struct {
	client *mail.Client
	from   string
}

func NewGmailSender(username, password string) (*GmailSender, error) {
	client, err := mail.NewClient(smtpGmailHost, mail.WithPort(smtpGmailPort), mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username), mail.WithPassword(password))
	if err != nil {
		return nil, err
	}
	if err = client.DialWithContext(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	return &GmailSender{
		client: client,
		from:   username,
	}, nil
}

// Send delivers one plain-text email to every recipient.
func (sender *GmailSender) Send(subject string, body string, recipients []string) error {
	msg := mail.NewMsg()
	if err := msg.From(sender.from); err != nil {
		return fmt.Errorf("failed to set sender address: %w", err)
	}
	if err := msg.To(recipients...); err != nil {
		return fmt.Errorf("failed to set recipient addresses: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return sender.client.DialAndSend(msg)
}
