package main

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

var ErrMailerNotConfigured = errors.New("mailer not configured")

// Message is one outgoing email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers a message and returns the provider's message id.
type Mailer interface {
	Name() string
	Send(ctx context.Context, msg Message) (string, error)
}

// newMailer picks Resend when an API key is set, then SMTP when credentials
// are, and otherwise a mailer that only logs.
func newMailer(cfg Config, log *zap.Logger) Mailer {
	switch {
	case cfg.ResendAPIKey != "":
		return newResendMailer(resend.NewClient(cfg.ResendAPIKey))
	case cfg.SMTPUser != "" && cfg.SMTPPass != "":
		return &smtpMailer{
			host: cfg.SMTPHost,
			port: cfg.SMTPPort,
			user: cfg.SMTPUser,
			pass: cfg.SMTPPass,
			send: smtp.SendMail,
		}
	default:
		log.Warn("no email provider configured; contact messages will only be logged")
		return &logMailer{log: log}
	}
}

type resendMailer struct {
	client *resend.Client
}

func newResendMailer(client *resend.Client) *resendMailer {
	return &resendMailer{client: client}
}

func (m *resendMailer) Name() string { return "resend" }

func (m *resendMailer) Send(ctx context.Context, msg Message) (string, error) {
	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Text,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return sent.Id, nil
}

type smtpMailer struct {
	host, port string
	user, pass string
	send       func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func (m *smtpMailer) Name() string { return "smtp" }

// Send has no way to honour ctx beyond checking it up front; net/smtp dials
// and writes synchronously.
func (m *smtpMailer) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.user == "" || m.pass == "" {
		return "", ErrMailerNotConfigured
	}

	id := uuid.NewString()
	var b strings.Builder
	b.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	b.WriteString("From: " + m.user + "\r\n")
	if msg.ReplyTo != "" {
		b.WriteString("Reply-To: " + msg.ReplyTo + "\r\n")
	}
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("Message-ID: <" + id + "@" + m.host + ">\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Text + "\r\n")

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := m.send(m.host+":"+m.port, auth, m.user, msg.To, []byte(b.String())); err != nil {
		return "", fmt.Errorf("smtp: %w", err)
	}
	return id, nil
}

// logMailer is used in development when no provider is configured.
type logMailer struct {
	log *zap.Logger
}

func (m *logMailer) Name() string { return "log" }

func (m *logMailer) Send(_ context.Context, msg Message) (string, error) {
	id := uuid.NewString()
	m.log.Info("contact message (not delivered)",
		zap.String("id", id),
		zap.Strings("to", msg.To),
		zap.String("reply_to", msg.ReplyTo),
		zap.String("subject", msg.Subject),
		zap.Int("bytes", len(msg.Text)),
	)
	return id, nil
}
