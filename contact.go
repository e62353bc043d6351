package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrRecipientNotAllowed = errors.New("recipient not allowed")

// ContactRequest is the JSON body of POST /api/send-email.
type ContactRequest struct {
	To      string `json:"to" binding:"omitempty,email"`
	Subject string `json:"subject" binding:"max=200"`
	Text    string `json:"text" binding:"required,max=5000"`
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email"`
}

const plainBody = `
You have received a new message from your portfolio contact form.

--------------------------------------------------
Name:   %s
Email:  %s
--------------------------------------------------

Message:
%s

--------------------------------------------------
Sent via Portfolio Website
`

var htmlBody = template.Must(template.New("email").Parse(`
<div style="font-family: Arial, sans-serif; color: #333; line-height: 1.6;">
  <h2>New Contact Form Submission</h2>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
  <hr style="border: none; border-top: 1px solid #ddd; margin: 20px 0;" />
  <p><strong>Message:</strong></p>
  <p style="white-space: pre-line;">{{.Text}}</p>
  <br />
  <p style="font-size: 0.9em; color: #888;">Sent via Portfolio Website</p>
</div>
`))

// headerSafe strips line breaks so user input cannot add mail headers.
func headerSafe(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
}

// recipient resolves the address a submission goes to.
func (a *App) recipient(to string) (string, error) {
	if to == "" || strings.EqualFold(to, a.cfg.ContactTo) {
		if a.cfg.ContactTo == "" {
			return "", ErrMailerNotConfigured
		}
		return a.cfg.ContactTo, nil
	}
	for _, allowed := range a.cfg.AllowedRecipients {
		if strings.EqualFold(to, allowed) {
			return allowed, nil
		}
	}
	return "", ErrRecipientNotAllowed
}

// relay builds the message for req, sends it and logs the outcome.
func (a *App) relay(ctx context.Context, req ContactRequest) (string, error) {
	to, err := a.recipient(req.To)
	if err != nil {
		return "", err
	}

	name := headerSafe(req.Name)
	subject := headerSafe(req.Subject)
	if subject == "" {
		subject = fmt.Sprintf("Portfolio Contact: %s", name)
	}

	var html bytes.Buffer
	if err := htmlBody.Execute(&html, req); err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	msg := Message{
		From:    a.cfg.MailFrom,
		To:      []string{to},
		ReplyTo: headerSafe(req.Email),
		Subject: subject,
		Text:    fmt.Sprintf(plainBody, name, req.Email, req.Text),
		HTML:    html.String(),
	}

	record := MessageRecord{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     req.Email,
		Recipient: to,
		Subject:   subject,
		Provider:  a.mailer.Name(),
		CreatedAt: time.Now(),
	}

	sendCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	providerID, sendErr := a.mailer.Send(sendCtx, msg)
	record.ProviderID = providerID
	record.Delivered = sendErr == nil
	if sendErr != nil {
		record.Error = sendErr.Error()
	}

	if err := a.store.RecordMessage(ctx, record); err != nil {
		a.log.Error("recording contact message", zap.String("id", record.ID), zap.Error(err))
	}
	if sendErr != nil {
		a.log.Error("sending contact message", zap.String("id", record.ID), zap.String("provider", record.Provider), zap.Error(sendErr))
		return "", sendErr
	}
	a.log.Info("contact message sent", zap.String("id", record.ID), zap.String("provider", record.Provider), zap.String("provider_id", providerID))
	return record.ID, nil
}

// handleSendEmail is the JSON relay used by the contact form script.
func (a *App) handleSendEmail(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		return
	}

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request: " + err.Error()})
		return
	}

	id, err := a.relay(c.Request.Context(), req)
	switch {
	case errors.Is(err, ErrRecipientNotAllowed):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to send email"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": id}})
	}
}

// handleContactForm serves the HTMX form post and answers with a fragment.
func (a *App) handleContactForm(c *gin.Context) {
	req := ContactRequest{
		Name:  c.PostForm("fullName"),
		Email: c.PostForm("email"),
		Text:  c.PostForm("message"),
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, email and message.",
		})
		return
	}

	if _, err := a.relay(c.Request.Context(), req); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
