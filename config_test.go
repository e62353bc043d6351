package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "DB_PATH", "MAIL_FROM", "SMTP_HOST", "SMTP_PORT",
		"CONTACT_ALLOWED_RECIPIENTS", "VISITOR_RETENTION_MONTHS", "SECURE_COOKIES", "BACKGROUND_MAX_STREAMS"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "portfolio.db", cfg.DBPath)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, "587", cfg.SMTPPort)
	assert.Equal(t, 12, cfg.RetentionMonths)
	assert.False(t, cfg.SecureCookies)
	assert.Empty(t, cfg.AllowedRecipients)
	assert.Equal(t, 32, cfg.MaxStreams)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CONTACT_TO", "me@example.com")
	t.Setenv("CONTACT_ALLOWED_RECIPIENTS", " a@example.com, ,b@example.com ")
	t.Setenv("RESEND_API_KEY", "re_key")
	t.Setenv("VISITOR_RETENTION_MONTHS", "6")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("BACKGROUND_MAX_STREAMS", "4")

	cfg := LoadConfig()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "me@example.com", cfg.ContactTo)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.AllowedRecipients)
	assert.Equal(t, "re_key", cfg.ResendAPIKey)
	assert.Equal(t, 6, cfg.RetentionMonths)
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, 4, cfg.MaxStreams)
}
