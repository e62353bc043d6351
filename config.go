package main

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port    string
	GinMode string
	DBPath  string

	// Contact relay
	ContactTo         string
	AllowedRecipients []string
	MailFrom          string
	ResendAPIKey      string
	SMTPHost          string
	SMTPPort          string
	SMTPUser          string
	SMTPPass          string

	// Admin area
	AdminUsername   string
	AdminPassword   string
	SecureCookies   bool
	RetentionMonths int

	// Optional YAML document for the background tile field
	FieldFile string
	// Live background streams served at once; each runs its own field.
	MaxStreams int
}

// LoadConfig reads the environment. A .env file, if present, has already been
// loaded by godotenv/autoload.
func LoadConfig() Config {
	cfg := Config{
		Port:            getenv("PORT", "8080"),
		GinMode:         getenv("GIN_MODE", "release"),
		DBPath:          getenv("DB_PATH", "portfolio.db"),
		ContactTo:       os.Getenv("CONTACT_TO"),
		MailFrom:        getenv("MAIL_FROM", "Portfolio <onboarding@resend.dev>"),
		ResendAPIKey:    os.Getenv("RESEND_API_KEY"),
		SMTPHost:        getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        getenv("SMTP_PORT", "587"),
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPass:        os.Getenv("SMTP_PASS"),
		AdminUsername:   os.Getenv("ADMIN_USERNAME"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		SecureCookies:   getbool("SECURE_COOKIES", false),
		RetentionMonths: getint("VISITOR_RETENTION_MONTHS", 12),
		FieldFile:       os.Getenv("FIELD_FILE"),
		MaxStreams:      getint("BACKGROUND_MAX_STREAMS", 32),
	}
	for _, addr := range strings.Split(os.Getenv("CONTACT_ALLOWED_RECIPIENTS"), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			cfg.AllowedRecipients = append(cfg.AllowedRecipients, addr)
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getbool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
