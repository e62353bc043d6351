package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kkdev/portfolio/tilefield"
)

// App bundles the site's dependencies for the HTTP handlers.
type App struct {
	cfg    Config
	log    *zap.Logger
	store  *Store
	mailer Mailer
	auth   *adminAuth
	field  tilefield.Document

	streams *streamHub
}

func NewApp(cfg Config, log *zap.Logger, store *Store, mailer Mailer) (*App, error) {
	auth, err := newAdminAuth()
	if err != nil {
		return nil, fmt.Errorf("generate admin token: %w", err)
	}

	field := tilefield.Document{
		Snippets: tilefield.DefaultSnippets,
		Field:    tilefield.DefaultConfig(),
	}
	if cfg.FieldFile != "" {
		if field, err = tilefield.LoadFile(cfg.FieldFile); err != nil {
			return nil, fmt.Errorf("load field document: %w", err)
		}
	}

	if gin.Mode() == gin.DebugMode {
		log.Debug("admin session token (dev only)", zap.String("token", auth.token))
	}
	return &App{
		cfg:    cfg,
		log:    log,
		store:  store,
		mailer: mailer,
		auth:   auth,
		field:  field,

		streams: newStreamHub(cfg.MaxStreams),
	}, nil
}

// requestLogger logs each request through zap.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("bytes", c.Writer.Size()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= 500:
			log.Error("request", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("request", fields...)
		default:
			log.Debug("request", fields...)
		}
	}
}

func (a *App) Router() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(a.log), gin.Recovery(), a.visitorTrackingMiddleware())
	r.LoadHTMLGlob("templates/*")

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"heroTitle":    HeroTitle,
			"heroSubtitle": HeroSubtitle,
			"aboutMe":      AboutMe,
			"projects":     Projects,
			"skills":       Skills,
			"snippets":     a.field.Snippets,
		})
	})

	// HTMX fragments
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{"title": "Contact Me"})
	})
	r.GET("/skills-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "skills-content.html", gin.H{"skills": Skills})
	})
	r.POST("/contact", a.handleContactForm)

	api := r.Group("/api")
	api.Any("/send-email", a.handleSendEmail)
	api.GET("/background", a.handleBackground)
	api.GET("/background/frames", a.handleBackgroundFrames)
	api.GET("/background/stream", a.handleBackgroundStream)
	api.POST("/background/input", a.handleBackgroundInput)

	a.setupAdminRoutes(r)
	return r
}

// retentionLoop runs the visitor cleanup now and then once a day.
func (a *App) retentionLoop(ctx context.Context) {
	a.cleanupOldVisitors(ctx)
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.cleanupOldVisitors(ctx)
		}
	}
}
