// admin.go - privacy-conscious admin area and visitor tracking
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const adminCookie = "admin_token"

// adminAuth holds the per-process session token and the salt used to hash
// visitor IPs. Both are regenerated on every start.
type adminAuth struct {
	token string
	salt  string
}

func newAdminAuth() (*adminAuth, error) {
	token, err := randomToken()
	if err != nil {
		return nil, err
	}
	salt, err := randomToken()
	if err != nil {
		return nil, err
	}
	return &adminAuth{token: token, salt: salt}, nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashIP hashes an address with the process salt (consistent per IP).
func (a *adminAuth) hashIP(ip string) string {
	h := sha256.Sum256([]byte(ip + a.salt))
	return hex.EncodeToString(h[:])[:16]
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (a *App) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || !secureEqual(token, a.auth.token) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// visitorTrackingMiddleware records page views with hashed IPs. Static
// assets, APIs and admin pages are skipped and Do Not Track is respected.
func (a *App) visitorTrackingMiddleware() gin.HandlerFunc {
	skip := []string{"/static/", "/images/", "/admin", "/api/", "/favicon", "/privacy"}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range skip {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}
		if c.GetHeader("DNT") == "1" || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		hashed := a.auth.hashIP(c.ClientIP())
		userAgent := c.GetHeader("User-Agent")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := a.store.RecordVisit(ctx, hashed, userAgent, path, time.Now()); err != nil {
				a.log.Warn("recording visitor", zap.Error(err))
			}
		}()
		c.Next()
	}
}

// cleanupOldVisitors enforces the retention window.
func (a *App) cleanupOldVisitors(ctx context.Context) {
	before := time.Now().AddDate(0, -a.cfg.RetentionMonths, 0)
	n, err := a.store.CleanupVisitors(ctx, before)
	if err != nil {
		a.log.Error("cleaning up visitor data", zap.Error(err))
		return
	}
	if n > 0 {
		a.log.Info("privacy cleanup removed old visitor records",
			zap.Int64("rows", n), zap.Int("retention_months", a.cfg.RetentionMonths))
	}
}

func (a *App) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":           "Privacy Policy",
			"retentionMonths": a.cfg.RetentionMonths,
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		// Without configured credentials the admin area stays locked.
		configured := a.cfg.AdminUsername != "" && a.cfg.AdminPassword != ""
		userOK := secureEqual(username, a.cfg.AdminUsername)
		passOK := secureEqual(password, a.cfg.AdminPassword)
		if !configured || !userOK || !passOK {
			a.log.Warn("failed admin login", zap.String("client", a.auth.hashIP(c.ClientIP())))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": "Invalid credentials"})
			return
		}

		c.SetCookie(adminCookie, a.auth.token, 3600*24, "/admin", "", a.cfg.SecureCookies, true)
		a.log.Info("admin login", zap.String("client", a.auth.hashIP(c.ClientIP())))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", a.cfg.SecureCookies, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(a.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context(), time.Now())
		if err != nil {
			a.log.Error("loading admin stats", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"stats": stats})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/api/messages", func(c *gin.Context) {
		messages, err := a.store.RecentMessages(c.Request.Context(), 200)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": messages})
	})

	admin.GET("/api/visitors", func(c *gin.Context) {
		visitors, err := a.store.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"visitors": visitors})
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		a.cleanupOldVisitors(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete"})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		a.log.Info("admin stats exported", zap.String("client", a.auth.hashIP(c.ClientIP())))
		c.JSON(http.StatusOK, stats)
	})
}
