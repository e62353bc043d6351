package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (m *fakeMailer) Name() string { return "fake" }

func (m *fakeMailer) Send(_ context.Context, msg Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, msg)
	return "fake-id", nil
}

func (m *fakeMailer) messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}

func testConfig() Config {
	return Config{
		ContactTo:         "me@example.com",
		AllowedRecipients: []string{"logsy.app@example.com"},
		MailFrom:          "Dev <dev@example.com>",
		AdminUsername:     "admin",
		AdminPassword:     "s3cret",
		RetentionMonths:   12,
	}
}

func newTestApp(t *testing.T, m Mailer, mutate ...func(*Config)) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := OpenStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := testConfig()
	for _, fn := range mutate {
		fn(&cfg)
	}
	app, err := NewApp(cfg, zap.NewNop(), store, m)
	require.NoError(t, err)
	return app
}

func doRequest(h http.Handler, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

var (
	jsonHeader = http.Header{"Content-Type": {"application/json"}}
	formHeader = http.Header{"Content-Type": {"application/x-www-form-urlencoded"}}
)
