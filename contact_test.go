package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type relayResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Data    struct {
		ID string `json:"id"`
	} `json:"data"`
}

func decodeRelay(t *testing.T, body []byte) relayResponse {
	t.Helper()
	var resp relayResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestSendEmail(t *testing.T) {
	mailer := &fakeMailer{}
	app := newTestApp(t, mailer)
	r := app.Router()

	w := doRequest(r, http.MethodPost, "/api/send-email",
		`{"subject":"Hello","text":"Loved the projects.","name":"Ada","email":"ada@example.com"}`, jsonHeader)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeRelay(t, w.Body.Bytes())
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.ID)

	sent := mailer.messages()
	require.Len(t, sent, 1)
	msg := sent[0]
	assert.Equal(t, []string{"me@example.com"}, msg.To)
	assert.Equal(t, "Dev <dev@example.com>", msg.From)
	assert.Equal(t, "ada@example.com", msg.ReplyTo)
	assert.Equal(t, "Hello", msg.Subject)
	assert.Contains(t, msg.Text, "Name:   Ada")
	assert.Contains(t, msg.Text, "Loved the projects.")
	assert.Contains(t, msg.HTML, `<a href="mailto:ada@example.com">`)

	records, err := app.store.RecentMessages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, resp.Data.ID, records[0].ID)
	assert.True(t, records[0].Delivered)
	assert.Equal(t, "fake", records[0].Provider)
	assert.Equal(t, "fake-id", records[0].ProviderID)
}

func TestSendEmailMethodNotAllowed(t *testing.T) {
	r := newTestApp(t, &fakeMailer{}).Router()
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w := doRequest(r, method, "/api/send-email", "", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
	}
}

func TestSendEmailRejectsBadInput(t *testing.T) {
	mailer := &fakeMailer{}
	r := newTestApp(t, mailer).Router()

	bodies := []string{
		`not json`,
		`{"text":"hi","name":"Ada"}`,
		`{"text":"hi","name":"Ada","email":"not-an-address"}`,
		`{"name":"Ada","email":"ada@example.com"}`,
		`{"to":"nope","text":"hi","name":"Ada","email":"ada@example.com"}`,
	}
	for _, body := range bodies {
		w := doRequest(r, http.MethodPost, "/api/send-email", body, jsonHeader)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.False(t, decodeRelay(t, w.Body.Bytes()).Success, body)
	}
	assert.Empty(t, mailer.messages())
}

func TestSendEmailRecipients(t *testing.T) {
	mailer := &fakeMailer{}
	r := newTestApp(t, mailer).Router()

	w := doRequest(r, http.MethodPost, "/api/send-email",
		`{"to":"stranger@example.com","text":"hi","name":"Ada","email":"ada@example.com"}`, jsonHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrRecipientNotAllowed.Error())

	w = doRequest(r, http.MethodPost, "/api/send-email",
		`{"to":"LOGSY.APP@example.com","text":"hi","name":"Ada","email":"ada@example.com"}`, jsonHeader)
	require.Equal(t, http.StatusOK, w.Code)

	sent := mailer.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"logsy.app@example.com"}, sent[0].To)
	assert.Equal(t, "Portfolio Contact: Ada", sent[0].Subject)
}

func TestSendEmailWithoutRecipientConfigured(t *testing.T) {
	r := newTestApp(t, &fakeMailer{}, func(c *Config) { c.ContactTo = "" }).Router()
	w := doRequest(r, http.MethodPost, "/api/send-email",
		`{"text":"hi","name":"Ada","email":"ada@example.com"}`, jsonHeader)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSendEmailProviderFailure(t *testing.T) {
	app := newTestApp(t, &fakeMailer{err: errors.New("provider down")})
	w := doRequest(app.Router(), http.MethodPost, "/api/send-email",
		`{"text":"hi","name":"Ada","email":"ada@example.com"}`, jsonHeader)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeRelay(t, w.Body.Bytes())
	assert.False(t, resp.Success)
	assert.NotContains(t, w.Body.String(), "provider down")

	records, err := app.store.RecentMessages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Delivered)
	assert.Equal(t, "provider down", records[0].Error)
}

func TestRelaySanitizesInput(t *testing.T) {
	mailer := &fakeMailer{}
	app := newTestApp(t, mailer)

	_, err := app.relay(context.Background(), ContactRequest{
		Subject: "Hi\r\nBcc: victim@example.com",
		Text:    "<script>alert(1)</script>",
		Name:    "Eve\nX-Header: 1",
		Email:   "eve@example.com",
	})
	require.NoError(t, err)

	msg := mailer.messages()[0]
	assert.NotContains(t, msg.Subject, "\n")
	assert.NotContains(t, msg.Subject, "\r")
	assert.NotContains(t, msg.Text, "Eve\nX-Header")
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
}

func TestContactForm(t *testing.T) {
	mailer := &fakeMailer{}
	r := newTestApp(t, mailer).Router()

	form := url.Values{"fullName": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hello!"}}
	w := doRequest(r, http.MethodPost, "/contact", form.Encode(), formHeader)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you for your message")
	require.Len(t, mailer.messages(), 1)

	form.Set("email", "broken")
	w = doRequest(r, http.MethodPost, "/contact", form.Encode(), formHeader)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please fill in")
	assert.Len(t, mailer.messages(), 1)
}

func TestContactFormDeliveryError(t *testing.T) {
	r := newTestApp(t, &fakeMailer{err: errors.New("boom")}).Router()
	form := url.Values{"fullName": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hello!"}}
	w := doRequest(r, http.MethodPost, "/contact", form.Encode(), formHeader)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "error sending your message"))
}
