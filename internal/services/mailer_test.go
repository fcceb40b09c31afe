package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly-dev/gatherly/internal/config"
	"github.com/gatherly-dev/gatherly/internal/models"
)

func TestDisabledMailerSkipsSend(t *testing.T) {
	mailer, err := NewMailer(config.EmailConfig{Enabled: false}, zerolog.Nop())
	require.NoError(t, err)

	user := models.User{Email: "user@example.com", FirstName: "Test"}
	assert.NoError(t, mailer.SendWelcome(user))
}

func TestSendRegistrationConfirmation(t *testing.T) {
	var captured resend.SendEmailRequest

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Errorf("expected POST /emails, got %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "mock-email-id"})
	}))
	defer mockServer.Close()

	cfg := config.EmailConfig{
		Enabled:      true,
		From:         "Gatherly <noreply@gatherly.dev>",
		ResendAPIKey: "test-api-key",
	}

	mailer, err := NewMailer(cfg, zerolog.Nop())
	require.NoError(t, err)

	baseURL, err := url.Parse(mockServer.URL)
	require.NoError(t, err)
	mailer.client.BaseURL = baseURL

	user := models.User{Email: "attendee@example.com", FirstName: "Ada"}
	event := models.Event{Title: "Launch Party", Date: "2030-06-15", Time: "18:00", Location: "Main Hall"}

	require.NoError(t, mailer.SendRegistrationConfirmation(user, event))

	assert.Equal(t, cfg.From, captured.From)
	require.Len(t, captured.To, 1)
	assert.Equal(t, "attendee@example.com", captured.To[0])
	assert.Contains(t, captured.Subject, "Launch Party")
	assert.Contains(t, captured.Html, "Ada")
	assert.Contains(t, captured.Html, "Main Hall")
}

func TestSendWelcome(t *testing.T) {
	var captured resend.SendEmailRequest

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "mock-email-id"})
	}))
	defer mockServer.Close()

	mailer, err := NewMailer(config.EmailConfig{
		Enabled:      true,
		From:         "noreply@gatherly.dev",
		ResendAPIKey: "test-api-key",
	}, zerolog.Nop())
	require.NoError(t, err)

	baseURL, err := url.Parse(mockServer.URL)
	require.NoError(t, err)
	mailer.client.BaseURL = baseURL

	require.NoError(t, mailer.SendWelcome(models.User{Email: "ada@example.com", FirstName: "Ada"}))

	require.Len(t, captured.To, 1)
	assert.Equal(t, "ada@example.com", captured.To[0])
	assert.Contains(t, captured.Html, "Ada")
}

func TestSendFailureIsReturned(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message": "boom"}`))
	}))
	defer mockServer.Close()

	mailer, err := NewMailer(config.EmailConfig{
		Enabled:      true,
		From:         "noreply@gatherly.dev",
		ResendAPIKey: "test-api-key",
	}, zerolog.Nop())
	require.NoError(t, err)

	baseURL, err := url.Parse(mockServer.URL)
	require.NoError(t, err)
	mailer.client.BaseURL = baseURL

	err = mailer.SendWelcome(models.User{Email: "user@example.com", FirstName: "Test"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "resend API error"))
}
