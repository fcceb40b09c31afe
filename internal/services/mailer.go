// Package services holds collaborators invoked after a store mutation
// commits. Mail sends are fire-and-forget: callers run them in a
// goroutine and a failure never rolls back or blocks the primary change.
package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/gatherly-dev/gatherly/internal/config"
	"github.com/gatherly-dev/gatherly/internal/models"
)

const welcomeTemplate = `<h2>Welcome to Gatherly, {{.User.FirstName}}!</h2>
<p>Your account is ready. Browse upcoming events and register with one click.</p>`

const registrationTemplate = `<h2>You're in, {{.User.FirstName}}!</h2>
<p>Your registration for <strong>{{.Event.Title}}</strong> is confirmed.</p>
<p>{{.Event.Date}} at {{.Event.Time}}{{if .Event.Location}}, {{.Event.Location}}{{end}}.</p>`

const eventCreatedTemplate = `<h2>Your event is live</h2>
<p><strong>{{.Event.Title}}</strong> is published and open for registration.</p>
<p>{{.Event.Date}} at {{.Event.Time}}{{if .Event.Location}}, {{.Event.Location}}{{end}}.</p>`

type mailData struct {
	User  models.User
	Event models.Event
}

type Mailer struct {
	cfg       config.EmailConfig
	client    *resend.Client
	templates *template.Template
	logger    zerolog.Logger
}

func NewMailer(cfg config.EmailConfig, logger zerolog.Logger) (*Mailer, error) {
	templates := template.New("mail")
	for name, body := range map[string]string{
		"welcome":      welcomeTemplate,
		"registration": registrationTemplate,
		"eventCreated": eventCreatedTemplate,
	} {
		if _, err := templates.New(name).Parse(body); err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
	}

	m := &Mailer{
		cfg:       cfg,
		templates: templates,
		logger:    logger,
	}
	if cfg.Enabled {
		m.client = resend.NewClient(cfg.ResendAPIKey)
	}
	return m, nil
}

func (m *Mailer) SendWelcome(user models.User) error {
	subject := "Welcome to Gatherly"
	return m.send(user.Email, subject, "welcome", mailData{User: user})
}

func (m *Mailer) SendRegistrationConfirmation(user models.User, event models.Event) error {
	subject := fmt.Sprintf("Registration confirmed: %s", event.Title)
	return m.send(user.Email, subject, "registration", mailData{User: user, Event: event})
}

func (m *Mailer) SendEventCreated(organizer models.User, event models.Event) error {
	subject := fmt.Sprintf("Event published: %s", event.Title)
	return m.send(organizer.Email, subject, "eventCreated", mailData{User: organizer, Event: event})
}

func (m *Mailer) send(to, subject, tmpl string, data mailData) error {
	if !m.cfg.Enabled {
		m.logger.Debug().Str("to", to).Str("subject", subject).Msg("email disabled, skipping send")
		return nil
	}

	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, tmpl, data); err != nil {
		return fmt.Errorf("render %s template: %w", tmpl, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	params := &resend.SendEmailRequest{
		From:    m.cfg.From,
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend API error: %w", err)
	}

	m.logger.Info().Str("email_id", sent.Id).Str("to", to).Msg("email sent")
	return nil
}
