package mailer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"dfseducation/internal/config"
)

func TestConsoleMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	m := NewConsole("noreply@dfseducation.com", &buf)

	err := m.Send("student@example.com", "Application Submitted", "Your application has been submitted.")

	assert.NoError(t, err)
	out := buf.String()
	assert.True(t, strings.Contains(out, "From: noreply@dfseducation.com"))
	assert.True(t, strings.Contains(out, "To: student@example.com"))
	assert.True(t, strings.Contains(out, "Subject: Application Submitted"))
	assert.True(t, strings.Contains(out, "Your application has been submitted."))
}

func TestNew_SelectsBackend(t *testing.T) {
	var buf bytes.Buffer

	console := New(config.EmailConfig{Backend: config.EmailBackendConsole}, &buf)
	_, ok := console.(*consoleMailer)
	assert.True(t, ok)

	smtp := New(config.EmailConfig{Backend: config.EmailBackendSMTP, Host: "smtp.example.com", Port: 587}, &buf)
	_, ok = smtp.(*smtpMailer)
	assert.True(t, ok)
}
