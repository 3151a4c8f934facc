package mailer

import (
	"os"
	"strings"

	mail "github.com/go-mail/mail"
	"github.com/google/uuid"
)

// Formatos de body aceptados por --contentType.
const (
	FormatPlaintext = "text/plain"
	FormatHTML      = "html"
)

const xMailer = "mailerctl"

// Email es el mensaje a enviar. Vive lo que dura el comando.
type Email struct {
	From        string
	To          string
	Subject     string
	Body        string
	ContentType string
}

// NewEmail arma un Email; contentType vacío equivale a text/plain.
func NewEmail(from, to, subject, body, contentType string) Email {
	if strings.TrimSpace(contentType) == "" {
		contentType = FormatPlaintext
	}
	return Email{
		From:        from,
		To:          to,
		Subject:     subject,
		Body:        body,
		ContentType: contentType,
	}
}

// IsHTML reporta si el body se envía como HTML ("html" o "text/html").
func (e Email) IsHTML() bool {
	ct := strings.ToLower(strings.TrimSpace(e.ContentType))
	return ct == FormatHTML || ct == "text/html"
}

// message convierte el Email en un mensaje de go-mail.
func (e Email) message() *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", e.From)
	m.SetHeader("To", e.To)
	m.SetHeader("Subject", e.Subject)
	m.SetHeader("Message-ID", "<"+uuid.NewString()+"@"+messageIDHost(e.From)+">")
	m.SetHeader("X-Mailer", xMailer)

	if e.IsHTML() {
		m.SetBody("text/html", e.Body)
	} else {
		m.SetBody("text/plain", e.Body)
	}
	return m
}

// messageIDHost usa el dominio del remitente; si no hay, el hostname local.
func messageIDHost(from string) string {
	if i := strings.LastIndexByte(from, '@'); i >= 0 && i < len(from)-1 {
		return strings.Trim(from[i+1:], "<> ")
	}
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	return "localhost"
}
