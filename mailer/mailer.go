package mailer

import (
	"net/smtp"

	"github.com/brownbean/coffeeshop-api/config"
)

// Mailer sends a plain-text message and reports success or failure
// synchronously to the caller.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	host, port, from, password string
}

func New(cfg config.Config) Mailer {
	return &smtpMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		password: cfg.SMTPPassword,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	addr := m.host + ":" + m.port

	msg := "From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	var auth smtp.Auth
	if m.password != "" {
		auth = smtp.PlainAuth("", m.from, m.password, m.host)
	}
	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
