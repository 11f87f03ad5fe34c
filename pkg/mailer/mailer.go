// Package mailer sends transactional email. SMTP delivery goes through
// gomail; when SMTP is not configured the console mailer logs the message
// instead so the reset flow stays usable in development.
package mailer

import (
	"gopkg.in/gomail.v2"
)

// Mailer - injected email collaborator
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail through an SMTP relay
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer - create an SMTP mailer
func NewSMTPMailer(host string, port int, user, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

// Send delivers one plain-text message
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
