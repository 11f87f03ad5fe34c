package mailer

import (
	"kaamsaathi-backend/pkg/logger"

	"go.uber.org/zap"
)

// ConsoleMailer logs messages instead of delivering them. Used when SMTP is
// not configured.
type ConsoleMailer struct{}

// NewConsoleMailer - create a console mailer
func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

// Send logs the message
func (m *ConsoleMailer) Send(to, subject, body string) error {
	logger.Info("📧 EMAIL SIMULATION",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
