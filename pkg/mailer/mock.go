package mailer

import "fmt"

// MockMailer for tests
type MockMailer struct {
	SendCalled  bool
	SentCount   int
	LastTo      string
	LastSubject string
	LastBody    string
	ShouldFail  bool
}

func (m *MockMailer) Send(to, subject, body string) error {
	m.SendCalled = true
	m.SentCount++
	m.LastTo = to
	m.LastSubject = subject
	m.LastBody = body

	if m.ShouldFail {
		return fmt.Errorf("mock mailer error")
	}

	return nil
}
