package email

import (
	"bytes"
	"html/template"
	"time"

	"github.com/google/uuid"
)

type EmailType string

const (
	EmailTypeWelcome EmailType = "welcome"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

const (
	DefaultMaxAttempts = 3
	welcomeSubject     = "Welcome to Account Auth!"
)

type Email struct {
	ID          uuid.UUID  `json:"id"`
	To          string     `json:"to"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body"`
	Type        EmailType  `json:"type"`
	Status      Status     `json:"status"`
	Attempts    int        `json:"attempts"`
	MaxAttempts int        `json:"max_attempts"`
	CreatedAt   time.Time  `json:"created_at"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	ErrorMsg    string     `json:"error_msg,omitempty"`
}

type WelcomeEmailData struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	UserImage string `json:"user_image,omitempty"`
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Welcome!</title>
</head>
<body>
    {{if .UserImage}}<img src="{{.UserImage}}" alt="" width="96" height="96">{{end}}
    <h1>Welcome to Account Auth, {{.UserName}}!</h1>
    <p>Your account for {{.UserEmail}} is ready.</p>
    <p>Best regards,<br>The Account Auth Team</p>
</body>
</html>
`))

func NewWelcomeEmail(data WelcomeEmailData) (*Email, error) {
	validator := NewEmailValidator()

	if err := validator.ValidateWelcomeEmailData(data); err != nil {
		return nil, err
	}

	body, err := generateWelcomeEmailBody(data)
	if err != nil {
		return nil, err
	}

	email := &Email{
		ID:          uuid.New(),
		To:          data.UserEmail,
		Subject:     welcomeSubject,
		Body:        body,
		Type:        EmailTypeWelcome,
		Status:      StatusPending,
		MaxAttempts: DefaultMaxAttempts,
		CreatedAt:   time.Now(),
	}

	if err := validator.ValidateEmailEntity(email); err != nil {
		return nil, err
	}

	return email, nil
}

func (e *Email) MarkAsSent() {
	e.Status = StatusSent
	now := time.Now()
	e.SentAt = &now
	e.ErrorMsg = ""
}

// MarkAsFailed records a failed attempt; the email stays pending until it
// runs out of attempts.
func (e *Email) MarkAsFailed(errorMsg string) {
	e.Attempts++
	e.ErrorMsg = errorMsg

	if e.Attempts >= e.MaxAttempts {
		e.Status = StatusFailed
	} else {
		e.Status = StatusPending
	}
}

func (e *Email) CanRetry() bool {
	return e.Status == StatusPending && e.Attempts < e.MaxAttempts
}

func generateWelcomeEmailBody(data WelcomeEmailData) (string, error) {
	var buf bytes.Buffer
	if err := welcomeTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
