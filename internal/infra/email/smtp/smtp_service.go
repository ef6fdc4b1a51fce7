package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/moura95/account-auth/internal/domain/email"
)

const dialTimeout = 10 * time.Second

// SMTPService implements email.Sender. Authentication is used only when a
// username is configured, which keeps local catchers like MailHog working.
type SMTPService struct {
	config email.SMTPConfig
	logger *zap.SugaredLogger
}

func NewSMTPService(config email.SMTPConfig, logger *zap.SugaredLogger) *SMTPService {
	return &SMTPService{
		config: config,
		logger: logger,
	}
}

func (s *SMTPService) SendEmail(ctx context.Context, emailEntity *email.Email) error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp: failed to connect: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp: failed to greet server: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.config.Host}); err != nil {
			return fmt.Errorf("smtp: failed to start tls: %w", err)
		}
	}

	if s.config.Username != "" {
		auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp: failed to authenticate: %w", err)
		}
	}

	if err := client.Mail(s.config.From); err != nil {
		return fmt.Errorf("smtp: failed to set sender: %w", err)
	}

	if err := client.Rcpt(emailEntity.To); err != nil {
		return fmt.Errorf("smtp: failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp: failed to get data writer: %w", err)
	}

	if _, err := w.Write(s.buildMessage(emailEntity)); err != nil {
		return fmt.Errorf("smtp: failed to write message: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp: failed to close writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		s.logger.Debugw("smtp quit failed", "error", err)
	}

	s.logger.Infow("email sent", "email_id", emailEntity.ID, "to", emailEntity.To)
	return nil
}

func (s *SMTPService) buildMessage(emailEntity *email.Email) []byte {
	var buf bytes.Buffer
	headers := [][2]string{
		{"From", s.config.From},
		{"To", emailEntity.To},
		{"Subject", mime.QEncoding.Encode("utf-8", emailEntity.Subject)},
		{"Date", time.Now().Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", `text/html; charset="utf-8"`},
	}
	for _, h := range headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", h[0], h[1])
	}
	buf.WriteString("\r\n")
	buf.WriteString(emailEntity.Body)
	return buf.Bytes()
}
