// Package sesmail sends outbox emails through Amazon SES.
package sesmail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/ses/sesiface"
	"go.uber.org/zap"

	"github.com/moura95/account-auth/internal/domain/email"
)

const charset = "UTF-8"

type Config struct {
	Region string
	From   string
}

// SESService implements email.Sender.
type SESService struct {
	client sesiface.SESAPI
	from   string
	logger *zap.SugaredLogger
}

// NewSESService resolves credentials from the default AWS chain.
func NewSESService(cfg Config, logger *zap.SugaredLogger) (*SESService, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.Region)})
	if err != nil {
		return nil, fmt.Errorf("ses: failed to create session: %w", err)
	}
	return NewSESServiceWithClient(ses.New(sess), cfg.From, logger), nil
}

func NewSESServiceWithClient(client sesiface.SESAPI, from string, logger *zap.SugaredLogger) *SESService {
	return &SESService{
		client: client,
		from:   from,
		logger: logger,
	}
}

func (s *SESService) SendEmail(ctx context.Context, emailEntity *email.Email) error {
	input := &ses.SendEmailInput{
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(emailEntity.To)},
		},
		Message: &ses.Message{
			Body: &ses.Body{
				Html: &ses.Content{
					Charset: aws.String(charset),
					Data:    aws.String(emailEntity.Body),
				},
			},
			Subject: &ses.Content{
				Charset: aws.String(charset),
				Data:    aws.String(emailEntity.Subject),
			},
		},
		Source: aws.String(s.from),
	}

	out, err := s.client.SendEmailWithContext(ctx, input)
	if err != nil {
		return fmt.Errorf("ses: failed to send email: %w", err)
	}

	s.logger.Infow("email sent", "email_id", emailEntity.ID, "to", emailEntity.To, "message_id", aws.StringValue(out.MessageId))
	return nil
}
