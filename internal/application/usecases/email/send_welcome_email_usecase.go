package email

import (
	"context"
	"fmt"

	"github.com/moura95/account-auth/internal/domain/email"
)

type SendWelcomeEmailRequest struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	UserImage string `json:"user_image"`
}

type SendWelcomeEmailUseCase struct {
	emailRepo email.Repository
	publisher email.Publisher
}

// NewSendWelcomeEmailUseCase accepts a nil publisher; the email then stays
// pending in the outbox until the requeue sweep picks it up.
func NewSendWelcomeEmailUseCase(emailRepo email.Repository, publisher email.Publisher) *SendWelcomeEmailUseCase {
	return &SendWelcomeEmailUseCase{
		emailRepo: emailRepo,
		publisher: publisher,
	}
}

func (uc *SendWelcomeEmailUseCase) Execute(ctx context.Context, req SendWelcomeEmailRequest) (*email.Email, error) {
	data := email.WelcomeEmailData{
		UserID:    req.UserID,
		UserName:  req.UserName,
		UserEmail: req.UserEmail,
		UserImage: req.UserImage,
	}

	newEmail, err := email.NewWelcomeEmail(data)
	if err != nil {
		return nil, fmt.Errorf("usecase: send welcome email failed: %w", err)
	}

	if err := uc.emailRepo.Create(ctx, newEmail); err != nil {
		return nil, fmt.Errorf("usecase: send welcome email failed: %w", err)
	}

	if uc.publisher == nil {
		return newEmail, nil
	}

	message := email.QueueMessage{
		EmailID: newEmail.ID,
		Type:    newEmail.Type,
		Data:    data,
	}
	if err := uc.publisher.Publish(ctx, message); err != nil {
		return newEmail, fmt.Errorf("usecase: publish welcome email failed: %w", err)
	}

	return newEmail, nil
}
