package adapters

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/moura95/account-auth/internal/domain/email"
	"github.com/moura95/account-auth/internal/domain/user"
)

type Repositories struct {
	User  user.Repository
	Email email.Repository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:  NewUserRepository(db),
		Email: NewEmailRepository(db),
	}
}

const uniqueViolation = pq.ErrorCode("23505")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
