package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/moura95/account-auth/internal/domain/avatar"
)

type AvatarStorage struct {
	mock.Mock
}

func (m *AvatarStorage) Save(ctx context.Context, key string, a *avatar.Avatar) (string, error) {
	args := m.Called(ctx, key, a)
	return args.String(0), args.Error(1)
}

func (m *AvatarStorage) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *AvatarStorage) Key(url string) (string, bool) {
	args := m.Called(url)
	return args.String(0), args.Bool(1)
}
