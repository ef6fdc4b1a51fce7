package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

const (
	TypePaseto = "paseto"
	TypeJWT    = "jwt"
)

// Maker issues and verifies the opaque bearer tokens handed to clients.
type Maker interface {
	CreateToken(userID uuid.UUID, duration time.Duration) (string, *Payload, error)
	VerifyToken(token string) (*Payload, error)
}

// NewMaker picks the implementation configured by tokenType.
func NewMaker(tokenType, key string) (Maker, error) {
	switch tokenType {
	case TypePaseto, "":
		return NewPasetoMaker(key)
	case TypeJWT:
		return NewJWTMaker(key)
	default:
		return nil, fmt.Errorf("unsupported token type %q", tokenType)
	}
}
