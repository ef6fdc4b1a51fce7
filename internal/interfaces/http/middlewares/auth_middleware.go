package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/moura95/account-auth/internal/domain/user"
	"github.com/moura95/account-auth/pkg/ginx"
)

const (
	authorizationHeaderKey  = "authorization"
	authorizationTypeBearer = "bearer"
	userIDContextKey        = "user_id"
)

// TokenVerifier resolves a bearer token to the account it was issued for.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*user.User, error)
}

func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorizationHeader := c.GetHeader(authorizationHeaderKey)
		if len(authorizationHeader) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ginx.ErrorResponse("authorization header is not provided"))
			return
		}

		fields := strings.Fields(authorizationHeader)
		if len(fields) != 2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ginx.ErrorResponse("invalid authorization header format"))
			return
		}

		if strings.ToLower(fields[0]) != authorizationTypeBearer {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ginx.ErrorResponse("unsupported authorization type "+fields[0]))
			return
		}

		authUser, err := verifier.VerifyToken(c.Request.Context(), fields[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ginx.ErrorResponse("invalid or expired token"))
			return
		}

		c.Set(userIDContextKey, authUser.ID.String())
		c.Next()
	}
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(userIDContextKey)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok && userID != ""
}
