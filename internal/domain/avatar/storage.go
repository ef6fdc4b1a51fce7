package avatar

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/moura95/account-auth/internal/infra/security/crypto"
)

// Storage persists avatars and returns the public URL they are served from.
type Storage interface {
	Save(ctx context.Context, key string, avatar *Avatar) (string, error)
	// Delete removes an avatar previously returned by Save. URLs that do
	// not belong to this storage are ignored.
	Delete(ctx context.Context, url string) error
	// Key returns the object key behind url when url points into this storage.
	Key(url string) (string, bool)
}

// ObjectKey names an avatar as <user-id>/<content-hash>.<ext>.
func ObjectKey(userID uuid.UUID, avatar *Avatar) string {
	sum := crypto.HashSHA256(avatar.Data)
	return userID.String() + "/" + sum[:24] + avatar.Extension
}

// OwnedBy reports whether key was issued by ObjectKey for userID.
func OwnedBy(userID uuid.UUID, key string) bool {
	name, ok := strings.CutPrefix(key, userID.String()+"/")
	return ok && name != "" && !strings.Contains(name, "/")
}

// DeletableBy reports whether url is an avatar s stored for userID. Only
// such URLs may be removed on behalf of that user.
func DeletableBy(s Storage, userID uuid.UUID, url string) bool {
	if url == "" {
		return false
	}
	key, ok := s.Key(url)
	return ok && OwnedBy(userID, key)
}

// KeyFromURL extracts the object key from a URL built as baseURL + "/" + key.
func KeyFromURL(baseURL, url string) (string, bool) {
	prefix := strings.TrimRight(baseURL, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}
