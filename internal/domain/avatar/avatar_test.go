package avatar

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	raw := pngBytes(t, 20, 10)
	encoded := base64.StdEncoding.EncodeToString(raw)

	t.Run("should decode bare base64 png", func(t *testing.T) {
		avatar, err := Decode(encoded, DefaultLimits())

		require.NoError(t, err)
		assert.Equal(t, raw, avatar.Data)
		assert.Equal(t, "image/png", avatar.ContentType)
		assert.Equal(t, ".png", avatar.Extension)
		assert.Equal(t, 20, avatar.Width)
		assert.Equal(t, 10, avatar.Height)
	})

	t.Run("should decode data url and trust sniffed type", func(t *testing.T) {
		avatar, err := Decode("data:image/jpeg;base64,"+encoded, DefaultLimits())

		require.NoError(t, err)
		assert.Equal(t, "image/png", avatar.ContentType)
	})

	t.Run("should tolerate whitespace and missing padding", func(t *testing.T) {
		var wrapped strings.Builder
		unpadded := strings.TrimRight(encoded, "=")
		for i, r := range unpadded {
			if i > 0 && i%20 == 0 {
				wrapped.WriteString("\r\n")
			}
			wrapped.WriteRune(r)
		}

		avatar, err := Decode("  "+wrapped.String()+"\n", DefaultLimits())

		require.NoError(t, err)
		assert.Equal(t, raw, avatar.Data)
	})

	t.Run("should decode jpeg and gif", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 8, 8))

		var jpg bytes.Buffer
		require.NoError(t, jpeg.Encode(&jpg, img, nil))
		avatar, err := Decode(base64.StdEncoding.EncodeToString(jpg.Bytes()), DefaultLimits())
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", avatar.ContentType)
		assert.Equal(t, ".jpg", avatar.Extension)

		var g bytes.Buffer
		require.NoError(t, gif.Encode(&g, img, nil))
		avatar, err = Decode(base64.StdEncoding.EncodeToString(g.Bytes()), DefaultLimits())
		require.NoError(t, err)
		assert.Equal(t, "image/gif", avatar.ContentType)
	})

	t.Run("should reject empty payload", func(t *testing.T) {
		for _, in := range []string{"", "   ", "data:image/png;base64,"} {
			_, err := Decode(in, DefaultLimits())
			assert.ErrorIs(t, err, ErrEmptyImage)
		}
	})

	t.Run("should reject invalid base64", func(t *testing.T) {
		_, err := Decode("!!!not-base64!!!", DefaultLimits())

		assert.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("should reject non image content", func(t *testing.T) {
		_, err := Decode(base64.StdEncoding.EncodeToString([]byte("hello, plain text")), DefaultLimits())

		assert.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("should reject unsupported image type", func(t *testing.T) {
		tiff := append([]byte("II*\x00"), make([]byte, 64)...)

		_, err := Decode(base64.StdEncoding.EncodeToString(tiff), DefaultLimits())

		assert.ErrorIs(t, err, ErrUnsupportedImageType)
	})

	t.Run("should reject truncated image", func(t *testing.T) {
		_, err := Decode(base64.StdEncoding.EncodeToString(raw[:20]), DefaultLimits())

		assert.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("should reject payload over byte limit", func(t *testing.T) {
		_, err := Decode(encoded, Limits{MaxBytes: 16, MaxDimension: DefaultMaxDimension})

		assert.ErrorIs(t, err, ErrImageTooLarge)
	})

	t.Run("should reject image over dimension limit", func(t *testing.T) {
		_, err := Decode(encoded, Limits{MaxBytes: DefaultMaxBytes, MaxDimension: 16})

		assert.ErrorIs(t, err, ErrImageTooLarge)
		assert.Contains(t, err.Error(), "20x10")
	})
}

func TestObjectKey(t *testing.T) {
	userID := uuid.New()
	avatar := &Avatar{Data: []byte("abc"), Extension: ".png"}

	key := ObjectKey(userID, avatar)

	assert.True(t, strings.HasPrefix(key, userID.String()+"/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Equal(t, key, ObjectKey(userID, avatar))
}

func TestKeyFromURL(t *testing.T) {
	key, ok := KeyFromURL("http://localhost:8080/avatars/", "http://localhost:8080/avatars/u/a.png")
	assert.True(t, ok)
	assert.Equal(t, "u/a.png", key)

	_, ok = KeyFromURL("http://localhost:8080/avatars", "https://cdn.example.com/u/a.png")
	assert.False(t, ok)

	_, ok = KeyFromURL("http://localhost:8080/avatars", "http://localhost:8080/avatars/../etc/passwd")
	assert.False(t, ok)

	_, ok = KeyFromURL("http://localhost:8080/avatars", "http://localhost:8080/avatars/")
	assert.False(t, ok)
}

type keyStore struct {
	Storage
	base string
}

func (s keyStore) Key(url string) (string, bool) {
	return KeyFromURL(s.base, url)
}

func TestDeletableBy(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	store := keyStore{base: "http://localhost:8080/avatars"}

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "own upload", url: "http://localhost:8080/avatars/" + owner.String() + "/a.png", want: true},
		{name: "another user's upload", url: "http://localhost:8080/avatars/" + other.String() + "/a.png"},
		{name: "id prefix without separator", url: "http://localhost:8080/avatars/" + owner.String() + "a.png"},
		{name: "nested under own id", url: "http://localhost:8080/avatars/" + owner.String() + "/x/" + other.String() + ".png"},
		{name: "bare directory", url: "http://localhost:8080/avatars/" + owner.String() + "/"},
		{name: "external url", url: "https://cdn.example.com/" + owner.String() + "/a.png"},
		{name: "empty", url: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeletableBy(store, owner, tt.url))
		})
	}
}
