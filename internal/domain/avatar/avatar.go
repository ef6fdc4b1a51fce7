package avatar

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxBytes     = 2 << 20
	DefaultMaxDimension = 4096
)

var (
	ErrEmptyImage           = errors.New("image is empty")
	ErrInvalidImage         = errors.New("invalid image payload")
	ErrImageTooLarge        = errors.New("image is too large")
	ErrUnsupportedImageType = errors.New("unsupported image type")
)

var allowedTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Limits struct {
	MaxBytes     int
	MaxDimension int
}

func DefaultLimits() Limits {
	return Limits{MaxBytes: DefaultMaxBytes, MaxDimension: DefaultMaxDimension}
}

// Avatar is a decoded and validated image64 payload.
type Avatar struct {
	Data        []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
}

// Decode parses a bare base64 string or a data URL
// ("data:image/png;base64,....") into an Avatar. The content type is
// sniffed from the decoded bytes; any type declared in the data URL is
// ignored.
func Decode(image64 string, limits Limits) (*Avatar, error) {
	if limits.MaxBytes <= 0 {
		limits.MaxBytes = DefaultMaxBytes
	}
	if limits.MaxDimension <= 0 {
		limits.MaxDimension = DefaultMaxDimension
	}

	payload := stripDataURL(strings.TrimSpace(image64))
	payload = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, payload)
	if payload == "" {
		return nil, ErrEmptyImage
	}

	if base64.RawStdEncoding.DecodedLen(len(strings.TrimRight(payload, "="))) > limits.MaxBytes {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrImageTooLarge, limits.MaxBytes)
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	mime := mimetype.Detect(data)
	contentType := strings.Split(mime.String(), ";")[0]
	ext, ok := allowedTypes[contentType]
	if !ok {
		if !strings.HasPrefix(contentType, "image/") {
			return nil, fmt.Errorf("%w: not an image (%s)", ErrInvalidImage, contentType)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImageType, contentType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty dimensions", ErrInvalidImage)
	}
	if cfg.Width > limits.MaxDimension || cfg.Height > limits.MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds %dpx", ErrImageTooLarge, cfg.Width, cfg.Height, limits.MaxDimension)
	}

	return &Avatar{
		Data:        data,
		ContentType: contentType,
		Extension:   ext,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

func stripDataURL(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.Index(s, ","); i >= 0 {
		return s[i+1:]
	}
	return ""
}

func decodeBase64(s string) ([]byte, error) {
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	if data, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); err == nil {
		return data, nil
	}
	// Some clients send the URL-safe alphabet.
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}
