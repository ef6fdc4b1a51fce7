package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"

	"github.com/moura95/account-auth/internal/domain/avatar"
)

type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string
	// BaseURL overrides the public URL prefix; derived from the bucket when empty.
	BaseURL string
}

// S3Storage uploads avatars as public-read objects.
type S3Storage struct {
	client   s3iface.S3API
	uploader s3manageriface.UploaderAPI
	bucket   string
	baseURL  string
}

func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	awsCfg := aws.NewConfig().WithRegion(cfg.Region)
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint).WithS3ForcePathStyle(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("storage: create aws session failed: %w", err)
	}

	client := s3.New(sess)
	return NewS3StorageWithClient(client, s3manager.NewUploaderWithClient(client), cfg), nil
}

func NewS3StorageWithClient(client s3iface.S3API, uploader s3manageriface.UploaderAPI, cfg S3Config) *S3Storage {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Endpoint != "" {
			baseURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &S3Storage{
		client:   client,
		uploader: uploader,
		bucket:   cfg.Bucket,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

func (s *S3Storage) Save(ctx context.Context, key string, a *avatar.Avatar) (string, error) {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(a.Data),
		ContentType:  aws.String(a.ContentType),
		ACL:          aws.String(s3.ObjectCannedACLPublicRead),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload avatar failed: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *S3Storage) Delete(ctx context.Context, url string) error {
	key, ok := avatar.KeyFromURL(s.baseURL, url)
	if !ok {
		return nil
	}

	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: delete avatar failed: %w", err)
	}
	return nil
}

func (s *S3Storage) Key(url string) (string, bool) {
	return avatar.KeyFromURL(s.baseURL, url)
}
