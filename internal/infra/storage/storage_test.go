package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moura95/account-auth/internal/domain/avatar"
)

var (
	_ avatar.Storage = (*LocalStorage)(nil)
	_ avatar.Storage = (*S3Storage)(nil)
)

func testAvatar() *avatar.Avatar {
	return &avatar.Avatar{Data: []byte("\x89PNG fake"), ContentType: "image/png", Extension: ".png"}
}

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "http://localhost:8080/avatars/")
	require.NoError(t, err)

	url, err := store.Save(ctx, "user-1/abc.png", testAvatar())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/avatars/user-1/abc.png", url)
	key, ok := store.Key(url)
	assert.True(t, ok)
	assert.Equal(t, "user-1/abc.png", key)

	data, err := os.ReadFile(filepath.Join(dir, "user-1", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, testAvatar().Data, data)

	require.NoError(t, store.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(dir, "user-1", "abc.png"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	t.Run("deleting twice is not an error", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, url))
	})

	t.Run("foreign urls are ignored", func(t *testing.T) {
		_, ok := store.Key("https://cdn.example.com/a.png")
		assert.False(t, ok)
		assert.NoError(t, store.Delete(ctx, "https://cdn.example.com/a.png"))
	})

	t.Run("keys cannot escape the directory", func(t *testing.T) {
		_, err := store.Save(ctx, "../escape.png", testAvatar())
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := store.Save(cancelled, "user-1/late.png", testAvatar())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

type fakeUploader struct {
	inputs []*s3manager.UploadInput
	err    error
}

func (f *fakeUploader) Upload(in *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	return f.UploadWithContext(context.Background(), in, opts...)
}

func (f *fakeUploader) UploadWithContext(_ aws.Context, in *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &s3manager.UploadOutput{}, nil
}

type fakeS3 struct {
	s3iface.S3API
	deleted []string
}

func (f *fakeS3) DeleteObjectWithContext(_ aws.Context, in *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.StringValue(in.Bucket)+"/"+aws.StringValue(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage(t *testing.T) {
	ctx := context.Background()

	t.Run("upload and delete", func(t *testing.T) {
		client := &fakeS3{}
		uploader := &fakeUploader{}
		store := NewS3StorageWithClient(client, uploader, S3Config{Bucket: "avatars", Region: "us-east-1"})

		url, err := store.Save(ctx, "user-1/abc.png", testAvatar())
		require.NoError(t, err)
		assert.Equal(t, "https://avatars.s3.us-east-1.amazonaws.com/user-1/abc.png", url)

		require.Len(t, uploader.inputs, 1)
		assert.Equal(t, "image/png", aws.StringValue(uploader.inputs[0].ContentType))
		assert.Equal(t, "user-1/abc.png", aws.StringValue(uploader.inputs[0].Key))

		require.NoError(t, store.Delete(ctx, url))
		assert.Equal(t, []string{"avatars/user-1/abc.png"}, client.deleted)
	})

	t.Run("custom endpoint", func(t *testing.T) {
		store := NewS3StorageWithClient(&fakeS3{}, &fakeUploader{}, S3Config{Bucket: "avatars", Endpoint: "http://localhost:9000/"})

		url, err := store.Save(ctx, "k.png", testAvatar())
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/avatars/k.png", url)
	})

	t.Run("upload failure", func(t *testing.T) {
		store := NewS3StorageWithClient(&fakeS3{}, &fakeUploader{err: errors.New("denied")}, S3Config{Bucket: "avatars", Region: "us-east-1"})

		_, err := store.Save(ctx, "k.png", testAvatar())
		assert.ErrorContains(t, err, "denied")
	})

	t.Run("foreign urls are not deleted", func(t *testing.T) {
		client := &fakeS3{}
		store := NewS3StorageWithClient(client, &fakeUploader{}, S3Config{Bucket: "avatars", Region: "us-east-1"})

		require.NoError(t, store.Delete(ctx, "https://cdn.example.com/a.png"))
		assert.Empty(t, client.deleted)
	})
}
