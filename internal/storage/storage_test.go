package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GitDDAN/padel-palms-proposal/internal/config"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{ETag: aws.String(`"abc123"`)}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUpload(t *testing.T) {
	fake := &fakeS3{}
	svc := newService(fake, config.StorageConfig{Endpoint: "http://minio:9000/", Bucket: "event-posts"}, testLogger())

	res, err := svc.Upload(context.Background(), "2026/10/x.png", []byte("png"), UploadOptions{ContentType: "image/png"})

	require.NoError(t, err)
	assert.Equal(t, "abc123", res.ETag)
	assert.Equal(t, int64(3), res.Size)
	assert.Equal(t, "http://minio:9000/event-posts/2026/10/x.png", res.URL)
	assert.Equal(t, "event-posts", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "image/png", aws.ToString(fake.input.ContentType))
	assert.Equal(t, []byte("png"), fake.body)
}

func TestUpload_Error(t *testing.T) {
	svc := newService(&fakeS3{err: errors.New("denied")}, config.StorageConfig{Bucket: "b"}, testLogger())

	_, err := svc.Upload(context.Background(), "k", nil, UploadOptions{})
	assert.ErrorContains(t, err, "denied")
}

func TestDisabled(t *testing.T) {
	var nilSvc *Service
	assert.False(t, nilSvc.Enabled())

	svc, err := NewService(&config.Config{}, testLogger())
	require.NoError(t, err)
	assert.False(t, svc.Enabled())

	_, err = svc.Upload(context.Background(), "k", []byte("x"), UploadOptions{})
	assert.Error(t, err)
}

func TestObjectURL_PublicBase(t *testing.T) {
	svc := newService(&fakeS3{}, config.StorageConfig{Bucket: "b", PublicURL: "https://cdn.padelandpalms.com/"}, testLogger())
	assert.Equal(t, "https://cdn.padelandpalms.com/a/b.png", svc.ObjectURL("a/b.png"))
}

func TestGenerateImageKey(t *testing.T) {
	key := GenerateImageKey(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), "padel-palms-Sunset Social.png")
	assert.Regexp(t, `^2026/03/[0-9a-f-]{36}-padel-palms-sunset_social\.png$`, key)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "unnamed"},
		{"___", "unnamed"},
		{"Hello  World!!.PNG", "hello_world_.png"},
		{"ok-name_1.png", "ok-name_1.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), tt.in)
	}
}
