// Package storage uploads generated images to S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/GitDDAN/padel-palms-proposal/internal/config"
	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
)

var Module = fx.Module("storage",
	fx.Provide(NewService),
)

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Service provides S3-compatible storage operations
type Service struct {
	client    putObjectAPI
	bucket    string
	endpoint  string
	publicURL string
	log       *slog.Logger
}

// UploadOptions configures an upload operation
type UploadOptions struct {
	ContentType        string
	ContentDisposition string
	Metadata           map[string]string
}

// UploadResult contains information about an uploaded object
type UploadResult struct {
	Key    string
	Bucket string
	ETag   string
	Size   int64
	URL    string
}

// NewService creates the storage service. It is disabled, not nil, when no
// endpoint or credentials are configured.
func NewService(cfg *config.Config, log *slog.Logger) (*Service, error) {
	log = log.With(logger.Scope("storage"))
	sc := cfg.Storage

	if !sc.Enabled() {
		log.Warn("storage service disabled - no configuration provided")
		return &Service{log: log}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(sc.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			sc.AccessKey,
			sc.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Path-style addressing is required for MinIO.
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(sc.Endpoint)
		o.UsePathStyle = true
	})

	log.Info("storage service initialized",
		slog.String("endpoint", sc.Endpoint),
		slog.String("bucket", sc.Bucket),
	)

	return newService(client, sc, log), nil
}

func newService(client putObjectAPI, sc config.StorageConfig, log *slog.Logger) *Service {
	return &Service{
		client:    client,
		bucket:    sc.Bucket,
		endpoint:  strings.TrimRight(sc.Endpoint, "/"),
		publicURL: strings.TrimRight(sc.PublicURL, "/"),
		log:       log,
	}
}

// Enabled returns true if the storage service is properly configured
func (s *Service) Enabled() bool {
	return s != nil && s.client != nil
}

// Upload stores data under key in the images bucket.
func (s *Service) Upload(ctx context.Context, key string, data []byte, opts UploadOptions) (*UploadResult, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("storage service not enabled")
	}

	size := int64(len(data))
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if opts.ContentDisposition != "" {
		input.ContentDisposition = aws.String(opts.ContentDisposition)
	}
	if len(opts.Metadata) > 0 {
		input.Metadata = opts.Metadata
	}

	result, err := s.client.PutObject(ctx, input)
	if err != nil {
		s.log.Error("failed to upload object",
			slog.String("key", key),
			logger.Error(err),
		)
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	etag := ""
	if result.ETag != nil {
		etag = strings.Trim(*result.ETag, "\"")
	}

	s.log.Debug("object uploaded",
		slog.String("key", key),
		slog.String("bucket", s.bucket),
		slog.Int64("size", size),
	)

	return &UploadResult{
		Key:    key,
		Bucket: s.bucket,
		ETag:   etag,
		Size:   size,
		URL:    s.ObjectURL(key),
	}, nil
}

// ObjectURL is where key can be fetched from: the public base URL when one
// is configured, else the path-style endpoint URL.
func (s *Service) ObjectURL(key string) string {
	if s.publicURL != "" {
		return s.publicURL + "/" + key
	}
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
}

// GenerateImageKey creates a storage key for a generated image
// Format: {yyyy}/{mm}/{uuid}-{sanitized_filename}
func GenerateImageKey(now time.Time, filename string) string {
	return fmt.Sprintf("%s/%s-%s", now.UTC().Format("2006/01"), uuid.New().String(), SanitizeFilename(filename))
}

var (
	unsafeChars      = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	repeatedUnderbar = regexp.MustCompile(`_{2,}`)
)

// SanitizeFilename cleans a filename for storage
func SanitizeFilename(filename string) string {
	sanitized := unsafeChars.ReplaceAllString(filename, "_")
	sanitized = repeatedUnderbar.ReplaceAllString(sanitized, "_")
	sanitized = strings.ToLower(strings.Trim(sanitized, "_"))

	if len(sanitized) > 200 {
		sanitized = sanitized[:200]
	}
	if sanitized == "" {
		return "unnamed"
	}
	return sanitized
}
