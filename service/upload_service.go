package service

import (
	"context"
	"fmt"
	appcfg "go-vidtube-api/config"
	"go-vidtube-api/logger"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// IUploader is the blob storage contract: store a file, get back a public URL.
type IUploader interface {
	Upload(ctx context.Context, body io.Reader, contentType, folder string) (string, error)
}

// UploadService stores media files (avatars, cover images, video files,
// thumbnails) in an S3-compatible bucket.
type UploadService struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

func NewUploadService(storageCfg appcfg.Config) (*UploadService, error) {
	cfg := storageCfg.Storage

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // required for MinIO-style endpoints
	})

	return &UploadService{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

// storageKey generates a collision-free object key under the given folder,
// partitioned by date for easier housekeeping.
func storageKey(folder string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%d/%d/%v", folder, d.Year(), d.Month(), d.Day(), uuid.New())
}

// Upload stores the file and returns its public URL.
func (s *UploadService) Upload(ctx context.Context, body io.Reader, contentType, folder string) (string, error) {
	key := storageKey(folder)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Log.WithError(err).WithField("key", key).Error("Failed to upload object")
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, key), nil
}
