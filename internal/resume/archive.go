package resume

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/config"
)

const defaultRegion = "auto"

// Archive stores uploaded resume files in an S3-compatible bucket.
type Archive struct {
	client *s3.Client
	bucket string
	now    func() time.Time
}

// NewArchive builds an Archive from cfg. It returns nil, nil when no bucket is
// configured. A non-empty Endpoint targets an S3-compatible service such as R2
// or MinIO with path-style addressing.
func NewArchive(ctx context.Context, cfg config.StorageConfig) (*Archive, error) {
	if cfg.Bucket == "" {
		return nil, nil
	}

	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Archive{client: client, bucket: cfg.Bucket, now: time.Now}, nil
}

// Put uploads data and returns its object key.
func (a *Archive) Put(ctx context.Context, userID uuid.UUID, filename, mimeType string, data []byte) (string, error) {
	key := a.objectKey(userID, filename)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive resume: %w", err)
	}
	return key, nil
}

func (a *Archive) objectKey(userID uuid.UUID, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "resume"
	}
	return fmt.Sprintf("resumes/%s/%s-%s", userID, a.now().UTC().Format("20060102T150405Z"), base)
}
