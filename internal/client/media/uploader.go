// Package media uploads captured meal photos and recordings to S3-compatible
// storage so the meals API receives a reachable path.
package media

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	cc "github.com/dmitrijs2005/eatsbalance/internal/client/config"
)

// Uploader turns a local media file into the path stored with a meal.
type Uploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

// LocalOnly keeps media on this machine and returns the path unchanged.
type LocalOnly struct{}

func (LocalOnly) Upload(_ context.Context, path string) (string, error) {
	return path, nil
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	client    objectPutter
	bucket    string
	publicURL string
	now       func() time.Time
}

// NewUploader returns LocalOnly when no bucket is configured.
func NewUploader(ctx context.Context, c cc.S3Config) (Uploader, error) {
	if !c.Enabled() {
		return LocalOnly{}, nil
	}
	return NewS3Uploader(ctx, c)
}

func NewS3Uploader(ctx context.Context, c cc.S3Config) (*S3Uploader, error) {
	opts := []func(*config.LoadOptions) error{}
	if c.Region != "" {
		opts = append(opts, config.WithRegion(c.Region))
	}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{
		client:    client,
		bucket:    c.Bucket,
		publicURL: strings.TrimRight(c.PublicBaseURL, "/"),
		now:       time.Now,
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	key := u.objectKey(ext)

	in := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		in.ContentType = aws.String(ct)
	}

	if _, err := u.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}

	if u.publicURL != "" {
		return u.publicURL + "/" + key, nil
	}
	return "s3://" + u.bucket + "/" + key, nil
}

func (u *S3Uploader) objectKey(ext string) string {
	d := u.now().UTC()
	return fmt.Sprintf("meals/%04d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.NewString(), ext)
}
