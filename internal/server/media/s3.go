package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	now      = time.Now
	newKeyID = uuid.NewString
)

type S3Config struct {
	AccessKey     string
	SecretKey     string
	Bucket        string
	Region        string
	BaseEndpoint  string
	PublicBaseURL string
	MaxBytes      int64
}

// S3Host uploads to a bucket using path-style addressing, which MinIO and
// most S3-compatible hosts expect.
type S3Host struct {
	cfg    S3Config
	client *s3.Client
}

func NewS3Host(ctx context.Context, cfg S3Config) (*S3Host, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Host{cfg: cfg, client: client}, nil
}

// StorageKey returns folder/YYYY/M/D/<uuid><ext> for the current date.
func StorageKey(folder, ext string) string {
	d := now()
	return fmt.Sprintf("%s/%d/%d/%d/%s%s", folder, d.Year(), d.Month(), d.Day(), newKeyID(), ext)
}

func (h *S3Host) Upload(ctx context.Context, folder string, f File) (string, error) {
	ext, contentType, err := Validate(f, h.cfg.MaxBytes)
	if err != nil {
		return "", err
	}

	key := StorageKey(folder, ext)
	in := &s3.PutObjectInput{
		Bucket:      aws.String(h.cfg.Bucket),
		Key:         aws.String(key),
		Body:        f.Body,
		ContentType: aws.String(contentType),
	}
	if f.Size > 0 {
		in.ContentLength = aws.Int64(f.Size)
	}

	if _, err := putObject(h.client, ctx, in); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return h.publicURL(key), nil
}

func (h *S3Host) publicURL(key string) string {
	if h.cfg.PublicBaseURL != "" {
		return strings.TrimRight(h.cfg.PublicBaseURL, "/") + "/" + key
	}
	return strings.TrimRight(h.cfg.BaseEndpoint, "/") + "/" + h.cfg.Bucket + "/" + key
}
