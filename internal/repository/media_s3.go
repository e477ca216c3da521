package repository

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/ufuqacademy/ufuq/internal/config"
)

// Site media is immutable once written (new uploads get new ULID names), so
// far-future caching is safe.
const mediaCacheControl = "public, max-age=31536000"

// MediaS3Repository implements domain.FileRepository against any S3-compatible
// object store (MinIO, SeaweedFS, AWS). Uploaded site media (team photos,
// testimonial images, hero/logo images) is served straight from the bucket.
type MediaS3Repository struct {
	client *s3.Client
	bucket string
	base   string
}

func NewMediaS3Repository(ctx context.Context, cfg appConfig.S3Config) (*MediaS3Repository, error) {
	// Self-hosted S3-compatible stores mostly only check the signature shape,
	// so static placeholder credentials with an endpoint override suffice.
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("any", "any", "")),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // Required for most S3-compatible stores
	})

	r := &MediaS3Repository{
		client: client,
		bucket: cfg.Bucket,
		base:   strings.TrimRight(cfg.Endpoint, "/"),
	}
	if err := r.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Upload writes the file under media/<filename> and returns its public URL.
func (r *MediaS3Repository) Upload(ctx context.Context, file []byte, filename string, contentType string) (string, error) {
	key := "media/" + filename

	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(r.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(file),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(mediaCacheControl),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s/%s", r.base, r.bucket, key), nil
}

func (r *MediaS3Repository) ensureBucket(ctx context.Context) error {
	if _, err := r.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(r.bucket)}); err == nil {
		return nil
	}
	if _, err := r.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(r.bucket)}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", r.bucket, err)
	}
	return nil
}
