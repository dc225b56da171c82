package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rpupo63/folio-backend/config"
	"github.com/rs/zerolog/log"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads media to a bucket. Objects are addressed through baseURL,
// which may point at a CDN in front of the bucket.
type S3Store struct {
	client  putObjectAPI
	bucket  string
	prefix  string
	baseURL string
}

func NewS3Store(client putObjectAPI, bucket, prefix, baseURL string) *S3Store {
	return &S3Store{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// NewS3StoreFromConfig reads MEDIA_S3_BUCKET, MEDIA_S3_PREFIX and MEDIA_BASE_URL.
// Credentials and region come from the default AWS chain.
func NewS3StoreFromConfig(ctx context.Context, c config.Config) (*S3Store, error) {
	bucket := config.GetString(c, "MEDIA_S3_BUCKET", "")
	if bucket == "" {
		return nil, fmt.Errorf("MEDIA_S3_BUCKET is required when MEDIA_BACKEND=s3")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	baseURL := config.GetString(c, "MEDIA_BASE_URL", "")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, awsCfg.Region)
	}

	log.Info().Str("bucket", bucket).Msg("Using S3 media store")
	return NewS3Store(s3.NewFromConfig(awsCfg), bucket, config.GetString(c, "MEDIA_S3_PREFIX", ""), baseURL), nil
}

func (s *S3Store) Save(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	objectKey := strings.TrimPrefix(key, "/")
	if s.prefix != "" {
		objectKey = s.prefix + "/" + objectKey
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("upload %s to s3: %w", objectKey, err)
	}
	return s.baseURL + "/" + objectKey, nil
}
