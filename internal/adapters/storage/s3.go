package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/aibrid/zipo-server/internal/domain"
)

// S3Config holds configuration for the S3 upload bucket.
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

type s3Signer struct {
	presign *s3.PresignClient
	bucket  string
}

// NewS3Signer returns an UploadURLSigner backed by S3 pre-signed PUT URLs.
func NewS3Signer(config S3Config) domain.UploadURLSigner {
	awsCfg := aws.Config{
		Region: config.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			),
		),
	}
	client := s3.NewFromConfig(awsCfg)
	return &s3Signer{
		presign: s3.NewPresignClient(client),
		bucket:  config.Bucket,
	}
}

func (s *s3Signer) SignUploadURL(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presign put object: %w", err)
	}
	return req.URL, nil
}
