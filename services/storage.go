package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// CardStorage yields display URLs for card assets held in object storage.
type CardStorage interface {
	CardURL(ctx context.Context, ownerID, collectionID, cardID string) (string, error)
}

// S3Storage signs time-limited GET URLs for card objects.
type S3Storage struct {
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration
}

func NewS3Storage(ctx context.Context, bucket string, expiry time.Duration) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3Storage{
		presign: s3.NewPresignClient(s3.NewFromConfig(cfg)),
		bucket:  bucket,
		expiry:  expiry,
	}, nil
}

func (s *S3Storage) CardURL(ctx context.Context, ownerID, collectionID, cardID string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(bucketKey(ownerID, collectionID, cardID)),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("presign card %s: %w", cardID, err)
	}
	return req.URL, nil
}

// bucketKey mirrors the layout card assets are uploaded under.
func bucketKey(ownerID, collectionID, cardID string) string {
	return fmt.Sprintf("card/%s/%s/%s", ownerID, collectionID, cardID)
}
