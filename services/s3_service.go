package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"spill/models"
)

// S3API is the part of the S3 client the photo storage uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3PhotoStorage uploads photos to a bucket. URLs point at PublicBaseURL
// (a CDN in front of the bucket) or, without one, at the bucket itself.
type S3PhotoStorage struct {
	Client        S3API
	Bucket        string
	Region        string
	PublicBaseURL string
	Logger        *zap.Logger
}

func NewS3PhotoStorage(cfg aws.Config, bucket, publicBaseURL string, logger *zap.Logger) *S3PhotoStorage {
	return &S3PhotoStorage{
		Client:        s3.NewFromConfig(cfg),
		Bucket:        bucket,
		Region:        cfg.Region,
		PublicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		Logger:        logger,
	}
}

func (s *S3PhotoStorage) Put(ctx context.Context, userID int64, photo models.Attachment) (string, error) {
	key := photoKey(userID, photo, time.Now())
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(photo.Data),
		ContentType: aws.String(photo.ContentType),
	})
	if err != nil {
		s.Logger.Error("s3 upload failed",
			zap.Int64("user_id", userID),
			zap.String("key", key),
			zap.Error(err))
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	s.Logger.Info("photo uploaded", zap.Int64("user_id", userID), zap.String("key", key))
	return s.objectURL(key), nil
}

func (s *S3PhotoStorage) objectURL(key string) string {
	if s.PublicBaseURL != "" {
		return s.PublicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.Bucket, s.Region, key)
}
