package services

import (
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// StorageService archives uploaded import files in S3-compatible storage
type StorageService struct {
	s3Client *s3.S3
	bucket   string
}

// NewStorageService creates a new storage service from S3_* env vars
func NewStorageService() (*StorageService, error) {
	endpoint := os.Getenv("S3_ENDPOINT")
	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")
	bucket := os.Getenv("S3_BUCKET")

	if accessKey == "" || secretKey == "" || bucket == "" {
		return nil, fmt.Errorf("S3 configuration missing")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("us-east-1"),
		Endpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(
			accessKey,
			secretKey,
			"",
		),
		DisableSSL:       aws.Bool(true),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		bucket:   bucket,
	}, nil
}

// UploadImportFile stores the raw uploaded file under the workspace prefix
// and returns the object key
func (s *StorageService) UploadImportFile(workspaceID, sessionID uuid.UUID, filename string, reader io.ReadSeeker) (string, error) {
	key := fmt.Sprintf("%s/imports/%s/%s", workspaceID, sessionID, filename)

	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload import file: %w", err)
	}

	return key, nil
}

// DownloadImportFile fetches a previously archived import file
func (s *StorageService) DownloadImportFile(key string) (io.ReadCloser, error) {
	out, err := s.s3Client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download import file: %w", err)
	}
	return out.Body, nil
}

// DeleteImportFile removes an archived import file. Missing objects are
// not treated as errors.
func (s *StorageService) DeleteImportFile(key string) error {
	if key == "" {
		return nil
	}
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete import file: %w", err)
	}
	return nil
}
