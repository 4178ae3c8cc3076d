package client

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MockS3Client implements S3ClientInterface for testing without AWS credentials
type MockS3Client struct {
	Bucket   string
	Region   string
	Endpoint string

	// Optional function overrides for custom test behavior
	GenerateMediaKeyFunc func(kind, fileName string) (string, error)
	PresignUploadFunc    func(ctx context.Context, kind, fileName, contentType string) (string, string, time.Time, error)
	PresignDownloadFunc  func(ctx context.Context, key string) (string, time.Time, error)
	UploadFileFunc       func(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	DeleteFileFunc       func(ctx context.Context, key string) error
	GetFileURLFunc       func(key string) string
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{
		Bucket:   "test-bucket",
		Region:   "us-east-1",
		Endpoint: "",
	}
}

// GenerateMediaKey generates a unique object key
func (m *MockS3Client) GenerateMediaKey(kind, fileName string) (string, error) {
	if m.GenerateMediaKeyFunc != nil {
		return m.GenerateMediaKeyFunc(kind, fileName)
	}

	switch kind {
	case MediaKindArtifacts, MediaKindOralHistories, MediaKindResearch, MediaKindProducts:
	default:
		return "", fmt.Errorf("invalid media kind: %s", kind)
	}

	now := time.Now()
	key := fmt.Sprintf("media/%s/%d/%02d/%s_%d%s",
		kind,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		now.UnixNano(),
		path.Ext(fileName),
	)
	return key, nil
}

// PresignUpload generates a mock presigned PUT URL for testing
func (m *MockS3Client) PresignUpload(ctx context.Context, kind, fileName, contentType string) (string, string, time.Time, error) {
	if m.PresignUploadFunc != nil {
		return m.PresignUploadFunc(ctx, kind, fileName, contentType)
	}

	key, err := m.GenerateMediaKey(kind, fileName)
	if err != nil {
		return "", "", time.Time{}, err
	}

	expiresAt := time.Now().Add(15 * time.Minute)
	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s?X-Amz-Algorithm=AWS4-HMAC-SHA256&X-Amz-Expires=900&X-Amz-SignedHeaders=host&X-Amz-Signature=mocksignature123",
		m.Bucket, m.Region, key)
	return url, key, expiresAt, nil
}

// PresignDownload generates a mock presigned GET URL for testing
func (m *MockS3Client) PresignDownload(ctx context.Context, key string) (string, time.Time, error) {
	if m.PresignDownloadFunc != nil {
		return m.PresignDownloadFunc(ctx, key)
	}

	expiresAt := time.Now().Add(15 * time.Minute)
	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s?X-Amz-Algorithm=AWS4-HMAC-SHA256&X-Amz-Expires=900&X-Amz-SignedHeaders=host&X-Amz-Signature=mocksignature123",
		m.Bucket, m.Region, key)
	return url, expiresAt, nil
}

// UploadFile simulates a direct upload
func (m *MockS3Client) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, key, file, contentType)
	}
	return m.GetFileURL(key), nil
}

// DeleteFile simulates a deletion
func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}
	return nil
}

// GetFileURL returns the public URL for a stored object
func (m *MockS3Client) GetFileURL(key string) string {
	if m.GetFileURLFunc != nil {
		return m.GetFileURLFunc(key)
	}
	if m.Endpoint != "" && !strings.Contains(m.Endpoint, "amazonaws.com") {
		return fmt.Sprintf("%s/%s/%s", m.Endpoint, m.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Bucket, m.Region, key)
}

// Ensure MockS3Client implements S3ClientInterface
var _ S3ClientInterface = (*MockS3Client)(nil)
