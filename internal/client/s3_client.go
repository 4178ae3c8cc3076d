package client

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	appConfig "heritage-archive-api/internal/config"
	"heritage-archive-api/internal/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Media kinds accepted by GenerateMediaKey
const (
	MediaKindArtifacts     = "artifacts"
	MediaKindOralHistories = "oral-histories"
	MediaKindResearch      = "research"
	MediaKindProducts      = "products"
)

// S3ClientInterface defines the interface for object storage operations
type S3ClientInterface interface {
	GenerateMediaKey(kind, fileName string) (string, error)
	PresignUpload(ctx context.Context, kind, fileName, contentType string) (string, string, time.Time, error)
	PresignDownload(ctx context.Context, key string) (string, time.Time, error)
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	GetFileURL(key string) string
}

// S3Client wraps the AWS S3 client and implements S3ClientInterface
type S3Client struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	region        string
	endpoint      string
	presignExpiry time.Duration
	metrics       *metrics.Metrics
}

// WithMetrics attaches the external API collectors so every S3 call is
// recorded. Returns the client for chaining at construction time.
func (c *S3Client) WithMetrics(m *metrics.Metrics) *S3Client {
	c.metrics = m
	return c
}

// recordCall reports one S3 operation to the external API metrics. The SDK
// does not surface HTTP status codes on the happy path, so success is 200 and
// failure classifies by the error text.
func (c *S3Client) recordCall(operation, method string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	status := 200
	if err != nil {
		status = 0
	}
	c.metrics.RecordExternalAPICall(operation, method, status, time.Since(start), err)
}

// NewS3Client creates a new S3 client. With an endpoint configured it targets
// a local MinIO with path-style addressing and static credentials; otherwise
// it uses the default AWS credential chain.
func NewS3Client(cfg *appConfig.S3Config) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}

	var awsCfg aws.Config
	var err error

	if cfg.Endpoint != "" {
		if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
			return nil, fmt.Errorf("access key and secret key are required for a custom endpoint")
		}

		awsCfg, err = config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			)),
			config.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
				func(service, region string, options ...interface{}) (aws.Endpoint, error) {
					return aws.Endpoint{
						URL:               cfg.Endpoint,
						HostnameImmutable: true,
						SigningRegion:     cfg.Region,
					}, nil
				},
			)),
		)
	} else {
		awsCfg, err = config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(cfg.Region),
		)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.UsePathStyle = true
		}
	})

	return &S3Client{
		client:        s3Client,
		presignClient: s3.NewPresignClient(s3Client),
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		endpoint:      cfg.Endpoint,
		presignExpiry: cfg.PresignExpiry,
	}, nil
}

// GenerateMediaKey generates a unique object key.
// Format: media/{kind}/{year}/{month}/{uuid}_{timestamp}{ext}
func (c *S3Client) GenerateMediaKey(kind, fileName string) (string, error) {
	switch kind {
	case MediaKindArtifacts, MediaKindOralHistories, MediaKindResearch, MediaKindProducts:
	default:
		return "", fmt.Errorf("invalid media kind: %s", kind)
	}

	now := time.Now()
	key := fmt.Sprintf("media/%s/%s/%s/%s_%d%s",
		kind, now.Format("2006"), now.Format("01"),
		uuid.New().String(), now.Unix(), path.Ext(fileName))
	return key, nil
}

// PresignUpload generates a presigned PUT URL for uploading a media file.
// It returns the URL, the generated object key and the expiry time.
func (c *S3Client) PresignUpload(ctx context.Context, kind, fileName, contentType string) (string, string, time.Time, error) {
	key, err := c.GenerateMediaKey(kind, fileName)
	if err != nil {
		return "", "", time.Time{}, err
	}

	start := time.Now()
	presignedReq, err := c.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = c.presignExpiry
	})
	c.recordCall("s3/presign-upload", "PUT", start, err)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to generate presigned upload URL: %w", err)
	}

	return c.rewriteEndpoint(presignedReq.URL), key, time.Now().Add(c.presignExpiry), nil
}

// PresignDownload generates a presigned GET URL for a stored media file
func (c *S3Client) PresignDownload(ctx context.Context, key string) (string, time.Time, error) {
	start := time.Now()
	presignedReq, err := c.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = c.presignExpiry
	})
	c.recordCall("s3/presign-download", "GET", start, err)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate presigned download URL: %w", err)
	}
	return c.rewriteEndpoint(presignedReq.URL), time.Now().Add(c.presignExpiry), nil
}

// rewriteEndpoint swaps the in-cluster MinIO host for the externally
// reachable one so presigned URLs work from the browser.
func (c *S3Client) rewriteEndpoint(url string) string {
	if c.endpoint == "" {
		return url
	}
	const internalMinIOHost = "minio:9000"
	externalHost := strings.TrimPrefix(strings.TrimPrefix(c.endpoint, "http://"), "https://")
	return strings.Replace(url, internalMinIOHost, externalHost, 1)
}

// UploadFile uploads a file directly and returns its public URL
func (c *S3Client) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	start := time.Now()
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	c.recordCall("s3/put-object", "PUT", start, err)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return c.GetFileURL(key), nil
}

// DeleteFile deletes a file from object storage
func (c *S3Client) DeleteFile(ctx context.Context, key string) error {
	start := time.Now()
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	c.recordCall("s3/delete-object", "DELETE", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// GetFileURL returns the public URL for a stored object
func (c *S3Client) GetFileURL(key string) string {
	if c.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(c.endpoint, "/"), c.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}
