package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	appconfig "github.com/koxtuichi/photo-upload-s3-app/internal/config"
	"github.com/koxtuichi/photo-upload-s3-app/internal/logging"
	"github.com/koxtuichi/photo-upload-s3-app/internal/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
)

// Client wraps the S3 API with the handful of operations the pipeline
// needs. All methods take a context so Lambda deadlines propagate into
// the SDK.
type Client struct {
	client   *s3.Client
	uploader *manager.Uploader
	presign  *s3.PresignClient
	bucket   string
}

// New builds a client from configuration. An empty endpoint uses the
// regular AWS resolution; a non-empty one switches to path-style
// addressing for S3-compatible services. Static credentials are used
// only when an access key is configured, otherwise the default chain
// (IAM role in Lambda) applies.
func New(ctx context.Context, cfg appconfig.S3Config) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		client:   client,
		uploader: manager.NewUploader(client),
		presign:  s3.NewPresignClient(client),
		bucket:   cfg.Bucket,
	}, nil
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

// Download fetches an object and returns its bytes and content type.
func (c *Client) Download(ctx context.Context, key string) ([]byte, string, error) {
	start := time.Now()
	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		metrics.DownloadsTotal.WithLabelValues("error").Inc()
		return nil, "", fmt.Errorf("failed to download %q: %w", key, err)
	}
	defer out.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(out.Body); err != nil {
		metrics.DownloadsTotal.WithLabelValues("error").Inc()
		return nil, "", fmt.Errorf("failed to read body for %q: %w", key, err)
	}

	metrics.DownloadsTotal.WithLabelValues("ok").Inc()
	metrics.TransferDuration.WithLabelValues("download").Observe(time.Since(start).Seconds())
	logging.Debug("downloaded %s (%d bytes)", key, buf.Len())

	return buf.Bytes(), aws.ToString(out.ContentType), nil
}

// Upload stores an object with the given content type and metadata.
// An empty content type is sniffed from the payload.
func (c *Client) Upload(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) error {
	if contentType == "" {
		contentType = DetectContentType(data)
	}

	start := time.Now()
	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata:    metadata,
	})
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to upload %q: %w", key, err)
	}

	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	metrics.TransferDuration.WithLabelValues("upload").Observe(time.Since(start).Seconds())
	logging.Debug("uploaded %s (%d bytes, %s)", key, len(data), contentType)

	return nil
}

// PresignGet returns a time-limited download URL for an object.
func (c *Client) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign %q: %w", key, err)
	}
	return req.URL, nil
}

// DetectContentType sniffs a MIME type from payload bytes.
func DetectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}
