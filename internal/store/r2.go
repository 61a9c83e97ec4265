// Package store provides access to the prepared weekly availability
// tables. The canonical deployment keeps them in a Cloudflare R2
// bucket (uploaded by the data preparation pipeline, optionally
// zstd-compressed); a local directory source covers development and
// tests. Keys follow {campusSlug}/{building}/week-{N}-free-rooms.csv.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/klauspost/compress/zstd"

	apperrors "github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/errors"
)

// ErrNotFound is returned when a table object does not exist.
var ErrNotFound = apperrors.ErrNotFound

// CompressedSuffix marks zstd-compressed table objects.
const CompressedSuffix = ".zst"

// Config holds R2 client configuration.
type Config struct {
	Endpoint    string // R2 endpoint URL (e.g., https://account-id.r2.cloudflarestorage.com)
	AccessKeyID string
	SecretKey   string
	BucketName  string
}

// Client fetches availability tables from R2 object storage.
type Client struct {
	s3     *s3.Client
	bucket string
}

// New creates a new R2 table client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.SecretKey == "" || cfg.BucketName == "" {
		return nil, errors.New("store: all config fields are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("store: load aws config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // Required for R2
	})

	return &Client{
		s3:     s3Client,
		bucket: cfg.BucketName,
	}, nil
}

// FetchTable downloads the table text stored under key. When the plain
// object is missing it retries key + ".zst" and decompresses, so the
// upload pipeline may store either form. Returns ErrNotFound when
// neither object exists.
func (c *Client) FetchTable(ctx context.Context, key string) (string, error) {
	if err := keySanity(key); err != nil {
		return "", err
	}
	raw, err := c.download(ctx, key)
	if err == nil {
		return string(raw), nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	compressed, err := c.download(ctx, key+CompressedSuffix)
	if err != nil {
		return "", err
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return "", fmt.Errorf("store: create zstd decoder: %w", err)
	}
	defer decoder.Close()

	plain, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return "", fmt.Errorf("store: decompress %q: %w", key+CompressedSuffix, err)
	}
	return string(plain), nil
}

func (c *Client) download(ctx context.Context, key string) ([]byte, error) {
	result, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: download %q: %w", key, err)
	}
	defer func() { _ = result.Body.Close() }()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("store: read %q: %w", key, err)
	}
	return data, nil
}

// Ping verifies bucket reachability with a HEAD request on a marker
// object. A missing marker still proves the bucket answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String("manifest.json"),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("store: ping: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "404":
			return true
		}
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return true
	}
	return false
}

// keySanity is a light guard used by both sources: keys are always
// relative slash paths produced by classroom.SourceKey, never absolute
// and never containing parent traversal.
func keySanity(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return fmt.Errorf("store: suspicious key %q", key)
	}
	return nil
}
