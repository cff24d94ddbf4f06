package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/elementview/internal/errors"
)

// Sink stores an encoded target under a name and returns where it went.
type Sink interface {
	Put(ctx context.Context, name string, t Target) (string, error)
}

// FileSink writes targets into a directory.
type FileSink struct {
	Dir string
}

// Put implements Sink. The target's extension is appended to name.
func (s FileSink) Put(ctx context.Context, name string, t Target) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.New("E301").Wrap(err)
	}
	var buf bytes.Buffer
	if err := t.Encode(&buf); err != nil {
		return "", err
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.New("E301").Wrap(err)
	}
	path := filepath.Join(dir, name+t.Extension())
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", errors.New("E301").Wrap(err)
	}
	return path, nil
}

// S3API is the subset of the S3 client used by S3Sink.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads targets to an S3 bucket.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	sink := export.NewS3Sink(s3.NewFromConfig(cfg), "exports", "plots/")
//	url, err := sink.Put(ctx, "plot-1", target)
type S3Sink struct {
	client S3API
	bucket string
	prefix string
	logger *slog.Logger
}

// NewS3Sink creates a sink for bucket. prefix is prepended to every key.
func NewS3Sink(client S3API, bucket, prefix string) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: slog.Default().With("component", "export.s3"),
	}
}

// NewS3SinkFromEnv builds a sink using the default AWS credential chain.
// An empty region keeps the chain's region.
func NewS3SinkFromEnv(ctx context.Context, bucket, prefix, region string) (*S3Sink, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.New("E301").WithDetail("AWS configuration could not be loaded").Wrap(err)
	}
	return NewS3Sink(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// Put implements Sink and returns an s3:// URL.
func (s *S3Sink) Put(ctx context.Context, name string, t Target) (string, error) {
	var buf bytes.Buffer
	if err := t.Encode(&buf); err != nil {
		return "", err
	}
	key := strings.TrimPrefix(s.prefix+name+t.Extension(), "/")
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(t.ContentType()),
		Metadata: map[string]string{
			"logical-size": fmt.Sprintf("%dx%d", t.Width(), t.Height()),
			"pixel-ratio":  fmt.Sprintf("%g", t.PixelRatio()),
			"export-time":  time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", errors.New("E301").WithDetailf("upload to bucket %q failed", s.bucket).Wrap(err)
	}
	url := fmt.Sprintf("s3://%s/%s", s.bucket, key)
	s.logger.Debug("export uploaded", "url", url, "bytes", buf.Len())
	return url, nil
}
