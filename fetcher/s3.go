package fetcher

import (
	"context"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"io"
	"net/url"
	"strings"
	"widescreen/shared/errs"
	"widescreen/shared/log"
)

// S3 reads s3://bucket/key URLs.
type S3 struct {
	client      s3iface.S3API
	maxBodySize int64

	logger *zap.Logger
}

func NewS3(client s3iface.S3API, maxBodySize int64, logger *zap.Logger) *S3 {
	return &S3{client: client, maxBodySize: maxBodySize, logger: logger}
}

func (s *S3) Fetch(ctx context.Context, raw string) ([]byte, error) {
	logger := log.LoggerWithTrace(ctx, s.logger).With(zap.String("url", raw))

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid url: %w", errs.ErrFetch, err)
	}

	bucket, key := u.Host, strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: s3 url %q needs a bucket and a key", errs.ErrFetch, raw)
	}

	result, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.Error("Error getting object", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", errs.ErrFetch, err)
	}

	buf, err := s.read(result.Body)
	if err != nil {
		logger.Error("Error reading object", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", errs.ErrFetch, err)
	}

	logger.Debug("Downloaded image", zap.Int("bytes", len(buf)))

	return buf, nil
}

func (s *S3) read(body io.ReadCloser) (buf []byte, err error) {
	defer func() {
		err = multierr.Append(err, body.Close())
	}()

	reader := io.Reader(body)
	if s.maxBodySize > 0 {
		reader = io.LimitReader(body, s.maxBodySize+1)
	}

	buf, err = io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if s.maxBodySize > 0 && int64(len(buf)) > s.maxBodySize {
		return nil, fmt.Errorf("object exceeds %d bytes", s.maxBodySize)
	}

	return buf, nil
}
