package repository

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// s3API is the subset of the S3 client used by s3Repository.
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Repository stores gzipped documents as S3 objects.
type s3Repository struct {
	client s3API
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Repository creates a new S3-backed repository using the default AWS
// credential chain.
func NewS3Repository(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (StateRepository, error) {
	logger = logger.With().Str("repository", "s3").Logger()

	// Load AWS configuration
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("prefix", prefix).
		Msg("S3 repository initialised")

	return newS3Repository(s3.NewFromConfig(cfg), bucket, prefix, logger), nil
}

func newS3Repository(client s3API, bucket, prefix string, logger zerolog.Logger) *s3Repository {
	return &s3Repository{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

func (r *s3Repository) objectKey(key string) string {
	return r.prefix + key + ".json.gz"
}

// Load fetches and decompresses the object for key.
func (r *s3Repository) Load(ctx context.Context, key string, dst any) (bool, error) {
	objectKey := r.objectKey(key)

	result, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			r.logger.Debug().Str("key", objectKey).Msg("document not found")
			return false, nil
		}
		r.logger.Error().
			Err(err).
			Str("bucket", r.bucket).
			Str("key", objectKey).
			Msg("failed to get object from S3")
		return false, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", r.bucket, objectKey, err)
	}
	defer result.Body.Close()

	gzipReader, err := gzip.NewReader(result.Body)
	if err != nil {
		r.logger.Error().Err(err).Str("key", objectKey).Msg("failed to create gzip reader")
		return false, fmt.Errorf("failed to create gzip reader for S3 object %s: %w", objectKey, err)
	}
	defer gzipReader.Close()

	raw, err := io.ReadAll(gzipReader)
	if err != nil {
		r.logger.Error().Err(err).Str("key", objectKey).Msg("error reading document from S3")
		return false, fmt.Errorf("error reading document from S3 %s: %w", objectKey, err)
	}

	if err := decodeDocument(raw, dst); err != nil {
		r.logger.Error().Err(err).Str("key", objectKey).Msg("failed to decode document")
		return false, err
	}

	return true, nil
}

// Save compresses the document and uploads it, replacing any previous object.
func (r *s3Repository) Save(ctx context.Context, key string, src any) error {
	raw, err := encodeDocument(src)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	if _, err := gzipWriter.Write(raw); err != nil {
		return fmt.Errorf("failed to compress document %s: %w", key, err)
	}
	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to compress document %s: %w", key, err)
	}

	objectKey := r.objectKey(key)
	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:          aws.String(r.bucket),
		Key:             aws.String(objectKey),
		Body:            bytes.NewReader(buf.Bytes()),
		ContentType:     aws.String("application/json"),
		ContentEncoding: aws.String("gzip"),
	})
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("bucket", r.bucket).
			Str("key", objectKey).
			Msg("failed to put object to S3")
		return fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", r.bucket, objectKey, err)
	}

	r.logger.Debug().
		Str("key", objectKey).
		Int("bytes", buf.Len()).
		Msg("document uploaded")

	return nil
}

func (r *s3Repository) Close() error {
	return nil
}
