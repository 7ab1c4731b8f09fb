// Package s3store keeps books as S3 objects, one per owner, against
// AWS S3 or any S3-compatible endpoint such as MinIO.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	accounting "github.com/bumlambs-max/Accounting-2.0"
)

// Store implements accounting.Store on a single S3 bucket. Keys map to
// object keys directly, under an optional prefix.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// Config holds explicit construction parameters. Credentials come from
// the default AWS chain (environment, shared config, instance role).
type Config struct {
	Bucket    string
	Region    string // defaults to us-east-1
	Endpoint  string // optional; if set enables a custom endpoint (e.g. MinIO)
	PathStyle bool
	Prefix    string // optional object key prefix, e.g. "books/"
}

// New creates an S3 book store from cfg.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Push stores data as the object for key, replacing any previous
// version.
func (s *Store) Push(ctx context.Context, key string, data []byte) error {
	contentType := "application/json"
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         aws.String(s.prefix + key),
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("push %q: %w", key, err)
	}
	return nil
}

// Pull retrieves the object stored for key. A missing object is
// reported as accounting.ErrNotFound.
func (s *Store) Pull(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(s.prefix + key),
	})
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return nil, fmt.Errorf("pull %q: %w", key, accounting.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("pull %q: %w", key, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("pull %q: %w", key, err)
	}
	return data, nil
}
