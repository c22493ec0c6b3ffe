// Package s3store implements the pantry store as one CSV object in an
// S3-compatible bucket (AWS S3 or MinIO).
package s3store

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

const defaultRegion = "us-east-1"

// Backend implements types.Store on a single S3 object.
type Backend struct {
	mu       sync.Mutex
	attached bool
	client   *s3.Client
	bucket   string
	key      string

	optFns []func(*s3.Options)
}

// NewBackend creates a detached S3 backend. optFns are applied to the S3
// client after the config-derived options.
func NewBackend(optFns ...func(*s3.Options)) *Backend {
	return &Backend{optFns: optFns}
}

// Attach builds the S3 client from config.S3 and the default AWS credential
// chain.
func (b *Backend) Attach(ctx context.Context, cfg types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	sc := cfg.S3
	if sc.Bucket == "" {
		return &types.ConfigurationError{Missing: []string{"s3.bucket"}}
	}
	region := sc.Region
	if region == "" {
		region = defaultRegion
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	optFns := append([]func(*s3.Options){func(o *s3.Options) {
		o.UsePathStyle = sc.PathStyle
		if sc.Endpoint != "" {
			o.BaseEndpoint = aws.String(sc.Endpoint)
		}
		// MinIO and older S3-compatible servers reject trailing checksums.
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	}}, b.optFns...)

	b.client = s3.NewFromConfig(awsCfg, optFns...)
	b.bucket = sc.Bucket
	b.key = sc.Key
	if b.key == "" {
		b.key = types.DefaultS3Key
	}
	b.attached = true
	return nil
}

// Detach drops the client. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attached = false
	b.client = nil
	return nil
}

// Load downloads and parses the CSV object. A missing object is an empty
// table.
func (b *Backend) Load(ctx context.Context) (types.PantryTable, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &b.bucket, Key: &b.key})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return types.PantryTable{}, nil
		}
		return nil, fmt.Errorf("get s3://%s/%s: %w", b.bucket, b.key, err)
	}
	defer out.Body.Close()

	r := csv.NewReader(out.Body)
	r.FieldsPerRecord = -1
	grid, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return types.TableFromGrid(grid)
}

// Save uploads the table as CSV, replacing the object.
func (b *Backend) Save(ctx context.Context, table types.PantryTable) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(table.Rows()); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}

	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &b.bucket,
		Key:         &b.key,
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", b.bucket, b.key, err)
	}
	return nil
}
