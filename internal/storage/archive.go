package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ArchiveConfig holds S3-compatible object storage settings. Works
// against Cloudflare R2 via the custom endpoint.
type ArchiveConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

// ArchiveUploader copies generated documents (reports, invoices) to
// object storage for retention.
type ArchiveUploader struct {
	client *s3.Client
	bucket string
}

// NewArchiveUploader builds the S3 client. Returns an error when the
// credentials are rejected at config-load time; bucket reachability is
// only checked by Ping.
func NewArchiveUploader(ctx context.Context, cfg ArchiveConfig) (*ArchiveUploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configure archive storage: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &ArchiveUploader{client: client, bucket: cfg.Bucket}, nil
}

// Ping lists at most one object to verify credentials and bucket access.
func (u *ArchiveUploader) Ping(ctx context.Context) error {
	_, err := u.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(u.bucket),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("archive storage unreachable: %w", err)
	}
	return nil
}

// Upload stores the document under key.
func (u *ArchiveUploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

// UploadAsync uploads in the background with its own timeout. Failures
// are logged, never surfaced to the caller.
func (u *ArchiveUploader) UploadAsync(key string, data []byte, contentType string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if err := u.Upload(ctx, key, data, contentType); err != nil {
			log.Printf("[Archive] %v", err)
		} else {
			log.Printf("[Archive] Stored %s (%d bytes)", key, len(data))
		}
	}()
}

// List returns archived object keys under prefix, newest first.
func (u *ArchiveUploader) List(ctx context.Context, prefix string) ([]string, error) {
	result, err := u.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(u.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("list archive %s: %w", prefix, err)
	}
	type entry struct {
		key string
		mod time.Time
	}
	entries := make([]entry, 0, len(result.Contents))
	for _, obj := range result.Contents {
		e := entry{key: aws.ToString(obj.Key)}
		if obj.LastModified != nil {
			e.mod = *obj.LastModified
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].mod.After(entries[j].mod) })
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.key
	}
	return keys, nil
}
