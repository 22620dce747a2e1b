// Package s3 implements the blob store adapter on top of Amazon S3.
// Clients never route bytes through this service: uploads go straight to
// the bucket with a pre-signed PUT, and reads use derived public URLs.
package s3

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"memories-backend/application/ports"
)

// PresignAPI is the subset of the S3 presign client used here. Tests
// substitute a fake.
type PresignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// ObjectAPI is the subset of the S3 client used here.
type ObjectAPI interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// BlobStore implements ports.BlobStore against a single bucket. Expiry of
// issued authorizations is enforced by S3 itself; this adapter never
// re-validates them.
type BlobStore struct {
	objects ObjectAPI
	presign PresignAPI
	bucket  string
	baseURL string
	logger  *zap.Logger
}

// NewBlobStore creates a new BlobStore. baseURL overrides the derived
// virtual-hosted bucket URL when serving media through a CDN; pass "" to
// use the bucket endpoint.
func NewBlobStore(objects ObjectAPI, presign PresignAPI, bucket, baseURL string, logger *zap.Logger) ports.BlobStore {
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}
	return &BlobStore{
		objects: objects,
		presign: presign,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// PresignUpload issues a time-limited PUT authorization bound to the
// declared content type.
func (b *BlobStore) PresignUpload(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	req, err := b.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expires
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign upload for %s: %w", key, err)
	}
	return req.URL, nil
}

// Delete removes an object by key. A missing object is not an error.
func (b *BlobStore) Delete(ctx context.Context, key string) error {
	_, err := b.objects.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			b.logger.Error("S3 delete failed",
				zap.String("key", key),
				zap.String("errorCode", apiErr.ErrorCode()),
				zap.Error(err),
			)
		}
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// PublicURL derives the retrieval URL for a key. Deterministic string
// construction from the configured base location; never persisted.
func (b *BlobStore) PublicURL(key string) string {
	return b.baseURL + "/" + key
}
