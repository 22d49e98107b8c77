package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/trackprep-io/trackprep/internal/manifest"
)

// S3Store resolves keyed artifacts against a single S3 bucket.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store builds an S3-backed ObjectStore for the given bucket using
// the ambient AWS credential chain.
func NewS3Store(ctx context.Context, bucket, region, profile string) (*S3Store, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(region))
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return &S3Store{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// Get returns the object body for key. A missing object is reported as a
// distinct error rather than an empty stream.
func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("object %q not found in bucket %q", key, s.bucket)
		}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil, fmt.Errorf("object %q not found in bucket %q", key, s.bucket)
		}
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", s.bucket, key, err)
	}
	return result.Body, nil
}

// fetchKeyed resolves the artifact's opaque key through the object store.
func (c *Client) fetchKeyed(ctx context.Context, art manifest.Artifact) error {
	if c.Store == nil {
		return fmt.Errorf("no object store configured for keyed artifact %s", art.Key)
	}

	body, err := c.Store.Get(ctx, art.Ref)
	if err != nil {
		return err
	}
	defer body.Close()

	return writeAtomic(art.Dest, body)
}
