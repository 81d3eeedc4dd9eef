package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// objectAPI is the part of *s3.Client the store uses.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// R2Store keeps pictures in a Cloudflare R2 (S3 compatible) bucket.
// Locations are object keys.
type R2Store struct {
	client objectAPI
	bucket string
	prefix string
}

type R2Options struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	Prefix          string
}

// NewR2Store builds the client using static credentials and the account endpoint.
func NewR2Store(opts R2Options) (*R2Store, error) {
	if opts.AccountID == "" || opts.BucketName == "" {
		return nil, errors.New("r2: account id and bucket name are required")
	}
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", opts.AccountID)

	cfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Region:      opts.Region,
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})
	return &R2Store{client: client, bucket: opts.BucketName, prefix: opts.Prefix}, nil
}

func (s *R2Store) Put(ctx context.Context, key string, data []byte) (string, error) {
	objectKey := s.prefix + key
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("r2 put %s: %w", objectKey, err)
	}
	return objectKey, nil
}

func (s *R2Store) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(location),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("r2 get %s: %w", location, err)
	}
	return out.Body, nil
}

// Remove deletes the object. S3 DeleteObject already succeeds for missing keys.
func (s *R2Store) Remove(ctx context.Context, location string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(location),
	})
	if err != nil {
		return fmt.Errorf("r2 delete %s: %w", location, err)
	}
	return nil
}
