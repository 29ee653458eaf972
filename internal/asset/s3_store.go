package asset

import (
	"context"
	"errors"
	"fmt"
	"io"

	asseterrors "go-directory/internal/asset/errors"
	"go-directory/internal/shared/apperror"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// S3API is the subset of the S3 client the store uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps every logical bucket under a prefix of one physical bucket.
type S3Store struct {
	client S3API
	bucket string
	logger *zap.Logger
}

// NewS3Client builds a client for AWS or an S3 compatible endpoint such as MinIO.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func NewS3Store(client S3API, bucket string, logger ...*zap.Logger) *S3Store {
	l := zap.L().Named("asset.s3")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("asset.s3")
	}
	return &S3Store{client: client, bucket: bucket, logger: l}
}

func (s *S3Store) objectKey(bucket Bucket, key string) string {
	return string(bucket) + "/" + key
}

func (s *S3Store) Put(ctx context.Context, bucket Bucket, key string, body io.Reader, size int64, contentType string) error {
	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(bucket, key)),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		s.logger.Error("s3 put object failed", zap.String("key", s.objectKey(bucket, key)), zap.Error(err))
		return apperror.StorageUnavailable(err)
	}
	return nil
}

func (s *S3Store) Get(ctx context.Context, bucket Bucket, key string) (*Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(bucket, key)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		var notFound *types.NotFound
		if errors.As(err, &noKey) || errors.As(err, &notFound) {
			return nil, asseterrors.ErrBlobNotFound
		}
		s.logger.Error("s3 get object failed", zap.String("key", s.objectKey(bucket, key)), zap.Error(err))
		return nil, apperror.StorageUnavailable(err)
	}

	obj := &Object{Body: out.Body, ContentType: "application/octet-stream", Size: -1}
	if out.ContentType != nil {
		obj.ContentType = *out.ContentType
	}
	if out.ContentLength != nil {
		obj.Size = *out.ContentLength
	}
	return obj, nil
}

// Delete removes a blob. Deleting a missing key succeeds.
func (s *S3Store) Delete(ctx context.Context, bucket Bucket, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(bucket, key)),
	})
	if err != nil {
		s.logger.Error("s3 delete object failed", zap.String("key", s.objectKey(bucket, key)), zap.Error(err))
		return apperror.StorageUnavailable(err)
	}
	return nil
}
