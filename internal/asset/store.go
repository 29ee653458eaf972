package asset

import (
	"context"
	"io"
)

// Object is a retrieved blob. Callers must close Body. Size is -1 when unknown.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

//go:generate mockgen -source=store.go -destination=mock/store_mock.go -package=mock

// BlobStore is the handle to binary asset storage. It is constructed by the
// process entry point and injected into every component that needs it.
type BlobStore interface {
	Put(ctx context.Context, bucket Bucket, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, bucket Bucket, key string) (*Object, error)
	Delete(ctx context.Context, bucket Bucket, key string) error
}
