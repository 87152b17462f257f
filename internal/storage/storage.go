package storage

import (
	"context"
	"io"
	"time"
)

// Object describes a single object to upload.
type Object struct {
	Bucket      string
	Key         string
	ContentType string
	Body        io.Reader
}

// Service stores generated exports in remote object storage.
type Service interface {
	Upload(ctx context.Context, obj Object) (string, error)
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}
