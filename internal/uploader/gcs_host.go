package uploader

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/oklog/ulid/v2"

	"github.com/launchpage/api/internal/imaging"
)

const gcsObjectPrefix = "images"

// GCSHost stores images directly in a Cloud Storage bucket instead of posting
// to an external hosting provider. Objects are keyed by a fresh ULID so
// repeated uploads of the same file never overwrite each other.
type GCSHost struct {
	client *gcs.Client
	bucket string
}

// NewGCSHost constructs a bucket-backed image host.
func NewGCSHost(client *gcs.Client, bucket string) (*GCSHost, error) {
	if client == nil {
		return nil, errors.New("uploader: storage client is required")
	}
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errors.New("uploader: bucket name is required")
	}
	return &GCSHost{client: client, bucket: bucket}, nil
}

// Submit writes the file into the bucket and returns its public https URL.
func (h *GCSHost) Submit(ctx context.Context, file imaging.File) (string, error) {
	object := h.objectName(file.Name)

	writer := h.client.Bucket(h.bucket).Object(object).NewWriter(ctx)
	if file.ContentType != "" {
		writer.ContentType = file.ContentType
	}
	if _, err := writer.Write(file.Data); err != nil {
		_ = writer.Close()
		return "", &UploadError{Err: err}
	}
	if err := writer.Close(); err != nil {
		return "", &UploadError{Err: err}
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", h.bucket, object), nil
}

func (h *GCSHost) objectName(name string) string {
	base := path.Base(strings.TrimSpace(name))
	if base == "." || base == "/" || base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s/%s-%s", gcsObjectPrefix, strings.ToLower(ulid.Make().String()), base)
}
