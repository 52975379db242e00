package infra

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	storage "google.golang.org/api/storage/v1"
)

// ObjectStore is the thin contract this service needs from object storage:
// upload a blob under a path, get back a public URL, delete by path.
type ObjectStore interface {
	Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}

type gcsObjectStore struct {
	svc    *storage.Service
	bucket string
}

// InitObjectStore builds a Cloud Storage backed store using Application
// Default Credentials and the GCS_BUCKET env var.
func InitObjectStore() ObjectStore {
	bucket := os.Getenv("GCS_BUCKET")
	if bucket == "" {
		log.Fatal("GCS_BUCKET is not set")
	}

	svc, err := storage.NewService(context.Background())
	if err != nil {
		log.Printf("Error creating storage client: %v", err)
		log.Fatal("Error creating storage client")
	}

	return &gcsObjectStore{svc: svc, bucket: bucket}
}

func (g *gcsObjectStore) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	obj := &storage.Object{Name: path, ContentType: contentType}
	if _, err := g.svc.Objects.Insert(g.bucket, obj).Media(r).Context(ctx).Do(); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, path), nil
}

func (g *gcsObjectStore) Delete(ctx context.Context, path string) error {
	return g.svc.Objects.Delete(g.bucket, path).Context(ctx).Do()
}
