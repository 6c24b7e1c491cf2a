package supabase

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"

	"portfolio-backend/internal/errs"
)

// MaxUploadSize caps image uploads at 5 MiB.
const MaxUploadSize = 5 * 1024 * 1024

// outboundTimeout bounds every storage call. The storage client has no
// context parameter, so a call that outlives the deadline is abandoned
// and reported as transient.
const outboundTimeout = 30 * time.Second

// acceptedImageTypes is the MIME allow-list for uploads.
var acceptedImageTypes = map[string]struct{}{
	"image/jpeg":    {},
	"image/png":     {},
	"image/gif":     {},
	"image/webp":    {},
	"image/svg+xml": {},
}

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

// StoredFile is the location of an uploaded object.
type StoredFile struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

func NewStorageClient(supabaseURL, serviceKey, bucket string) (*StorageClient, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// ValidateImage checks the MIME type and size limits without touching
// storage.
func ValidateImage(data []byte, contentType string) error {
	if _, ok := acceptedImageTypes[contentType]; !ok {
		return errs.Validation("file", fmt.Sprintf("invalid file type %q: upload a JPEG, PNG, GIF, WEBP, or SVG image", contentType))
	}
	if len(data) > MaxUploadSize {
		return errs.Validation("file", "file size exceeds the 5MB limit")
	}
	return nil
}

// Upload validates the file and writes it under namespace with a
// collision-resistant name (millisecond timestamp plus random token,
// keeping the original extension). No storage write happens when
// validation fails.
func (s *StorageClient) Upload(namespace string, data []byte, fileName, contentType string) (*StoredFile, error) {
	if err := ValidateImage(data, contentType); err != nil {
		return nil, err
	}

	path := ObjectPath(namespace, fileName)

	cacheControl := "3600"
	upsert := false
	err := callBounded("upload "+path, func() error {
		_, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data), storage.FileOptions{
			ContentType:  &contentType,
			CacheControl: &cacheControl,
			Upsert:       &upsert,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &StoredFile{Path: path, URL: s.PublicURL(path)}, nil
}

// ObjectPath builds the storage key for a new upload.
func ObjectPath(namespace, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".jpg"
	}
	token := uuid.NewString()[:8]
	return fmt.Sprintf("%s/%d-%s%s", namespace, time.Now().UnixMilli(), token, ext)
}

// PublicURL returns the public object URL for a stored path.
func (s *StorageClient) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path)
}

// Remove deletes a stored object. Callers treat failure as
// non-critical: the database row is the record of truth, so they log
// and continue.
func (s *StorageClient) Remove(path string) error {
	return callBounded("remove "+path, func() error {
		_, err := s.client.RemoveFile(s.bucket, []string{path})
		return err
	})
}

// callBounded runs one storage call under outboundTimeout. A timeout
// yields a TransientError, any other failure an UploadError.
func callBounded(op string, fn func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		if err != nil {
			return &errs.UploadError{Op: op, Cause: err}
		}
		return nil
	case <-time.After(outboundTimeout):
		return &errs.TransientError{Op: op, Cause: context.DeadlineExceeded}
	}
}

// PathFromURL recovers the storage key from a public URL produced by
// PublicURL. Returns false for URLs outside this bucket.
func (s *StorageClient) PathFromURL(url string) (string, bool) {
	prefix := fmt.Sprintf("%s/storage/v1/object/public/%s/", s.baseURL, s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
