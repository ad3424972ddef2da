package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// StoredMedia describes an uploaded object.
type StoredMedia struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
}

// MediaStore keeps model files in a MinIO bucket. Keys are laid out as
// "{prefix}/{uuid}{ext}" so re-uploads never overwrite an earlier file.
type MediaStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMediaStore wraps client. publicURL is the CDN or bucket base used to
// build public file URLs; when empty, URLs are left blank.
func NewMediaStore(client *minio.Client, bucket, publicURL string) *MediaStore {
	return &MediaStore{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

// Upload streams r into the bucket under prefix with a fresh name.
func (s *MediaStore) Upload(ctx context.Context, prefix, filename string, r io.Reader, size int64, contentType string) (*StoredMedia, error) {
	key := path.Join(prefix, uuid.NewString()+strings.ToLower(path.Ext(filename)))
	return s.Put(ctx, key, r, size, contentType)
}

// Put streams r into the bucket at exactly key. glTF resources are stored
// this way so the relative URIs inside the .gltf keep resolving.
func (s *MediaStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*StoredMedia, error) {
	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, errors.Wrapf(err, "put object %s", key)
	}
	return &StoredMedia{Key: key, URL: s.URL(key), ContentType: contentType, Size: info.Size}, nil
}

// Open returns a reader for key along with its size and content type.
func (s *MediaStore) Open(ctx context.Context, key string) (io.ReadCloser, int64, string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, "", errors.Wrapf(err, "get object %s", key)
	}
	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, 0, "", errors.Wrapf(err, "stat object %s", key)
	}
	return obj, stat.Size, stat.ContentType, nil
}

// Delete removes every object under prefix.
func (s *MediaStore) Delete(ctx context.Context, prefix string) error {
	list := func(ctx context.Context) <-chan minio.ObjectInfo {
		return s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true})
	}
	remove := func(ctx context.Context, key string) error {
		return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	}
	return removeListed(ctx, prefix, list, remove)
}

// removeListed removes each listed object. The listing context is cancelled
// on return so the lister goroutine exits when a failure stops the loop early.
func removeListed(ctx context.Context, prefix string, list func(context.Context) <-chan minio.ObjectInfo, remove func(context.Context, string) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range list(ctx) {
		if obj.Err != nil {
			return errors.Wrapf(obj.Err, "list %s", prefix)
		}
		if err := remove(ctx, obj.Key); err != nil {
			return errors.Wrapf(err, "remove object %s", obj.Key)
		}
	}
	return nil
}

// URL is the public address of key.
func (s *MediaStore) URL(key string) string {
	if s.publicURL == "" {
		return ""
	}
	return s.publicURL + "/" + key
}
