package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSOptions struct {
	Bucket string
	// CredentialsFile overrides application default credentials.
	CredentialsFile string
	// PublicRead grants allUsers read on each object. Leave it off for
	// buckets with uniform bucket-level access and grant access on the bucket.
	PublicRead bool
}

// GCSUploader stores résumés in a Cloud Storage bucket.
type GCSUploader struct {
	client *gcs.Client
	opts   GCSOptions
}

func NewGCSUploader(ctx context.Context, opts GCSOptions) (*GCSUploader, error) {
	var co []option.ClientOption
	if opts.CredentialsFile != "" {
		co = append(co, option.WithCredentialsFile(opts.CredentialsFile))
	}
	c, err := gcs.NewClient(ctx, co...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCSUploader{client: c, opts: opts}, nil
}

func (u *GCSUploader) Close() error { return u.client.Close() }

// Upload writes r to objectName and returns the object's public URL. A write
// aborted by ctx leaves no object behind.
func (u *GCSUploader) Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error) {
	obj := u.client.Bucket(u.opts.Bucket).Object(objectName)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = cacheControl(u.opts.PublicRead)
	w.Metadata = map[string]string{"source": "candidate-submission"}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", objectName, err)
	}

	if u.opts.PublicRead {
		if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
			return "", fmt.Errorf("acl %s: %w", objectName, err)
		}
	}

	return PublicURL(u.opts.Bucket, objectName), nil
}

// cacheControl matches the object's visibility; résumé keys are never
// rewritten, so public copies may be cached.
func cacheControl(publicRead bool) string {
	if publicRead {
		return "public, max-age=3600"
	}
	return "private, max-age=0"
}

// PublicURL is the storage.googleapis.com address of an object, each path
// segment escaped.
func PublicURL(bucket, objectName string) string {
	segs := strings.Split(objectName, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, strings.Join(segs, "/"))
}
