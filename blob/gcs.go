// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blob

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const gcsPublicHost = "storage.googleapis.com"

// GCSStore keeps blobs in a Cloud Storage bucket. Objects are expected to be
// publicly readable through the bucket's IAM policy.
type GCSStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSStore creates a client for bucket. opts are passed to the storage
// client, e.g. option.WithCredentialsFile.
func NewGCSStore(ctx context.Context, bucket string, opts ...option.ClientOption) (*GCSStore, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errors.New("gcs store: bucket is required")
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs store: create client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}

func (s *GCSStore) Upload(ctx context.Context, p string, data []byte, contentType string) (string, error) {
	p, err := cleanPath(p)
	if err != nil {
		return "", err
	}

	w := s.client.Bucket(s.bucket).Object(p).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000, immutable"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("gcs upload %s: %w", p, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs upload %s: %w", p, err)
	}
	return s.ref(p), nil
}

func (s *GCSStore) Remove(ctx context.Context, p string) error {
	p, err := cleanPath(p)
	if err != nil {
		return err
	}

	err = s.client.Bucket(s.bucket).Object(p).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("gcs remove %s: %w", p, err)
	}
	return nil
}

func (s *GCSStore) ref(p string) string {
	u := url.URL{Scheme: "https", Host: gcsPublicHost, Path: "/" + s.bucket + "/" + p}
	return u.String()
}

// PathFromRef accepts https://storage.googleapis.com/<bucket>/<path> for the
// store's own bucket only.
func (s *GCSStore) PathFromRef(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedRef, err)
	}
	if u.Host != gcsPublicHost {
		return "", fmt.Errorf("%w: unexpected host %q", ErrMalformedRef, u.Host)
	}
	rest, ok := strings.CutPrefix(u.Path, "/"+s.bucket+"/")
	if !ok {
		return "", fmt.Errorf("%w: %q is not in bucket %s", ErrMalformedRef, ref, s.bucket)
	}
	p, err := cleanPath(rest)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedRef, ref)
	}
	return p, nil
}
