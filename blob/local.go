// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blob

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// stagingDir holds uploads in progress. Like every dot-named entry it is
// never served by Handler.
const stagingDir = ".staging"

// LocalStore keeps blobs on disk under root. Public references are
// baseURL + "/" + path; Handler serves the files.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(root, stagingDir), 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Handler serves stored blobs by path, relative to the mount point. Paths
// with a dot-named segment, such as in-progress uploads, are not found.
func (s *LocalStore) Handler() http.Handler {
	files := http.FileServer(http.Dir(s.root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, seg := range strings.Split(r.URL.Path, "/") {
			if strings.HasPrefix(seg, ".") {
				http.NotFound(w, r)
				return
			}
		}
		files.ServeHTTP(w, r)
	})
}

// Root returns the directory blobs are written to.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Upload(ctx context.Context, p string, data []byte, contentType string) (string, error) {
	p, err := cleanPath(p)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	full := filepath.Join(s.root, filepath.FromSlash(p))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("upload %s: %w", p, err)
	}

	// Stage first so readers never see a partial blob
	tmp, err := os.CreateTemp(filepath.Join(s.root, stagingDir), "upload-*")
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", p, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("upload %s: %w", p, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("upload %s: %w", p, err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("upload %s: %w", p, err)
	}

	return s.baseURL + "/" + p, nil
}

func (s *LocalStore) Remove(ctx context.Context, p string) error {
	p, err := cleanPath(p)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err = os.Remove(filepath.Join(s.root, filepath.FromSlash(p)))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("remove %s: %w", p, err)
	}
	return nil
}

func (s *LocalStore) PathFromRef(ref string) (string, error) {
	if _, err := url.Parse(ref); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedRef, err)
	}
	rest, ok := strings.CutPrefix(ref, s.baseURL+"/")
	if !ok {
		return "", fmt.Errorf("%w: %q is not under %s", ErrMalformedRef, ref, s.baseURL)
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	unescaped, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedRef, err)
	}
	p, err := cleanPath(unescaped)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedRef, ref)
	}
	return p, nil
}
