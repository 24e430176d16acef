// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrMalformedRef = errors.New("malformed storage reference")
	ErrNotFound     = errors.New("blob not found")
	ErrInvalidPath  = errors.New("invalid blob path")
)

// Store holds uploaded files and hands out public references to them.
type Store interface {
	// Upload stores data at path and returns its public reference.
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
	// Remove deletes the blob at path. A missing blob yields ErrNotFound.
	Remove(ctx context.Context, path string) error
	// PathFromRef recovers the storage path from a public reference.
	PathFromRef(ref string) (string, error)
}

// ObjectPath derives a content-addressed path for an upload:
// <prefix>/<first 16 hex of sha256>-<uuid>.<ext>
func ObjectPath(prefix string, data []byte, filename string) string {
	sum := sha256.Sum256(data)
	name := hex.EncodeToString(sum[:])[:16] + "-" + uuid.NewString()
	if ext := strings.ToLower(path.Ext(strings.ReplaceAll(filename, "\\", "/"))); len(ext) > 1 {
		name += ext
	}
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// cleanPath validates a slash-separated object path.
func cleanPath(p string) (string, error) {
	p = strings.TrimPrefix(p, "/")
	if p == "" || strings.HasSuffix(p, "/") {
		return "", ErrInvalidPath
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", ErrInvalidPath
		}
	}
	return p, nil
}
