// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UnlockTTL is how long an unlock token stays valid.
const UnlockTTL = 12 * time.Hour

var (
	ErrInvalidToken     = errors.New("invalid token format")
	ErrExpiredToken     = errors.New("token expired")
	ErrInvalidUploadKey = errors.New("invalid upload key")
)

// GenerateUnlockToken issues a token proving the lock screen was passed at
// issuedAt. Format: <unix seconds>.<base64url HMAC-SHA256>
func GenerateUnlockToken(secret string, issuedAt time.Time) string {
	ts := strconv.FormatInt(issuedAt.Unix(), 10)
	return ts + "." + sign(secret, ts)
}

// ValidateUnlockToken checks the signature and age of an unlock token
func ValidateUnlockToken(token, secret string, now time.Time, ttl time.Duration) error {
	ts, sig, ok := strings.Cut(token, ".")
	if !ok || ts == "" || sig == "" {
		return ErrInvalidToken
	}

	issued, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ErrInvalidToken
	}

	if !hmac.Equal([]byte(sig), []byte(sign(secret, ts))) {
		return ErrInvalidToken
	}

	age := now.Sub(time.Unix(issued, 0))
	if age < -time.Minute || age > ttl {
		return ErrExpiredToken
	}
	return nil
}

func sign(secret, payload string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte("unlock:" + payload))
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}

// UploadKeyDigest returns the hex SHA-256 of an upload key, the form stored
// in configuration.
func UploadKeyDigest(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// ValidateUploadKey checks key against the configured digest in constant time
func ValidateUploadKey(key, digest string) error {
	if key == "" || digest == "" {
		return ErrInvalidUploadKey
	}
	got := UploadKeyDigest(key)
	if subtle.ConstantTimeCompare([]byte(got), []byte(strings.ToLower(digest))) != 1 {
		return ErrInvalidUploadKey
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for rate-limit keys
	return hex.EncodeToString(sum[:8])
}
