// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/danielhkuo/keepsake/auth"
	"github.com/danielhkuo/keepsake/cliparse"
	"github.com/danielhkuo/keepsake/db"
)

// TestUploadKey is the upload key matching GetTestConfig's digest
const TestUploadKey = "test-upload-key"

// SetupTestDB opens a private in-memory SQLite database with the full schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseURL:     ":memory:",
		DatabaseType:    db.TypeSQLite,
		UnlockSecret:    "test-unlock-secret",
		UploadKeyDigest: auth.UploadKeyDigest(TestUploadKey),
		BlobBackend:     cliparse.BlobLocal,
		PublicBaseURL:   "http://localhost:3318/uploads",
		LogLevel:        "debug",
		AutoAdvance:     5 * time.Second,
		ResumeDelay:     6 * time.Second,
	}
}

// UnlockHeaders returns headers carrying a fresh unlock token
func UnlockHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{
		"X-Unlock-Token": auth.GenerateUnlockToken(cfg.UnlockSecret, time.Now()),
	}
}

// UploadHeaders returns headers carrying an unlock token and the upload key
func UploadHeaders(cfg cliparse.Config) map[string]string {
	h := UnlockHeaders(cfg)
	h["X-Upload-Key"] = TestUploadKey
	return h
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
