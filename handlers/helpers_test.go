// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/keepsake/auth"
	"github.com/danielhkuo/keepsake/blob"
	"github.com/danielhkuo/keepsake/carousel"
	"github.com/danielhkuo/keepsake/cliparse"
	"github.com/danielhkuo/keepsake/gallery"
	"github.com/danielhkuo/keepsake/kv"
	"github.com/danielhkuo/keepsake/middleware"
	"github.com/danielhkuo/keepsake/playlist"
	"github.com/danielhkuo/keepsake/store"
	"github.com/danielhkuo/keepsake/testutil"
	"github.com/danielhkuo/keepsake/vault"
)

var pngData = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

var testAnswers = map[string]string{
	vault.KeyDate:  "2023-02-14",
	vault.KeyColor: "Blue",
	vault.KeyPlace: "Paris",
}

type noTitles struct{}

func (noTitles) Title(ctx context.Context, videoID string) (string, error) {
	return "Song " + videoID[:3], nil
}

// testEnv is a fully wired set of services backed by in-memory SQLite and a
// temp directory.
type testEnv struct {
	cfg   cliparse.Config
	vault *vault.Vault

	// carousels holds every visitor's carousel; ctrl is the one behind token
	carousels *carousel.Registry
	token     string
	ctrl      *carousel.Controller

	gallery *gallery.Service
	queue   *playlist.Queue
	state   *kv.MemoryStore
	records *store.SQLStore
	blobs   *blob.LocalStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := testutil.GetTestConfig()
	v, err := vault.New(testAnswers, vault.RejectBlank)
	if err != nil {
		t.Fatalf("vault.New() error = %v", err)
	}

	records := store.NewSQLStore(testutil.SetupTestDB(t))
	blobs, err := blob.NewLocalStore(t.TempDir(), cfg.PublicBaseURL)
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}

	// Long timers keep auto-advance from firing mid-test
	carousels := carousel.NewRegistry(time.Hour, carousel.Options{Interval: time.Hour, ResumeDelay: time.Hour})
	t.Cleanup(carousels.Close)

	g := gallery.New(records, blobs, carousels, []carousel.Slide{
		{Image: "/img/1.jpg", Caption: "one"},
		{Image: "/img/2.jpg", Caption: "two"},
		{Image: "/img/3.jpg", Caption: "three"},
	})
	if err := g.Load(context.Background()); err != nil {
		t.Fatalf("gallery Load() error = %v", err)
	}

	token := auth.GenerateUnlockToken(cfg.UnlockSecret, time.Now())

	return &testEnv{
		cfg:       cfg,
		vault:     v,
		carousels: carousels,
		token:     token,
		ctrl:      carousels.Acquire(token),
		gallery:   g,
		queue:     playlist.NewQueue(records, noTitles{}),
		state:     kv.NewMemoryStore(),
		records:   records,
		blobs:     blobs,
	}
}

// multipartPhoto builds a POST /photos request body
func multipartPhoto(t *testing.T, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		fw.Write(data)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/photos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// visitorRequest builds a request carrying the env visitor's unlock token
func (e *testEnv) visitorRequest(method, path string, body any) *http.Request {
	return testutil.MakeRequest(method, path, body, map[string]string{middleware.HeaderUnlockToken: e.token})
}

func galleryUpload(filename string) gallery.Upload {
	return gallery.Upload{Filename: filename, Data: pngData}
}
