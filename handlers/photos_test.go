// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielhkuo/keepsake/models"
	"github.com/danielhkuo/keepsake/store"
	"github.com/danielhkuo/keepsake/testutil"
)

func TestPhotoUpload(t *testing.T) {
	env := newTestEnv(t)
	h := NewPhotoHandler(env.gallery)

	req := multipartPhoto(t, "us.png", pngData, map[string]string{"caption": "Us", "date": "2024-02-14"})
	w := httptest.NewRecorder()
	h.Upload(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var photo models.Photo
	testutil.AssertJSON(t, w, &photo)
	if photo.ID == "" || photo.Caption != "Us" || photo.ContentType != "image/png" {
		t.Errorf("Unexpected photo: %+v", photo)
	}
	if !strings.HasPrefix(photo.URL, env.cfg.PublicBaseURL+"/photos/") {
		t.Errorf("Expected URL under %s, got %s", env.cfg.PublicBaseURL, photo.URL)
	}

	// The file landed in the blob dir
	path, err := env.blobs.PathFromRef(photo.URL)
	if err != nil {
		t.Fatalf("PathFromRef() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(env.blobs.Root(), filepath.FromSlash(path)))
	if err != nil || !bytes.Equal(data, pngData) {
		t.Errorf("Stored blob mismatch: %v", err)
	}

	// And the carousel picked it up
	if env.ctrl.Len() != 4 {
		t.Errorf("Expected 4 slides after upload, got %d", env.ctrl.Len())
	}

	w = httptest.NewRecorder()
	h.List(w, testutil.MakeRequest("GET", "/photos", nil, nil))
	var photos []models.Photo
	testutil.AssertJSON(t, w, &photos)
	if len(photos) != 1 || photos[0].ID != photo.ID {
		t.Errorf("List() = %+v", photos)
	}
}

func TestPhotoUpload_Rejections(t *testing.T) {
	testCases := []struct {
		name         string
		filename     string
		data         []byte
		fields       map[string]string
		expectedCode int
	}{
		{"no file", "", nil, nil, http.StatusBadRequest},
		{"not an image", "notes.txt", []byte("plain text"), nil, http.StatusUnsupportedMediaType},
		{"empty file", "empty.png", []byte{}, nil, http.StatusBadRequest},
		{"bad date", "a.png", pngData, map[string]string{"date": "yesterday"}, http.StatusBadRequest},
		{"too large", "big.png", append(append([]byte{}, pngData...), make([]byte, 11<<20)...), nil, http.StatusRequestEntityTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			h := NewPhotoHandler(env.gallery)

			w := httptest.NewRecorder()
			h.Upload(w, multipartPhoto(t, tc.filename, tc.data, tc.fields))
			testutil.AssertStatus(t, w, tc.expectedCode)

			if env.ctrl.Len() != 3 {
				t.Errorf("Rejected upload changed slides: %d", env.ctrl.Len())
			}
		})
	}
}

func TestPhotoUpload_InvalidForm(t *testing.T) {
	env := newTestEnv(t)
	h := NewPhotoHandler(env.gallery)

	req := httptest.NewRequest("POST", "/photos", strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	h.Upload(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestPhotoDelete(t *testing.T) {
	env := newTestEnv(t)
	h := NewPhotoHandler(env.gallery)

	photo, err := env.gallery.AddPhoto(context.Background(), galleryUpload("a.png"))
	if err != nil {
		t.Fatalf("AddPhoto() error = %v", err)
	}

	req := testutil.MakeRequest("DELETE", "/photos/"+photo.ID, nil, nil)
	req.SetPathValue("id", photo.ID)
	w := httptest.NewRecorder()
	h.Delete(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	if env.ctrl.Len() != 3 {
		t.Errorf("Expected 3 slides after delete, got %d", env.ctrl.Len())
	}
	entries, _ := os.ReadDir(filepath.Join(env.blobs.Root(), "photos"))
	if len(entries) != 0 {
		t.Errorf("Expected blob removed, %d files remain", len(entries))
	}

	// Second delete is a 404
	w = httptest.NewRecorder()
	h.Delete(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestPhotoDelete_MalformedReference(t *testing.T) {
	env := newTestEnv(t)
	h := NewPhotoHandler(env.gallery)

	rec, _ := store.NewRecord(store.Photos, map[string]string{"url": "https://evil.example/x.png"})
	rec, err := env.records.Insert(context.Background(), rec)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	req := testutil.MakeRequest("DELETE", "/photos/"+rec.ID, nil, nil)
	req.SetPathValue("id", rec.ID)
	w := httptest.NewRecorder()
	h.Delete(w, req)
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

	if _, err := env.records.Get(context.Background(), store.Photos, rec.ID); err != nil {
		t.Errorf("Record should survive a malformed reference: %v", err)
	}
}

func TestNotes(t *testing.T) {
	env := newTestEnv(t)
	h := NewNoteHandler(env.gallery)

	// Created out of order, listed by date
	for _, n := range []models.AddNoteRequest{
		{Date: "2024-06-01", Title: "Summer", Text: "beach"},
		{Date: "2023-02-14", Title: "First", Text: "dinner"},
	} {
		w := httptest.NewRecorder()
		h.Create(w, testutil.MakeRequest("POST", "/notes", n, nil))
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	w := httptest.NewRecorder()
	h.List(w, testutil.MakeRequest("GET", "/notes", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var notes []models.Note
	testutil.AssertJSON(t, w, &notes)
	if len(notes) != 2 || notes[0].Title != "First" || notes[1].Title != "Summer" {
		t.Fatalf("Unexpected notes order: %+v", notes)
	}

	req := testutil.MakeRequest("DELETE", "/notes/"+notes[0].ID, nil, nil)
	req.SetPathValue("id", notes[0].ID)
	w = httptest.NewRecorder()
	h.Delete(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	w = httptest.NewRecorder()
	h.Delete(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestNotes_Validation(t *testing.T) {
	env := newTestEnv(t)
	h := NewNoteHandler(env.gallery)

	testCases := []struct {
		name string
		body any
	}{
		{"bad date", models.AddNoteRequest{Date: "14.02.2024", Text: "x"}},
		{"no text", models.AddNoteRequest{Date: "2024-02-14"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Create(w, testutil.MakeRequest("POST", "/notes", tc.body, nil))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}

	w := httptest.NewRecorder()
	h.List(w, testutil.MakeRequest("GET", "/notes", nil, nil))
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("Expected empty list, got %s", w.Body.String())
	}
}
