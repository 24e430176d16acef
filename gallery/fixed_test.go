// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gallery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/keepsake/carousel"
	"github.com/danielhkuo/keepsake/models"
	"github.com/danielhkuo/keepsake/store"
)

const siteFile = `
slides:
  - image: /img/first.jpg
notes:
  - date: 2007-06-21
    title: Roadtrip
    text: Windows down, music up.
  - date: 2006-02-14
    title: We met
    text: That unforgettable first meeting.
`

func TestParseFixedNotes(t *testing.T) {
	notes, err := ParseFixedNotes([]byte(siteFile))
	if err != nil {
		t.Fatalf("ParseFixedNotes() error = %v", err)
	}
	want := []models.Note{
		{ID: "fixed-2", Date: "2006-02-14", Title: "We met", Text: "That unforgettable first meeting.", Fixed: true},
		{ID: "fixed-1", Date: "2007-06-21", Title: "Roadtrip", Text: "Windows down, music up.", Fixed: true},
	}
	if diff := cmp.Diff(want, notes); diff != "" {
		t.Errorf("ParseFixedNotes() mismatch (-want +got):\n%s", diff)
	}

	// The slide loader reads the same file and ignores the notes
	slides, err := carousel.ParseSlides([]byte(siteFile))
	if err != nil || len(slides) != 1 {
		t.Errorf("ParseSlides() = %d slides, %v", len(slides), err)
	}
}

func TestParseFixedNotes_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"bad date", "notes:\n  - date: Feb 14\n    text: x\n", ErrInvalidDate},
		{"blank text", "notes:\n  - date: 2006-02-14\n    text: '  '\n", ErrMissingText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFixedNotes([]byte(tt.raw)); !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseFixedNotes() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := ParseFixedNotes([]byte("notes: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadFixedNotes(t *testing.T) {
	notes, err := LoadFixedNotes("")
	if err != nil || notes != nil {
		t.Errorf("LoadFixedNotes(\"\") = %v, %v", notes, err)
	}

	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte(siteFile), 0o600); err != nil {
		t.Fatal(err)
	}
	notes, err = LoadFixedNotes(path)
	if err != nil || len(notes) != 2 {
		t.Errorf("LoadFixedNotes() = %d notes, %v", len(notes), err)
	}

	if _, err := LoadFixedNotes(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFixedNotes_MergedWithStored(t *testing.T) {
	svc, records, _, _ := setup(t)
	ctx := context.Background()

	fixed, err := ParseFixedNotes([]byte(siteFile))
	if err != nil {
		t.Fatal(err)
	}
	svc.SetFixedNotes(fixed)

	stored, _ := store.NewRecord(store.Notes, noteData{Date: "2006-02-14", Title: "Same day", Text: "later"})
	records.Insert(ctx, stored)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := svc.AddNote(ctx, models.AddNoteRequest{Date: "2010-12-24", Title: "Snowy Dinner", Text: "Cozy"}); err != nil {
		t.Fatalf("AddNote() error = %v", err)
	}

	var titles []string
	for _, n := range svc.Notes() {
		titles = append(titles, n.Title)
	}
	if diff := cmp.Diff([]string{"We met", "Same day", "Roadtrip", "Snowy Dinner"}, titles); diff != "" {
		t.Errorf("Notes() order mismatch (-want +got):\n%s", diff)
	}

	if err := svc.DeleteNote(ctx, "fixed-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeleteNote(fixed) error = %v, want ErrNotFound", err)
	}
	if len(svc.Notes()) != 4 {
		t.Errorf("fixed note was removed: %d notes left", len(svc.Notes()))
	}

	// Replacing the fixed notes keeps the stored ones
	svc.SetFixedNotes(nil)
	if len(svc.Notes()) != 2 {
		t.Errorf("Notes() after clearing fixed = %d, want 2", len(svc.Notes()))
	}
}
