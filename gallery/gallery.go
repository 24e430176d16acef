// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gallery

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/keepsake/blob"
	"github.com/danielhkuo/keepsake/carousel"
	"github.com/danielhkuo/keepsake/models"
	"github.com/danielhkuo/keepsake/store"
)

// MaxPhotoBytes is the largest accepted upload.
const MaxPhotoBytes = 10 << 20

const (
	photoPrefix = "photos"
	dateLayout  = "2006-01-02"
)

var (
	ErrUnsupportedType = errors.New("file is not a supported image")
	ErrTooLarge        = errors.New("file exceeds 10 MiB")
	ErrEmpty           = errors.New("file is empty")
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrMissingText     = errors.New("note text required")
)

var imageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// SlideSink receives the rebuilt slide list.
type SlideSink interface {
	SetSlides([]carousel.Slide)
}

// Upload is a photo as received from the client.
type Upload struct {
	Filename string
	Data     []byte
	Caption  string
	Date     string
}

// Service keeps the photo and note lists in step with storage and pushes the
// slide list to the carousel after every change.
type Service struct {
	records store.ListStore
	blobs   blob.Store
	sink    SlideSink
	static  []carousel.Slide
	fixed   []models.Note

	// mu serialises mutations; readers get copies.
	mu     sync.Mutex
	photos []models.Photo
	notes  []models.Note
}

// New creates a service. static slides always come before uploaded photos.
func New(records store.ListStore, blobs blob.Store, sink SlideSink, static []carousel.Slide) *Service {
	return &Service{
		records: records,
		blobs:   blobs,
		sink:    sink,
		static:  slices.Clone(static),
	}
}

// SetFixedNotes sets the notes shipped with the site. They are merged with
// the stored notes and cannot be deleted.
func (s *Service) SetFixedNotes(notes []models.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fixed = slices.Clone(notes)
	stored := slices.DeleteFunc(slices.Clone(s.notes), func(n models.Note) bool {
		return n.Fixed
	})
	s.notes = s.mergeNotesLocked(stored)
}

// mergeNotesLocked puts the fixed notes ahead of stored notes from the same day.
func (s *Service) mergeNotesLocked(stored []models.Note) []models.Note {
	notes := make([]models.Note, 0, len(s.fixed)+len(stored))
	notes = append(notes, s.fixed...)
	notes = append(notes, stored...)
	sortNotes(notes)
	return notes
}

// photoData is the stored payload of a photo record.
type photoData struct {
	URL         string `json:"url"`
	Caption     string `json:"caption"`
	Date        string `json:"date,omitempty"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type noteData struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Load fetches photos and notes concurrently and publishes the slides.
func (s *Service) Load(ctx context.Context) error {
	var (
		photos []models.Photo
		notes  []models.Note
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		photos, err = s.fetchPhotos(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		notes, err = s.fetchNotes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	s.photos = photos
	s.notes = s.mergeNotesLocked(notes)
	s.publishLocked()
	s.mu.Unlock()

	slog.Info("gallery loaded", "photos", len(photos), "notes", len(notes))
	return nil
}

func (s *Service) fetchPhotos(ctx context.Context) ([]models.Photo, error) {
	recs, err := s.records.List(ctx, store.Photos)
	if err != nil {
		return nil, fmt.Errorf("load photos: %w", err)
	}
	photos := make([]models.Photo, 0, len(recs))
	for _, rec := range recs {
		p, err := photoFromRecord(rec)
		if err != nil {
			// One bad row should not hide the rest
			slog.Warn("skipping unreadable photo record", "photo_id", rec.ID, "error", err)
			continue
		}
		photos = append(photos, p)
	}
	return photos, nil
}

func (s *Service) fetchNotes(ctx context.Context) ([]models.Note, error) {
	recs, err := s.records.List(ctx, store.Notes)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	notes := make([]models.Note, 0, len(recs))
	for _, rec := range recs {
		n, err := noteFromRecord(rec)
		if err != nil {
			slog.Warn("skipping unreadable note record", "note_id", rec.ID, "error", err)
			continue
		}
		notes = append(notes, n)
	}
	sortNotes(notes)
	return notes, nil
}

func photoFromRecord(rec store.Record) (models.Photo, error) {
	var d photoData
	if err := rec.Decode(&d); err != nil {
		return models.Photo{}, err
	}
	return models.Photo{
		ID:          rec.ID,
		URL:         d.URL,
		Caption:     d.Caption,
		Date:        d.Date,
		ContentType: d.ContentType,
		Size:        d.Size,
		CreatedAt:   rec.CreatedAt,
	}, nil
}

func noteFromRecord(rec store.Record) (models.Note, error) {
	var d noteData
	if err := rec.Decode(&d); err != nil {
		return models.Note{}, err
	}
	return models.Note{
		ID:        rec.ID,
		Date:      d.Date,
		Title:     d.Title,
		Text:      d.Text,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// Photos returns the uploaded photos, oldest first.
func (s *Service) Photos() []models.Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Photo{}, s.photos...)
}

// Notes returns the notes ordered by date.
func (s *Service) Notes() []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Note{}, s.notes...)
}

// Slides returns the current slide list: static slides, then photos.
func (s *Service) Slides() []carousel.Slide {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slidesLocked()
}

func (s *Service) slidesLocked() []carousel.Slide {
	slides := make([]carousel.Slide, 0, len(s.static)+len(s.photos))
	slides = append(slides, s.static...)
	for _, p := range s.photos {
		slides = append(slides, carousel.Slide{Image: p.URL, Caption: p.Caption, Date: p.Date})
	}
	return slides
}

func (s *Service) publishLocked() {
	if s.sink != nil {
		s.sink.SetSlides(s.slidesLocked())
	}
}

// AddPhoto validates and uploads a photo, then records it. If recording fails
// the uploaded blob is removed again.
func (s *Service) AddPhoto(ctx context.Context, up Upload) (models.Photo, error) {
	contentType, err := checkImage(up.Data)
	if err != nil {
		return models.Photo{}, err
	}
	if up.Date != "" {
		if _, err := time.Parse(dateLayout, up.Date); err != nil {
			return models.Photo{}, ErrInvalidDate
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := blob.ObjectPath(photoPrefix, up.Data, up.Filename)
	ref, err := s.blobs.Upload(ctx, path, up.Data, contentType)
	if err != nil {
		return models.Photo{}, fmt.Errorf("upload photo: %w", err)
	}

	rec, err := store.NewRecord(store.Photos, photoData{
		URL:         ref,
		Caption:     strings.TrimSpace(up.Caption),
		Date:        up.Date,
		ContentType: contentType,
		Size:        len(up.Data),
	})
	if err == nil {
		rec, err = s.records.Insert(ctx, rec)
	}
	if err != nil {
		if rmErr := s.blobs.Remove(context.WithoutCancel(ctx), path); rmErr != nil {
			slog.Error("failed to remove orphaned photo blob", "path", path, "error", rmErr)
		}
		return models.Photo{}, fmt.Errorf("record photo: %w", err)
	}

	photo, err := photoFromRecord(rec)
	if err != nil {
		return models.Photo{}, err
	}

	// Rebuild rather than append so earlier snapshots stay untouched
	photos := make([]models.Photo, 0, len(s.photos)+1)
	photos = append(photos, s.photos...)
	s.photos = append(photos, photo)
	s.publishLocked()

	slog.Info("photo added", "photo_id", photo.ID, "size", photo.Size, "content_type", contentType)
	return photo, nil
}

func checkImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if len(data) > MaxPhotoBytes {
		return "", ErrTooLarge
	}
	ct := http.DetectContentType(data)
	if !slices.Contains(imageTypes, ct) {
		return "", ErrUnsupportedType
	}
	return ct, nil
}

// DeletePhoto removes a photo's blob and then its record. A record whose URL
// does not map back to a storage path aborts the delete with nothing removed.
// A blob that is already gone does not block removing the record.
func (s *Service) DeletePhoto(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.records.Get(ctx, store.Photos, id)
	if err != nil {
		return err
	}
	photo, err := photoFromRecord(rec)
	if err != nil {
		return err
	}

	path, err := s.blobs.PathFromRef(photo.URL)
	if err != nil {
		return err
	}

	if err := s.blobs.Remove(ctx, path); err != nil {
		if !errors.Is(err, blob.ErrNotFound) {
			return fmt.Errorf("remove photo blob: %w", err)
		}
		slog.Warn("photo blob already missing", "photo_id", id, "path", path)
	}

	if err := s.records.Delete(ctx, store.Photos, id); err != nil {
		return fmt.Errorf("delete photo record: %w", err)
	}

	s.photos = slices.DeleteFunc(slices.Clone(s.photos), func(p models.Photo) bool {
		return p.ID == id
	})
	s.publishLocked()

	slog.Info("photo deleted", "photo_id", id)
	return nil
}

// AddNote stores a timeline note.
func (s *Service) AddNote(ctx context.Context, req models.AddNoteRequest) (models.Note, error) {
	date := strings.TrimSpace(req.Date)
	if _, err := time.Parse(dateLayout, date); err != nil {
		return models.Note{}, ErrInvalidDate
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return models.Note{}, ErrMissingText
	}

	rec, err := store.NewRecord(store.Notes, noteData{
		Date:  date,
		Title: strings.TrimSpace(req.Title),
		Text:  text,
	})
	if err != nil {
		return models.Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err = s.records.Insert(ctx, rec)
	if err != nil {
		return models.Note{}, fmt.Errorf("record note: %w", err)
	}
	note, err := noteFromRecord(rec)
	if err != nil {
		return models.Note{}, err
	}

	notes := make([]models.Note, 0, len(s.notes)+1)
	notes = append(notes, s.notes...)
	notes = append(notes, note)
	sortNotes(notes)
	s.notes = notes

	slog.Info("note added", "note_id", note.ID, "date", note.Date)
	return note, nil
}

// DeleteNote removes a stored note. Fixed notes report store.ErrNotFound.
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	if isFixed(id) {
		return store.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.records.Delete(ctx, store.Notes, id); err != nil {
		return err
	}
	s.notes = slices.DeleteFunc(slices.Clone(s.notes), func(n models.Note) bool {
		return n.ID == id
	})

	slog.Info("note deleted", "note_id", id)
	return nil
}

// sortNotes orders by date; notes on the same day keep insertion order.
func sortNotes(notes []models.Note) {
	slices.SortStableFunc(notes, func(a, b models.Note) int {
		return cmp.Compare(a.Date, b.Date)
	})
}
