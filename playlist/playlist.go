// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package playlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/danielhkuo/keepsake/models"
	"github.com/danielhkuo/keepsake/store"
)

// DefaultTitle is used when the title lookup fails.
const DefaultTitle = "YouTube Video"

var (
	ErrInvalidURL = errors.New("not a YouTube video URL")
	ErrDuplicate  = errors.New("song already in queue")
	ErrIndex      = errors.New("queue index out of range")
	ErrEmpty      = errors.New("queue is empty")
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
}

// ExtractVideoID returns the 11 character video ID in a YouTube URL.
func ExtractVideoID(url string) (string, bool) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// Thumbnail returns the default thumbnail URL for a video.
func Thumbnail(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/default.jpg"
}

// TitleFetcher looks up a video's title.
type TitleFetcher interface {
	Title(ctx context.Context, videoID string) (string, error)
}

type songData struct {
	VideoID string `json:"video_id"`
	URL     string `json:"url"`
	Title   string `json:"title"`
}

// Queue is the ordered song list and its play cursor. current is meaningful
// only while playing is set.
type Queue struct {
	records store.ListStore
	titles  TitleFetcher

	mu      sync.Mutex
	songs   []models.Song
	current int
	playing bool
}

func NewQueue(records store.ListStore, titles TitleFetcher) *Queue {
	return &Queue{records: records, titles: titles}
}

// Load replaces the queue with the stored songs. The cursor is reset.
func (q *Queue) Load(ctx context.Context) error {
	recs, err := q.records.List(ctx, store.Songs)
	if err != nil {
		return fmt.Errorf("load songs: %w", err)
	}

	songs := make([]models.Song, 0, len(recs))
	for _, rec := range recs {
		var d songData
		if err := rec.Decode(&d); err != nil {
			slog.Warn("skipping unreadable song record", "song_id", rec.ID, "error", err)
			continue
		}
		songs = append(songs, newSong(rec, d))
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.songs = songs
	q.current = 0
	q.playing = false
	return nil
}

func newSong(rec store.Record, d songData) models.Song {
	return models.Song{
		ID:        rec.ID,
		VideoID:   d.VideoID,
		URL:       d.URL,
		Title:     d.Title,
		Thumbnail: Thumbnail(d.VideoID),
		AddedAt:   rec.CreatedAt,
	}
}

func (q *Queue) containsLocked(videoID string) bool {
	return slices.ContainsFunc(q.songs, func(s models.Song) bool { return s.VideoID == videoID })
}

// Add appends the video behind url. The title lookup never fails the add.
func (q *Queue) Add(ctx context.Context, url string) (models.Song, error) {
	url = strings.TrimSpace(url)
	videoID, ok := ExtractVideoID(url)
	if !ok {
		return models.Song{}, ErrInvalidURL
	}

	q.mu.Lock()
	dup := q.containsLocked(videoID)
	q.mu.Unlock()
	if dup {
		return models.Song{}, ErrDuplicate
	}

	title := DefaultTitle
	if q.titles != nil {
		t, err := q.titles.Title(ctx, videoID)
		switch {
		case err != nil:
			slog.Warn("video title lookup failed", "video_id", videoID, "error", err)
		case strings.TrimSpace(t) != "":
			title = strings.TrimSpace(t)
		}
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	// Checked again: another add may have won while the title was fetched
	if q.containsLocked(videoID) {
		return models.Song{}, ErrDuplicate
	}

	rec, err := store.NewRecord(store.Songs, songData{VideoID: videoID, URL: url, Title: title})
	if err != nil {
		return models.Song{}, err
	}
	rec, err = q.records.Insert(ctx, rec)
	if err != nil {
		return models.Song{}, fmt.Errorf("save song: %w", err)
	}

	song := newSong(rec, songData{VideoID: videoID, URL: url, Title: title})
	q.songs = append(slices.Clip(q.songs), song)

	slog.Info("song queued", "video_id", videoID, "title", title)
	return song, nil
}

// Remove deletes the song at index i. The cursor follows the song it pointed
// at and is clamped to the last index.
func (q *Queue) Remove(ctx context.Context, i int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if i < 0 || i >= len(q.songs) {
		return ErrIndex
	}

	if err := q.records.Delete(ctx, store.Songs, q.songs[i].ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("delete song: %w", err)
	}

	q.songs = slices.Delete(slices.Clone(q.songs), i, i+1)

	if i < q.current {
		q.current--
	}
	if q.current >= len(q.songs) {
		q.current = max(0, len(q.songs)-1)
	}
	if len(q.songs) == 0 {
		q.playing = false
	}
	return nil
}

// PlayAt selects the song at index i.
func (q *Queue) PlayAt(i int) (models.Song, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if i < 0 || i >= len(q.songs) {
		return models.Song{}, ErrIndex
	}
	q.current = i
	q.playing = true
	return q.songs[i], nil
}

// Next selects the following song, wrapping to the first.
func (q *Queue) Next() (models.Song, error) {
	return q.step(1)
}

// Prev selects the preceding song, wrapping to the last.
func (q *Queue) Prev() (models.Song, error) {
	return q.step(-1)
}

func (q *Queue) step(delta int) (models.Song, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.songs)
	if n == 0 {
		return models.Song{}, ErrEmpty
	}
	q.current = ((q.current+delta)%n + n) % n
	q.playing = true
	return q.songs[q.current], nil
}

// Stop ends playback. The queue and its cursor are kept, so Next or Prev
// carries on from the song that was playing.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.playing = false
}

// Clear empties the queue.
func (q *Queue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.records.DeleteAll(ctx, store.Songs); err != nil {
		return err
	}
	q.songs = nil
	q.current = 0
	q.playing = false
	return nil
}

// Songs returns a copy of the queue.
func (q *Queue) Songs() []models.Song {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.songs)
}

// Current returns the selected index, or -1 when nothing is playing.
func (q *Queue) Current() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.playing {
		return -1
	}
	return q.current
}

// Snapshot returns the songs and the current index together.
func (q *Queue) Snapshot() models.QueueResponse {
	q.mu.Lock()
	defer q.mu.Unlock()

	cur := -1
	if q.playing {
		cur = q.current
	}
	songs := slices.Clone(q.songs)
	if songs == nil {
		songs = []models.Song{}
	}
	return models.QueueResponse{Songs: songs, Current: cur}
}
