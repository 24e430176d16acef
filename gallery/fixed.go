// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gallery

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/keepsake/models"
)

const fixedPrefix = "fixed-"

// LoadFixedNotes reads the timeline notes that ship with the site. They live
// in the slides file next to the slide list:
//
//	notes:
//	  - date: 2023-02-14
//	    title: We met
//	    text: That unforgettable first meeting.
//
// An empty path yields no notes.
func LoadFixedNotes(path string) ([]models.Note, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read notes file: %w", err)
	}
	return ParseFixedNotes(raw)
}

func ParseFixedNotes(raw []byte) ([]models.Note, error) {
	var f struct {
		Notes []struct {
			Date  string `yaml:"date"`
			Title string `yaml:"title"`
			Text  string `yaml:"text"`
		} `yaml:"notes"`
	}
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse notes file: %w", err)
	}

	notes := make([]models.Note, 0, len(f.Notes))
	for i, n := range f.Notes {
		date := strings.TrimSpace(n.Date)
		if _, err := time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("note %d: %w", i, ErrInvalidDate)
		}
		text := strings.TrimSpace(n.Text)
		if text == "" {
			return nil, fmt.Errorf("note %d: %w", i, ErrMissingText)
		}
		notes = append(notes, models.Note{
			ID:    fixedPrefix + strconv.Itoa(i+1),
			Date:  date,
			Title: strings.TrimSpace(n.Title),
			Text:  text,
			Fixed: true,
		})
	}
	sortNotes(notes)
	return notes, nil
}

func isFixed(id string) bool {
	return strings.HasPrefix(id, fixedPrefix)
}
