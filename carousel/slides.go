// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package carousel

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNoImage = errors.New("slide has no image")

// LoadSlides reads the static slide list from a YAML file:
//
//	slides:
//	  - image: /img/first-date.jpg
//	    caption: Where it started
//	    date: 2023-02-14
//
// An empty path yields no slides.
func LoadSlides(path string) ([]Slide, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read slides file: %w", err)
	}
	return ParseSlides(raw)
}

func ParseSlides(raw []byte) ([]Slide, error) {
	var f struct {
		Slides []Slide `yaml:"slides"`
	}
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse slides file: %w", err)
	}
	for i, s := range f.Slides {
		if strings.TrimSpace(s.Image) == "" {
			return nil, fmt.Errorf("slide %d: %w", i, ErrNoImage)
		}
	}
	return f.Slides, nil
}
