// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package playlist

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
)

// DefaultOEmbedEndpoint is YouTube's oEmbed API.
const DefaultOEmbedEndpoint = "https://www.youtube.com/oembed"

// OEmbedFetcher reads titles from an oEmbed endpoint.
type OEmbedFetcher struct {
	Endpoint string
	Client   *http.Client
}

func NewOEmbedFetcher() *OEmbedFetcher {
	return &OEmbedFetcher{
		Endpoint: DefaultOEmbedEndpoint,
		Client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (f *OEmbedFetcher) Title(ctx context.Context, videoID string) (string, error) {
	q := url.Values{}
	q.Set("url", "https://www.youtube.com/watch?v="+videoID)
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build oembed request: %w", err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("oembed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oembed status %d", resp.StatusCode)
	}

	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return "", fmt.Errorf("decode oembed response: %w", err)
	}
	return body.Title, nil
}
