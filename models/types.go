package models

import "time"

// Answer keys sent by the lock screen
const (
	AnswerDate  = "date"
	AnswerColor = "color"
	AnswerPlace = "place"
)

// Request types

// question key -> typed answer
type UnlockRequest struct {
	Answers map[string]string `json:"answers"`
}

type GotoRequest struct {
	Index int `json:"index"`
}

type SwipeRequest struct {
	DX            float64 `json:"dx"`
	DY            float64 `json:"dy"`
	ViewportWidth float64 `json:"viewport_width"`
}

type HoverRequest struct {
	Entered bool `json:"entered"`
}

type AddNoteRequest struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Title string `json:"title"`
	Text  string `json:"text"`
}

type AddSongRequest struct {
	URL string `json:"url"`
}

type PanelPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Response types

type UnlockResponse struct {
	Unlocked bool   `json:"unlocked"`
	Token    string `json:"token,omitempty"`
	Message  string `json:"message,omitempty"`
}

type SwipeResponse struct {
	Direction string `json:"direction"` // next, prev or none
	Index     int    `json:"index"`
}

type QueueResponse struct {
	Songs   []Song `json:"songs"`
	Current int    `json:"current"` // -1 when nothing is selected
}

type VisitsResponse struct {
	Count int64 `json:"count"`
}

type CountdownResponse struct {
	Target  time.Time `json:"target"`
	Days    int       `json:"days"`
	Hours   int       `json:"hours"`
	Minutes int       `json:"minutes"`
	Seconds int       `json:"seconds"`
}

// Domain types

type Photo struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Caption     string    `json:"caption"`
	Date        string    `json:"date,omitempty"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

type Note struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Fixed     bool      `json:"fixed,omitempty"` // from the slides file, not deletable
	CreatedAt time.Time `json:"created_at"`
}

type Song struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail"`
	AddedAt   time.Time `json:"added_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
