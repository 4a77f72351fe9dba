package model

import "time"

// Document is a privately stored file (receipt, manual, warranty).
// The content itself lives in the documents table as a blob and is only
// returned by the dedicated content endpoint.
type Document struct {
	DocumentID string    `json:"document_id"`
	UserID     int64     `json:"-"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mime_type,omitempty"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"created_at"`
}

// Activity is one entry in a user's recent-activity feed.
type Activity struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"-"`
	Summary   string         `json:"summary"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
