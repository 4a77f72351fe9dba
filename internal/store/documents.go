package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/findez/findez/internal/model"
)

// CreateDocument stores an uploaded document and its content blob.
func CreateDocument(ctx context.Context, db *sql.DB, userID int64, filename, mimeType string, content []byte) (*model.Document, error) {
	if filename == "" {
		return nil, fmt.Errorf("filename required")
	}

	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO documents (document_id, user_id, filename, mime_type, content, size)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, userID, filename, mimeType, content, len(content),
	)
	if err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}

	return GetDocument(ctx, db, userID, id)
}

// GetDocument returns a document's metadata (no content).
func GetDocument(ctx context.Context, db *sql.DB, userID int64, documentID string) (*model.Document, error) {
	doc := &model.Document{}
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT document_id, user_id, filename, mime_type, size, created_at
		 FROM documents WHERE user_id = ? AND document_id = ?`,
		userID, documentID,
	).Scan(&doc.DocumentID, &doc.UserID, &doc.Filename, &mime, &doc.Size, &doc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	doc.MimeType = mime.String
	return doc, nil
}

// ListDocuments returns the user's documents, newest first.
func ListDocuments(ctx context.Context, db *sql.DB, userID int64, limit int) ([]model.Document, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx,
		`SELECT document_id, user_id, filename, mime_type, size, created_at
		 FROM documents WHERE user_id = ?
		 ORDER BY created_at DESC, document_id LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		var doc model.Document
		var mime sql.NullString
		if err := rows.Scan(&doc.DocumentID, &doc.UserID, &doc.Filename, &mime, &doc.Size, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.MimeType = mime.String
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// GetDocumentContent returns a document's content blob and MIME type.
func GetDocumentContent(ctx context.Context, db *sql.DB, userID int64, documentID string) ([]byte, string, error) {
	var content []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT content, mime_type FROM documents WHERE user_id = ? AND document_id = ?`,
		userID, documentID,
	).Scan(&content, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting document content: %w", err)
	}
	return content, mime.String, nil
}

// CreateActivity appends an entry to the user's activity feed. Failures
// here should never fail the calling operation; callers log and move on.
func CreateActivity(ctx context.Context, db *sql.DB, userID int64, summary string, metadata map[string]any) error {
	var meta any
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("encoding activity metadata: %w", err)
		}
		meta = string(raw)
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO activity (user_id, summary, metadata) VALUES (?, ?, ?)`,
		userID, summary, meta,
	)
	if err != nil {
		return fmt.Errorf("creating activity: %w", err)
	}
	return nil
}

// ListRecentActivity returns the user's most recent activity entries.
func ListRecentActivity(ctx context.Context, db *sql.DB, userID int64, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, summary, metadata, created_at
		 FROM activity WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	defer rows.Close()

	var entries []model.Activity
	for rows.Next() {
		var a model.Activity
		var meta sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &a.Summary, &meta, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		if meta.Valid && meta.String != "" {
			_ = json.Unmarshal([]byte(meta.String), &a.Metadata)
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}
