package store

import (
	"context"
	"testing"

	"github.com/findez/findez/internal/db"
)

func TestCreateAndListDocuments(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := newTestUser(t, database)

	doc, err := CreateDocument(ctx, database, userID, "warranty.pdf", "application/pdf", []byte("pdf bytes"))
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if doc.DocumentID == "" {
		t.Error("expected generated document_id")
	}
	if doc.Size != int64(len("pdf bytes")) {
		t.Errorf("expected size %d, got %d", len("pdf bytes"), doc.Size)
	}

	docs, err := ListDocuments(ctx, database, userID, 0)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 1 || docs[0].Filename != "warranty.pdf" {
		t.Errorf("expected the uploaded document, got %+v", docs)
	}

	content, mime, err := GetDocumentContent(ctx, database, userID, doc.DocumentID)
	if err != nil {
		t.Fatalf("GetDocumentContent: %v", err)
	}
	if string(content) != "pdf bytes" || mime != "application/pdf" {
		t.Errorf("expected content round-trip, got %q (%s)", content, mime)
	}
}

func TestDocumentsScopedToUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := newTestUser(t, database)
	other, _ := CreateUser(ctx, database, "other@example.com", "hash")

	doc, _ := CreateDocument(ctx, database, userID, "mine.pdf", "application/pdf", []byte("x"))

	content, _, _ := GetDocumentContent(ctx, database, other.ID, doc.DocumentID)
	if content != nil {
		t.Error("expected no access to another user's document")
	}
}

func TestActivityFeed(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := newTestUser(t, database)

	if err := CreateActivity(ctx, database, userID, "Searched inventory: soap", map[string]any{"type": "search_items", "results": 2}); err != nil {
		t.Fatalf("CreateActivity: %v", err)
	}
	CreateActivity(ctx, database, userID, "Used Assist", nil)

	entries, err := ListRecentActivity(ctx, database, userID, 10)
	if err != nil {
		t.Fatalf("ListRecentActivity: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].Summary != "Used Assist" {
		t.Errorf("expected newest entry first, got %q", entries[0].Summary)
	}
	if entries[1].Metadata["type"] != "search_items" {
		t.Errorf("expected metadata round-trip, got %+v", entries[1].Metadata)
	}
}
