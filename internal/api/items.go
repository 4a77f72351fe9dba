package api

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/findez/findez/internal/ai"
	"github.com/findez/findez/internal/imaging"
	"github.com/findez/findez/internal/model"
	"github.com/findez/findez/internal/store"
)

// ItemsHandler handles item CRUD, search, and capture endpoints.
type ItemsHandler struct {
	DB *sql.DB
	AI *ai.Client
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Items  []model.Item   `json:"items"`
	Parsed ai.ParsedQuery `json:"parsed"`
}

type bulkCreateRequest struct {
	Items []model.ExtractedItem `json:"items"`
}

type bulkCreateResponse struct {
	Created  []model.Item        `json:"created"`
	Failures []store.BulkFailure `json:"failures"`
}

type barcodeRequest struct {
	Barcode string `json:"barcode"`
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	items, err := store.ListItems(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req model.Item
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, claims.UserID, req)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.recordActivity(r, "add_item", map[string]any{
		"name":     item.Name,
		"category": item.Category,
		"location": item.Location,
	}, fmt.Sprintf("Added %s to %s", item.Name, item.Location))

	jsonResponse(w, http.StatusCreated, item)
}

// Search handles POST /api/items/search. With an AI backend the query is
// first parsed into search text plus category/location hints; without one
// the raw query is matched directly.
func (h *ItemsHandler) Search(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	parsed := ai.ParsedQuery{Text: req.Query}
	if h.AI.Enabled() {
		p, err := h.AI.ParseSearchQuery(r.Context(), req.Query)
		if err != nil {
			slog.Warn("search query parse failed, using raw query", "error", err)
		} else {
			parsed = p
		}
	}

	items, err := store.SearchItems(r.Context(), h.DB, claims.UserID, parsed.Text)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to search items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, searchResponse{Items: items, Parsed: parsed})
}

// BulkCreate handles POST /api/items/bulk.
func (h *ItemsHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req bulkCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		jsonError(w, http.StatusBadRequest, "items required")
		return
	}

	created, failures, err := store.BulkCreateItems(r.Context(), h.DB, claims.UserID, req.Items)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create items")
		return
	}
	if created == nil {
		created = []model.Item{}
	}
	if failures == nil {
		failures = []store.BulkFailure{}
	}

	if len(created) > 0 {
		h.recordActivity(r, "bulk_add", map[string]any{"count": len(created)},
			fmt.Sprintf("Added %d items in bulk", len(created)))
	}

	jsonResponse(w, http.StatusCreated, bulkCreateResponse{Created: created, Failures: failures})
}

// Extract handles POST /api/items/extract: a photo goes in, candidate
// items come out. Requires the AI backend.
func (h *ItemsHandler) Extract(w http.ResponseWriter, r *http.Request) {
	if !h.AI.Enabled() {
		jsonError(w, http.StatusServiceUnavailable, "AI features are not configured")
		return
	}

	photo, ok := readPhoto(w, r)
	if !ok {
		return
	}

	result, err := h.AI.ExtractItems(r.Context(), photo)
	if err != nil {
		slog.Error("photo extraction failed", "error", err)
		jsonError(w, http.StatusBadGateway, "failed to analyze image")
		return
	}

	jsonResponse(w, http.StatusOK, result)
}

// Barcode handles POST /api/barcode. Requires the AI backend.
func (h *ItemsHandler) Barcode(w http.ResponseWriter, r *http.Request) {
	if !h.AI.Enabled() {
		jsonError(w, http.StatusServiceUnavailable, "AI features are not configured")
		return
	}

	var req barcodeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Barcode == "" {
		jsonError(w, http.StatusBadRequest, "barcode required")
		return
	}

	guess, err := h.AI.InterpretBarcode(r.Context(), req.Barcode)
	if err != nil {
		slog.Error("barcode interpretation failed", "error", err)
		jsonError(w, http.StatusBadGateway, "failed to interpret barcode")
		return
	}

	jsonResponse(w, http.StatusOK, guess)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	item, err := store.GetItem(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PATCH /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req model.ItemUpdate
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Empty() {
		jsonError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	item, err := store.UpdateItem(r.Context(), h.DB, claims.UserID, r.PathValue("id"), req)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	itemID := r.PathValue("id")

	item, err := store.GetItem(r.Context(), h.DB, claims.UserID, itemID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	deleted, err := store.DeleteItem(r.Context(), h.DB, claims.UserID, itemID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	if !deleted {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	h.recordActivity(r, "delete_item", map[string]any{"name": item.Name},
		fmt.Sprintf("Deleted %s", item.Name))

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// UploadImage handles PUT /api/items/{id}/image.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	itemID := r.PathValue("id")

	item, err := store.GetItem(r.Context(), h.DB, claims.UserID, itemID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	photo, ok := readPhoto(w, r)
	if !ok {
		return
	}

	if err := store.SetItemImage(r.Context(), h.DB, claims.UserID, itemID, photo.Data, photo.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	data, mime, err := store.GetItemImage(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}

// readPhoto extracts and normalizes the uploaded image from a multipart
// form. Writes the error response itself when it returns false.
func readPhoto(w http.ResponseWriter, r *http.Request) (*imaging.Result, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return nil, false
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return nil, false
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return photo, true
}

// recordActivity appends a line to the user's activity feed. When the AI
// backend is available it writes the summary; failures only log.
func (h *ItemsHandler) recordActivity(r *http.Request, action string, details map[string]any, fallback string) {
	claims := GetClaims(r.Context())
	summary := fallback
	if h.AI.Enabled() {
		summary = h.AI.SummarizeActivity(r.Context(), action, details)
	}
	if err := store.CreateActivity(r.Context(), h.DB, claims.UserID, summary, details); err != nil {
		slog.Warn("recording activity", "error", err)
	}
}
