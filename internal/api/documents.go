package api

import (
	"database/sql"
	"io"
	"net/http"
	"strconv"

	"github.com/findez/findez/internal/model"
	"github.com/findez/findez/internal/store"
)

// DocumentsHandler serves the document library and the activity feed.
type DocumentsHandler struct {
	DB *sql.DB
}

// Upload handles POST /api/documents (multipart "file" field).
func (h *DocumentsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 20<<20)
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	if len(content) == 0 {
		jsonError(w, http.StatusBadRequest, "file is empty")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(content)
	}

	doc, err := store.CreateDocument(r.Context(), h.DB, claims.UserID, header.Filename, mimeType, content)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save document")
		return
	}

	jsonResponse(w, http.StatusCreated, doc)
}

// List handles GET /api/documents.
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	docs, err := store.ListDocuments(r.Context(), h.DB, claims.UserID, limit)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}
	if docs == nil {
		docs = []model.Document{}
	}
	jsonResponse(w, http.StatusOK, docs)
}

// Content handles GET /api/documents/{id}/content.
func (h *DocumentsHandler) Content(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	content, mimeType, err := store.GetDocumentContent(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get document")
		return
	}
	if content == nil {
		jsonError(w, http.StatusNotFound, "document not found")
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(content)
}

// RecentActivity handles GET /api/activity/recent.
func (h *DocumentsHandler) RecentActivity(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	activity, err := store.ListRecentActivity(r.Context(), h.DB, claims.UserID, limit)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list activity")
		return
	}
	if activity == nil {
		activity = []model.Activity{}
	}
	jsonResponse(w, http.StatusOK, activity)
}
