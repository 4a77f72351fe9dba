package api

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/findez/findez/internal/ai"
	"github.com/findez/findez/internal/model"
	"github.com/findez/findez/internal/store"
)

// AssistHandler serves the AI assistant endpoint.
type AssistHandler struct {
	DB *sql.DB
	AI *ai.Client
}

type assistRequest struct {
	Message string `json:"message"`
}

// assistTools executes assistant tool calls against one user's data.
type assistTools struct {
	db     *sql.DB
	userID int64
}

func (t *assistTools) AddItem(ctx context.Context, args ai.AddItemArgs) (any, error) {
	item := model.Item{
		Name:     args.Name,
		Category: args.Category,
		Quantity: args.Quantity,
		Location: args.Location,
	}
	if args.Barcode != nil {
		item.Barcode = *args.Barcode
	}
	if args.PurchaseSource != nil {
		item.PurchaseSource = *args.PurchaseSource
	}
	if args.Notes != nil {
		item.Notes = *args.Notes
	}
	return store.CreateItem(ctx, t.db, t.userID, item)
}

func (t *assistTools) SearchItems(ctx context.Context, query string) (any, error) {
	items, err := store.SearchItems(ctx, t.db, t.userID, query)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (t *assistTools) DeleteItem(ctx context.Context, itemID string) (any, error) {
	deleted, err := store.DeleteItem(ctx, t.db, t.userID, itemID)
	if err != nil {
		return nil, err
	}
	return map[string]bool{"deleted": deleted}, nil
}

// Command handles POST /api/assist. The assistant is grounded in the
// user's inventory, documents, and recent activity, and may run one
// inventory tool per command.
func (h *AssistHandler) Command(w http.ResponseWriter, r *http.Request) {
	if !h.AI.Enabled() {
		jsonError(w, http.StatusServiceUnavailable, "AI features are not configured")
		return
	}

	claims := GetClaims(r.Context())

	var req assistRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		jsonError(w, http.StatusBadRequest, "message required")
		return
	}

	items, err := store.ListItems(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load inventory")
		return
	}
	docs, err := store.ListDocuments(r.Context(), h.DB, claims.UserID, 50)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load documents")
		return
	}
	activity, err := store.ListRecentActivity(r.Context(), h.DB, claims.UserID, 25)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load activity")
		return
	}

	userContext := map[string]any{
		"inventory_items": items,
		"documents":       docs,
		"recent_activity": activity,
		"notes": map[string]string{
			"documents_text": "Document full text is not available in the database. Only filenames/metadata are available.",
		},
	}

	result, err := h.AI.RunCommand(r.Context(), userContext, req.Message, &assistTools{db: h.DB, userID: claims.UserID})
	if err != nil {
		slog.Error("assistant command failed", "user", claims.Email, "error", err)
		jsonError(w, http.StatusBadGateway, "assistant is unavailable, try again later")
		return
	}

	jsonResponse(w, http.StatusOK, result)
}
