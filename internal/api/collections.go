package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/findez/findez/internal/ai"
	"github.com/findez/findez/internal/collections"
	"github.com/findez/findez/internal/model"
	"github.com/findez/findez/internal/store"
)

// CollectionsHandler serves the smart collection views: duplicate checks
// before buying, restock lists, and dismissals.
type CollectionsHandler struct {
	DB *sql.DB
	AI *ai.Client
}

type beforeIBuyRequest struct {
	Query string `json:"query"`
}

type beforeIBuyResponse struct {
	Exact   []collections.Match `json:"exact"`
	Similar []collections.Match `json:"similar"`
	Parsed  ai.ParsedQuery      `json:"parsed"`
}

type snapshotsResponse struct {
	BeforeIBuy *collections.BeforeIBuySnapshot `json:"before_i_buy"`
	Restock    *collections.RestockSnapshot    `json:"restock"`
}

type dismissRequest struct {
	ItemID string `json:"item_id"`
}

// analyzer builds a per-user analyzer backed by the user_state table.
func (h *CollectionsHandler) analyzer(userID int64) *collections.Analyzer {
	return collections.NewAnalyzer(store.NewUserState(h.DB, userID))
}

// Snapshots handles GET /api/collections.
func (h *CollectionsHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	beforeIBuy, restock := h.analyzer(claims.UserID).Snapshots(r.Context())
	jsonResponse(w, http.StatusOK, snapshotsResponse{BeforeIBuy: beforeIBuy, Restock: restock})
}

// BeforeIBuy handles POST /api/collections/before-i-buy: matches a
// purchase intent against the full inventory.
func (h *CollectionsHandler) BeforeIBuy(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req beforeIBuyRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		jsonError(w, http.StatusBadRequest, "query required")
		return
	}

	items, err := store.ListItems(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	parsed := ai.ParsedQuery{Text: req.Query}
	if h.AI.Enabled() {
		p, err := h.AI.ParseSearchQuery(r.Context(), req.Query)
		if err != nil {
			slog.Warn("intent parse failed, matching raw query", "error", err)
		} else {
			parsed = p
		}
	}

	matches := h.analyzer(claims.UserID).RunBeforeIBuy(r.Context(), req.Query, parsed.Hints(), items)

	resp := beforeIBuyResponse{
		Exact:   []collections.Match{},
		Similar: []collections.Match{},
		Parsed:  parsed,
	}
	for _, m := range matches {
		if m.Kind == collections.MatchExact {
			resp.Exact = append(resp.Exact, m)
		} else {
			resp.Similar = append(resp.Similar, m)
		}
	}
	jsonResponse(w, http.StatusOK, resp)
}

// Restock handles POST /api/collections/restock: scans the inventory for
// out-of-stock and running-low items.
func (h *CollectionsHandler) Restock(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	items, err := store.ListItems(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	result := h.analyzer(claims.UserID).AnalyzeRestock(r.Context(), items)
	if result.Urgent == nil {
		result.Urgent = []model.Item{}
	}
	if result.Soon == nil {
		result.Soon = []model.Item{}
	}
	if result.Forgotten == nil {
		result.Forgotten = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, result)
}

// Dismiss handles POST /api/collections/restock/dismiss.
func (h *CollectionsHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req dismissRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemID == "" {
		jsonError(w, http.StatusBadRequest, "item_id required")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, claims.UserID, req.ItemID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	h.analyzer(claims.UserID).DismissRestockItem(r.Context(), *item)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "dismissed"})
}
