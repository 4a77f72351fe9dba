package api

import (
	"database/sql"
	"net/http"

	"github.com/findez/findez/internal/ai"
)

// NewRouter creates the API router with all endpoints registered. The AI
// client may be nil, in which case assistant-backed endpoints report
// service unavailable and search falls back to plain text matching.
func NewRouter(db *sql.DB, jwtSecret string, aiClient *ai.Client) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{DB: db, AI: aiClient}
	collectionsHandler := &CollectionsHandler{DB: db, AI: aiClient}
	assistHandler := &AssistHandler{DB: db, AI: aiClient}
	documentsHandler := &DocumentsHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	authed := func(h http.HandlerFunc) http.Handler {
		return authMW(h)
	}

	// Public: signup and login.
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Auth.
	mux.Handle("POST /api/auth/logout", authed(authHandler.Logout))
	mux.Handle("PUT /api/auth/password", authed(authHandler.ChangePassword))

	// Items.
	mux.Handle("GET /api/items", authed(itemsHandler.List))
	mux.Handle("POST /api/items", authed(itemsHandler.Create))
	mux.Handle("POST /api/items/search", authed(itemsHandler.Search))
	mux.Handle("POST /api/items/bulk", authed(itemsHandler.BulkCreate))
	mux.Handle("POST /api/items/extract", authed(itemsHandler.Extract))
	mux.Handle("GET /api/items/{id}", authed(itemsHandler.Get))
	mux.Handle("PATCH /api/items/{id}", authed(itemsHandler.Update))
	mux.Handle("DELETE /api/items/{id}", authed(itemsHandler.Delete))
	mux.Handle("PUT /api/items/{id}/image", authed(itemsHandler.UploadImage))
	mux.Handle("GET /api/items/{id}/image", authed(itemsHandler.GetImage))
	mux.Handle("POST /api/barcode", authed(itemsHandler.Barcode))

	// Assistant.
	mux.Handle("POST /api/assist", authed(assistHandler.Command))

	// Smart collections.
	mux.Handle("GET /api/collections", authed(collectionsHandler.Snapshots))
	mux.Handle("POST /api/collections/before-i-buy", authed(collectionsHandler.BeforeIBuy))
	mux.Handle("POST /api/collections/restock", authed(collectionsHandler.Restock))
	mux.Handle("POST /api/collections/restock/dismiss", authed(collectionsHandler.Dismiss))

	// Documents and activity.
	mux.Handle("POST /api/documents", authed(documentsHandler.Upload))
	mux.Handle("GET /api/documents", authed(documentsHandler.List))
	mux.Handle("GET /api/documents/{id}/content", authed(documentsHandler.Content))
	mux.Handle("GET /api/activity/recent", authed(documentsHandler.RecentActivity))

	return mux
}
