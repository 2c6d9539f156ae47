// Package httpapi serves the board over a JSON HTTP API.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/thenoetrevino/ordo/internal/app"
)

// WelcomeMessage is returned by GET /
const WelcomeMessage = "Welcome to Ordo Board API"

type handler struct {
	app    *app.App
	logger *slog.Logger
}

// NewHandler returns the API with CORS for allowedOrigins and request
// metrics applied.
func NewHandler(a *app.App, allowedOrigins []string) http.Handler {
	h := &handler{app: a, logger: a.Logger()}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.root)
	mux.HandleFunc("GET /health", h.health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /api/board", h.getBoard)

	// Columns
	for _, base := range []string{"/api/columns", "/api/columns/{$}"} {
		mux.HandleFunc("POST "+base, h.createColumn)
		mux.HandleFunc("GET "+base, h.listColumns)
	}
	mux.HandleFunc("GET /api/columns/{id}", h.getColumn)
	mux.HandleFunc("PUT /api/columns/{id}", h.updateColumn)
	mux.HandleFunc("DELETE /api/columns/{id}", h.deleteColumn)
	mux.HandleFunc("PATCH /api/columns/{id}/reorder", h.reorderColumn)

	// Tasks
	for _, base := range []string{"/api/tasks", "/api/tasks/{$}"} {
		mux.HandleFunc("POST "+base, h.createTask)
		mux.HandleFunc("GET "+base, h.listTasks)
	}
	mux.HandleFunc("GET /api/tasks/{id}", h.getTask)
	mux.HandleFunc("PUT /api/tasks/{id}", h.updateTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", h.deleteTask)
	mux.HandleFunc("PATCH /api/tasks/{id}/move", h.moveTask)
	mux.HandleFunc("PATCH /api/tasks/{id}/reorder", h.reorderTask)
	mux.HandleFunc("GET /api/tasks/columns/{column_id}/tasks", h.listColumnTasks)

	return newCORS(allowedOrigins).Handler(h.instrument(mux))
}

func newCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
}

func (h *handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": WelcomeMessage})
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *handler) getBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.app.Board().GetBoard(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBoardResponse(board))
}
