package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"canteen/notify-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type Handler struct {
	Board  service.BoardServiceInterface
	Logger *slog.Logger
}

func NewHandler(board service.BoardServiceInterface, logger *slog.Logger) *Handler {
	return &Handler{Board: board, Logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/board", h.getBoard).Methods("GET")
}

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return cors.Default().Handler(r)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "notify-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (h *Handler) getBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.Board.Board(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		code := http.StatusServiceUnavailable
		if errors.Is(err, service.ErrInvalidDate) {
			code = http.StatusBadRequest
		} else if h.Logger != nil {
			h.Logger.Error("failed to load pickup board", "error", err)
		}
		writeJSON(w, code, envelope{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: board})
}

func writeJSON(w http.ResponseWriter, code int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
