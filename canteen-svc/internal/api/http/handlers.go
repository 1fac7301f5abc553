package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"canteen/canteen-svc/internal/domain"
	"canteen/canteen-svc/internal/service"
	"canteen/logging"

	"github.com/gorilla/mux"
)

type Handler struct {
	Orders       service.OrderServiceInterface
	Reports      service.ReportServiceInterface
	Carts        service.CartServiceInterface
	Menu         service.MenuServiceInterface
	Staff        service.StaffServiceInterface
	Location     service.LocationServiceInterface
	QR           service.QRGenerator
	Identity     service.IdentityProvider
	ClientSecret string
	Logger       *slog.Logger
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(h.authenticate)

	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/token", h.issueToken).Methods("POST")

	r.HandleFunc("/api/menu", h.listMenu).Methods("GET")
	r.HandleFunc("/api/menu", h.requireRole(h.createMenuItem, domain.RoleStaff, domain.RoleAdmin)).Methods("POST")
	r.HandleFunc("/api/menu/{id}", h.getMenuItem).Methods("GET")
	r.HandleFunc("/api/menu/{id}", h.requireRole(h.updateMenuItem, domain.RoleStaff, domain.RoleAdmin)).Methods("PUT")
	r.HandleFunc("/api/menu/{id}", h.requireRole(h.deleteMenuItem, domain.RoleStaff, domain.RoleAdmin)).Methods("DELETE")
	r.HandleFunc("/api/menu/{id}/availability", h.requireRole(h.setMenuAvailability, domain.RoleStaff, domain.RoleAdmin)).Methods("PATCH")

	r.HandleFunc("/api/cart", h.requireLogin(h.getCart)).Methods("GET")
	r.HandleFunc("/api/cart", h.requireLogin(h.clearCart)).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.requireLogin(h.addCartItem)).Methods("POST")
	r.HandleFunc("/api/cart/items/{itemId}", h.requireLogin(h.updateCartItem)).Methods("PUT")
	r.HandleFunc("/api/cart/items/{itemId}", h.requireLogin(h.removeCartItem)).Methods("DELETE")

	// Fixed paths must be registered before /api/orders/{id}.
	r.HandleFunc("/api/orders", h.requireLogin(h.checkout)).Methods("POST")
	r.HandleFunc("/api/orders", h.requireRole(h.getOrders, domain.RoleStaff, domain.RoleAdmin)).Methods("GET")
	r.HandleFunc("/api/orders/mine", h.requireLogin(h.getMyOrders)).Methods("GET")
	r.HandleFunc("/api/orders/active", h.requireRole(h.getActiveOrders, domain.RoleStaff, domain.RoleAdmin)).Methods("GET")
	r.HandleFunc("/api/orders/status/{status}", h.requireRole(h.getOrdersByStatus, domain.RoleStaff, domain.RoleAdmin)).Methods("GET")
	r.HandleFunc("/api/orders/token/{token}", h.getOrderByToken).Methods("GET")
	r.HandleFunc("/api/orders/token/{token}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.requireRole(h.getOrder, domain.RoleStaff, domain.RoleAdmin)).Methods("GET")
	r.HandleFunc("/api/orders/{id}/actions", h.requireRole(h.getOrderActions, domain.RoleStaff, domain.RoleAdmin)).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.requireRole(h.updateOrderStatus, domain.RoleStaff, domain.RoleAdmin)).Methods("POST")

	r.HandleFunc("/api/dashboard", h.requireRole(h.getDashboard, domain.RoleStaff, domain.RoleAdmin)).Methods("GET")
	r.HandleFunc("/api/reports/daily", h.requireRole(h.getDailyReport, domain.RoleAdmin)).Methods("GET")

	r.HandleFunc("/api/staff", h.requireRole(h.listStaff, domain.RoleAdmin)).Methods("GET")
	r.HandleFunc("/api/staff", h.requireRole(h.createStaff, domain.RoleAdmin)).Methods("POST")
	r.HandleFunc("/api/staff/{id}", h.requireRole(h.deleteStaff, domain.RoleAdmin)).Methods("DELETE")

	r.HandleFunc("/api/location", h.getLocation).Methods("GET")
	r.HandleFunc("/api/location", h.requireRole(h.setLocation, domain.RoleAdmin)).Methods("PUT")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "canteen-svc",
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

func writeJSON(w http.ResponseWriter, code int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func (h *Handler) respond(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, envelope{Success: true, Message: message, Data: data})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		logging.FromCtx(r.Context()).Error("request failed", "error", err)
	}
	writeJSON(w, code, envelope{Success: false, Message: err.Error()})
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, service.ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrMenuItemNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrStaffNotFound),
		errors.Is(err, service.ErrLocationNotSet):
		return http.StatusNotFound
	case errors.Is(err, service.ErrItemUnavailable),
		errors.Is(err, service.ErrDuplicateStaff):
		return http.StatusConflict
	case errors.Is(err, service.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
