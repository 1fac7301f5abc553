package httpapi

import (
	"encoding/json"
	"net/http"

	"canteen/canteen-svc/internal/domain"
	"canteen/canteen-svc/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.Carts.Checkout(r.Context(), IdentityFrom(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, "Order placed. Your pickup token is "+order.Token, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.GetAll(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "", orders)
}

func (h *Handler) getMyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.GetByUser(r.Context(), IdentityFrom(r.Context()).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "", orders)
}

func (h *Handler) getActiveOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.GetActive(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "", orders)
}

func (h *Handler) getOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.Status(mux.Vars(r)["status"])
	orders, err := h.Orders.GetByStatus(r.Context(), status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "", orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "", order)
}

// getOrderByToken is public. Tokens are sequential, so only the owner and staff get
// the customer details; everyone else gets the tracking view.
func (h *Handler) getOrderByToken(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.GetByToken(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if canSeeCustomer(IdentityFrom(r.Context()), order) {
		h.respond(w, http.StatusOK, "", order)
		return
	}
	h.respond(w, http.StatusOK, "", order.Tracking())
}

func canSeeCustomer(identity *domain.Identity, order *domain.Order) bool {
	if identity == nil {
		return false
	}
	return identity.UserID == order.UserID || identity.Role == domain.RoleStaff || identity.Role == domain.RoleAdmin
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.GetByToken(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	qrCode, err := h.QR.Generate(order.Token)
	if err != nil {
		h.logger().Error("failed to generate QR code", "token", order.Token, "error", err)
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func (h *Handler) getOrderActions(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "", service.AllowedActions(order.Status))
}

type statusRequest struct {
	Status domain.Status `json:"status"`
	Note   string        `json:"note"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "Invalid JSON format: "+err.Error())
		return
	}
	order, err := h.Orders.Transition(r.Context(), mux.Vars(r)["id"], req.Status, req.Note)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Order "+order.Token+" is now "+string(order.Status), order)
}
