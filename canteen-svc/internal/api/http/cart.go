package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type cartItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.Get(r.Context(), IdentityFrom(r.Context()).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "", cart)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "Invalid JSON format: "+err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	cart, err := h.Carts.AddItem(r.Context(), IdentityFrom(r.Context()).UserID, req.ItemID, req.Quantity)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Added to cart", cart)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "Invalid JSON format: "+err.Error())
		return
	}
	cart, err := h.Carts.UpdateQuantity(r.Context(), IdentityFrom(r.Context()).UserID, mux.Vars(r)["itemId"], req.Quantity)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Cart updated", cart)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.RemoveItem(r.Context(), IdentityFrom(r.Context()).UserID, mux.Vars(r)["itemId"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Removed from cart", cart)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Clear(r.Context(), IdentityFrom(r.Context()).UserID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Cart cleared", nil)
}
