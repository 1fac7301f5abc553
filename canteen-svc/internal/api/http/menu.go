package httpapi

import (
	"encoding/json"
	"net/http"

	"canteen/canteen-svc/internal/domain"
	"canteen/canteen-svc/internal/service"

	"github.com/gorilla/mux"
)

// listMenu shows customers only what they can order; staff see the full catalog.
func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	var (
		items []domain.MenuItem
		err   error
	)
	identity := IdentityFrom(r.Context())
	if identity != nil && (identity.Role == domain.RoleStaff || identity.Role == domain.RoleAdmin) {
		items, err = h.Menu.List(r.Context())
	} else {
		items, err = h.Menu.ListAvailable(r.Context())
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "", items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Menu.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "", item)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var in service.MenuItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.badRequest(w, "Invalid JSON format: "+err.Error())
		return
	}
	item, err := h.Menu.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, "Menu item created", item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var in service.MenuItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.badRequest(w, "Invalid JSON format: "+err.Error())
		return
	}
	item, err := h.Menu.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Menu item updated", item)
}

func (h *Handler) setMenuAvailability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Available *bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Available == nil {
		h.badRequest(w, "Body must be {\"available\": true|false}")
		return
	}
	item, err := h.Menu.SetAvailability(r.Context(), mux.Vars(r)["id"], *req.Available)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Menu item updated", item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Menu.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Menu item deleted", nil)
}
