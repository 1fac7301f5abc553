package httpapi

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"canteen/canteen-svc/internal/domain"
	"canteen/canteen-svc/internal/service"

	"github.com/gorilla/mux"
)

type tokenRequest struct {
	ClientSecret string `json:"client_secret"`
	domain.Identity
}

// issueToken lets the login front end exchange a vouched identity for a bearer token.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "Invalid JSON format: "+err.Error())
		return
	}
	if h.ClientSecret == "" || subtle.ConstantTimeCompare([]byte(req.ClientSecret), []byte(h.ClientSecret)) != 1 {
		writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: "invalid client"})
		return
	}
	if req.Role == "" {
		req.Role = domain.RoleCustomer
	}
	token, err := h.Identity.Issue(req.Identity)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Token issued", map[string]string{
		"access_token": token,
		"token_type":   "Bearer",
	})
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Reports.DashboardStats(r.Context(), time.Time{})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "", stats)
}

func (h *Handler) getDailyReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Reports.DailyReport(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "", report)
}

func (h *Handler) listStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.Staff.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "", staff)
}

func (h *Handler) createStaff(w http.ResponseWriter, r *http.Request) {
	var in service.StaffInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.badRequest(w, "Invalid JSON format: "+err.Error())
		return
	}
	member, err := h.Staff.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, "Staff member added", member)
}

func (h *Handler) deleteStaff(w http.ResponseWriter, r *http.Request) {
	if err := h.Staff.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Staff member removed", nil)
}

func (h *Handler) getLocation(w http.ResponseWriter, r *http.Request) {
	loc, err := h.Location.Get(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "", loc)
}

func (h *Handler) setLocation(w http.ResponseWriter, r *http.Request) {
	var loc domain.ShopLocation
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		h.badRequest(w, "Invalid JSON format: "+err.Error())
		return
	}
	saved, err := h.Location.Set(r.Context(), loc)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Location saved", saved)
}
