package tests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "canteen/canteen-svc/internal/api/http"
	"canteen/canteen-svc/internal/domain"
	"canteen/canteen-svc/internal/service"
	"canteen/canteen-svc/internal/storage"
	"canteen/logging"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

const clientSecret = "front-door"

type apiEnv struct {
	t       *testing.T
	handler *httpapi.Handler
	router  *mux.Router
	issuer  *service.TokenIssuer
	menu    *service.MenuService
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	repo := storage.NewKVRepository(storage.NewMemoryStore())
	orders := service.NewOrderService(repo, nil, service.OrderServiceConfig{Location: time.UTC, Logger: logging.Discard()})
	menu := service.NewMenuService(repo)
	issuer := service.NewTokenIssuer("test-secret", time.Hour)

	handler := &httpapi.Handler{
		Orders:       orders,
		Reports:      service.NewReportService(repo, time.UTC, nil),
		Carts:        service.NewCartService(repo, menu, orders, logging.Discard()),
		Menu:         menu,
		Staff:        service.NewStaffService(repo),
		Location:     service.NewLocationService(repo),
		QR:           service.DefaultQRGenerator{BaseURL: "http://canteen.test"},
		Identity:     issuer,
		ClientSecret: clientSecret,
		Logger:       logging.Discard(),
	}
	return newAPIEnvWith(t, handler, issuer, menu)
}

func newAPIEnvWith(t *testing.T, handler *httpapi.Handler, issuer *service.TokenIssuer, menu *service.MenuService) *apiEnv {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return &apiEnv{t: t, handler: handler, router: r, issuer: issuer, menu: menu}
}

func (e *apiEnv) bearer(userID string, role domain.Role) string {
	e.t.Helper()
	token, err := e.issuer.Issue(domain.Identity{UserID: userID, Name: userID, Email: userID + "@canteen.test", Role: role})
	require.NoError(e.t, err)
	return token
}

func (e *apiEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) response {
	t.Helper()
	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}
