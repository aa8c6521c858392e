package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/waypartner/adminpanel/internal/auth"
	"github.com/waypartner/adminpanel/internal/backend"
	"github.com/waypartner/adminpanel/internal/config"
	"github.com/waypartner/adminpanel/internal/gate"
	"github.com/waypartner/adminpanel/internal/middleware"
	"github.com/waypartner/adminpanel/internal/notify"
	"github.com/waypartner/adminpanel/internal/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := store.NewMemoryStore()

	g, err := gate.New(gate.Config{
		Allowlist: auth.DefaultAllowlist(),
		Sessions:  sessions,
		Logger:    logger,
	})
	if err != nil {
		t.Fatalf("gate.New() error: %v", err)
	}

	return &App{
		config:   &config.Config{Port: "0", Env: "development"},
		logger:   logger,
		sessions: sessions,
		gate:     g,
		center:   notify.NewCenter(notify.Seed()),
		monitor:  backend.NewMonitor(backend.Config{}, logger),
	}
}

func postLogin(t *testing.T, h http.Handler, phone string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"phone": phone})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestLoginRejectsUnknownPhone(t *testing.T) {
	h := newTestApp(t).routes()

	rr := postLogin(t, h, "1234567890")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value != "" {
			t.Error("a rejected login must not set a session cookie")
		}
	}
}

func TestLoginIssuesSessionCookie(t *testing.T) {
	h := newTestApp(t).routes()

	rr := postLogin(t, h, "8888888888")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	cookie := sessionCookie(t, rr)
	if cookie.Value == "" || !cookie.HttpOnly {
		t.Errorf("expected a non-empty HttpOnly cookie, got %+v", cookie)
	}

	var body struct {
		Session struct {
			Identity string `json:"identity"`
			Role     string `json:"role"`
		} `json:"session"`
		Persisted bool `json:"persisted"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Session.Role != "admin" || body.Session.Identity != "8888888888" {
		t.Errorf("unexpected session payload: %+v", body.Session)
	}
	if !body.Persisted {
		t.Error("memory store save should report persisted")
	}
}

func TestSecondLoginConflicts(t *testing.T) {
	h := newTestApp(t).routes()

	if rr := postLogin(t, h, "8888888888"); rr.Code != http.StatusOK {
		t.Fatalf("first login failed: %d", rr.Code)
	}
	if rr := postLogin(t, h, "9999999999"); rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a re-entrant login, got %d", rr.Code)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	h := newTestApp(t).routes()

	for _, path := range []string{
		"/api/admin/session",
		"/api/admin/panels/admin-dashboard",
		"/api/admin/notifications",
		"/api/admin/state",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 without a cookie, got %d", path, rr.Code)
		}
	}
}

func TestPanelRoutes(t *testing.T) {
	h := newTestApp(t).routes()
	cookie := sessionCookie(t, postLogin(t, h, "8888888888"))

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	rr := get("/api/admin/panels/admin-dashboard")
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d", rr.Code)
	}
	var panel struct {
		Kind  string `json:"kind"`
		Title string `json:"title"`
		Stats []struct {
			Label string `json:"label"`
			Value string `json:"value"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &panel); err != nil {
		t.Fatalf("decode panel: %v", err)
	}
	if panel.Kind != "stats" || len(panel.Stats) != 4 {
		t.Errorf("unexpected dashboard panel: %+v", panel)
	}

	rr = get("/api/admin/panels/admin-fleet")
	if rr.Code != http.StatusOK {
		t.Fatalf("fleet: expected 200, got %d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &panel); err != nil {
		t.Fatalf("decode panel: %v", err)
	}
	if panel.Kind != "placeholder" || panel.Title != "Fleet Management" {
		t.Errorf("unexpected fleet panel: %+v", panel)
	}

	// Unknown screens fall through to the placeholder, not an error.
	rr = get("/api/admin/panels/admin-green-coins")
	if rr.Code != http.StatusOK {
		t.Fatalf("unknown screen: expected 200, got %d", rr.Code)
	}
}

func TestNotificationsRoutes(t *testing.T) {
	h := newTestApp(t).routes()
	cookie := sessionCookie(t, postLogin(t, h, "9999999999"))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/notifications", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		UnreadCount   int `json:"unreadCount"`
		Notifications []struct {
			ID string `json:"id"`
		} `json:"notifications"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode notifications: %v", err)
	}
	if body.UnreadCount != 2 || len(body.Notifications) != 5 {
		t.Errorf("unexpected notifications payload: %+v", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/admin/notifications/1/read", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("mark read: expected 200, got %d", rr.Code)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	h := newTestApp(t).routes()
	cookie := sessionCookie(t, postLogin(t, h, "8888888888"))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rr.Code)
	}
}

func TestHealthDemoMode(t *testing.T) {
	h := newTestApp(t).routes()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if body["status"] != "ok" || body["mode"] != "demo" {
		t.Errorf("unexpected health payload: %v", body)
	}
}
