package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/waypartner/adminpanel/internal/auth"
	"github.com/waypartner/adminpanel/internal/gate"
	appmw "github.com/waypartner/adminpanel/internal/middleware"
)

// AuthHandler exposes the auth gate over HTTP.
type AuthHandler struct {
	BaseHandler
	gate          *gate.Gate
	secureCookies bool
}

func NewAuthHandler(g *gate.Gate, logger *slog.Logger, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		gate:          g,
		secureCookies: secureCookies,
	}
}

// Login authenticates an admin phone number and issues the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var cred auth.Credential
	if err := h.readJSON(w, r, &cred); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.gate.SubmitLogin(r.Context(), cred)
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		h.errorResponse(w, r, http.StatusUnauthorized, "Unauthorized access. Admin credentials required.")
		return
	case errors.Is(err, gate.ErrAlreadyAuthenticated):
		h.errorResponse(w, r, http.StatusConflict, "An admin session is already active. Log out first.")
		return
	case err != nil:
		h.serverErrorResponse(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     appmw.SessionCookieName,
		Value:    h.gate.Token(),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
	if err := h.writeJSON(w, http.StatusOK, envelope{"session": sess, "persisted": sess.Persisted}, nil); err != nil {
		h.logError(r, err)
	}
}

// Logout ends the session and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Logout(r.Context()); err != nil {
		// Memory state is already cleared; a failed store clear only
		// risks the record resurfacing on the next hydrate.
		h.logError(r, err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:    appmw.SessionCookieName,
		Value:   "",
		Path:    "/",
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	})
	if err := h.writeJSON(w, http.StatusOK, envelope{"message": "logged out"}, nil); err != nil {
		h.logError(r, err)
	}
}

// Session returns the authenticated session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess := appmw.SessionFromContext(r.Context())
	if err := h.writeJSON(w, http.StatusOK, envelope{"session": sess}, nil); err != nil {
		h.logError(r, err)
	}
}
