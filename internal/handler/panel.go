package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/waypartner/adminpanel/internal/gate"
	"github.com/waypartner/adminpanel/internal/nav"
)

// PanelHandler routes screen requests through the navigation guard.
type PanelHandler struct {
	BaseHandler
	gate *gate.Gate
}

func NewPanelHandler(g *gate.Gate, logger *slog.Logger) *PanelHandler {
	return &PanelHandler{BaseHandler: BaseHandler{Logger: logger}, gate: g}
}

// Show navigates to the requested screen and returns its panel. Unknown
// screens render the placeholder panel rather than failing.
func (h *PanelHandler) Show(w http.ResponseWriter, r *http.Request) {
	screen := nav.Screen(chi.URLParam(r, "screen"))

	panel, err := h.gate.Navigate(screen)
	switch {
	case errors.Is(err, gate.ErrNotAuthenticated):
		h.errorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	case errors.Is(err, gate.ErrForbidden):
		h.errorResponse(w, r, http.StatusForbidden, "insufficient permissions")
		return
	case err != nil:
		h.serverErrorResponse(w, r, err)
		return
	}

	if err := h.writeJSON(w, http.StatusOK, panel, nil); err != nil {
		h.logError(r, err)
	}
}
