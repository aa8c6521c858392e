package handler

import (
	"log/slog"
	"net/http"

	"github.com/waypartner/adminpanel/internal/gate"
	"github.com/waypartner/adminpanel/internal/notify"
)

// StateHandler exposes the shell chrome state: current screen, sidebar and
// notification-drawer flags, unread badge.
type StateHandler struct {
	BaseHandler
	gate   *gate.Gate
	center *notify.Center
}

func NewStateHandler(g *gate.Gate, center *notify.Center, logger *slog.Logger) *StateHandler {
	return &StateHandler{BaseHandler: BaseHandler{Logger: logger}, gate: g, center: center}
}

func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	ui := h.gate.UI()
	data := envelope{
		"screen":            h.gate.CurrentScreen(),
		"sidebarOpen":       ui.SidebarOpen,
		"notificationsOpen": ui.NotificationsOpen,
		"unreadCount":       h.center.UnreadCount(),
	}
	if err := h.writeJSON(w, http.StatusOK, data, nil); err != nil {
		h.logError(r, err)
	}
}

func (h *StateHandler) ToggleSidebar(w http.ResponseWriter, r *http.Request) {
	open := h.gate.ToggleSidebar()
	if err := h.writeJSON(w, http.StatusOK, envelope{"sidebarOpen": open}, nil); err != nil {
		h.logError(r, err)
	}
}

func (h *StateHandler) ToggleNotifications(w http.ResponseWriter, r *http.Request) {
	open := h.gate.ToggleNotifications()
	if err := h.writeJSON(w, http.StatusOK, envelope{"notificationsOpen": open}, nil); err != nil {
		h.logError(r, err)
	}
}
