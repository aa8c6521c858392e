package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/waypartner/adminpanel/internal/notify"
)

type NotificationsHandler struct {
	BaseHandler
	center *notify.Center
}

func NewNotificationsHandler(center *notify.Center, logger *slog.Logger) *NotificationsHandler {
	return &NotificationsHandler{BaseHandler: BaseHandler{Logger: logger}, center: center}
}

// List returns the notifications and the unread badge count.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	data := envelope{
		"notifications": h.center.List(),
		"unreadCount":   h.center.UnreadCount(),
	}
	if err := h.writeJSON(w, http.StatusOK, data, nil); err != nil {
		h.logError(r, err)
	}
}

// MarkRead flags one notification as read.
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.center.MarkRead(id) {
		h.errorResponse(w, r, http.StatusNotFound, "unknown notification")
		return
	}
	if err := h.writeJSON(w, http.StatusOK, envelope{"unreadCount": h.center.UnreadCount()}, nil); err != nil {
		h.logError(r, err)
	}
}
