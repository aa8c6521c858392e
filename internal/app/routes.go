package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/waypartner/adminpanel/internal/handler"
	"github.com/waypartner/adminpanel/internal/middleware"
)

func (app *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	// Health check
	r.Get("/api/health", handler.Health(app.sessions, app.monitor))

	// Admin auth (public endpoint)
	authHandler := handler.NewAuthHandler(app.gate, app.logger, app.config.SecureCookies)
	r.Post("/api/admin/login", authHandler.Login)

	// Protected admin routes
	sessionMW := middleware.Session(app.gate)
	r.Group(func(r chi.Router) {
		r.Use(sessionMW)

		r.Post("/api/admin/logout", authHandler.Logout)
		r.Get("/api/admin/session", authHandler.Session)

		panelHandler := handler.NewPanelHandler(app.gate, app.logger)
		r.Get("/api/admin/panels/{screen}", panelHandler.Show)

		notificationsHandler := handler.NewNotificationsHandler(app.center, app.logger)
		r.Get("/api/admin/notifications", notificationsHandler.List)
		r.Post("/api/admin/notifications/{id}/read", notificationsHandler.MarkRead)

		stateHandler := handler.NewStateHandler(app.gate, app.center, app.logger)
		r.Get("/api/admin/state", stateHandler.Get)
		r.Post("/api/admin/state/sidebar", stateHandler.ToggleSidebar)
		r.Post("/api/admin/state/notifications", stateHandler.ToggleNotifications)
	})
	return r
}
