// Package nav owns the screen table and maps logical screens to rendered
// panels. The guard never fails: unknown screens fall through to the
// placeholder branch rather than failing closed.
package nav

import (
	"strings"

	"github.com/waypartner/adminpanel/internal/model"
)

// Screen is a logical route key identifying which panel to render.
type Screen string

const (
	ScreenLogin          Screen = "admin-login"
	ScreenDashboard      Screen = "admin-dashboard"
	ScreenServiceCenters Screen = "admin-service-centers"
	ScreenFleet          Screen = "admin-fleet"
	ScreenUsers          Screen = "admin-users"
	ScreenAnalytics      Screen = "admin-analytics"
	ScreenPayments       Screen = "admin-payments"
	ScreenAds            Screen = "admin-ads"
	ScreenSystem         Screen = "admin-system"
	ScreenReports        Screen = "admin-reports"
)

// screens is the transition table: label shown in the shell, and the
// permission a screen demands beyond an authenticated session. No screen is
// currently role-restricted; the required column is the extension point for
// when that changes.
var screens = map[Screen]struct {
	label    string
	required model.Permission
}{
	ScreenLogin:          {label: "Login"},
	ScreenDashboard:      {label: "Dashboard"},
	ScreenServiceCenters: {label: "Service Centers"},
	ScreenFleet:          {label: "Fleet Management"},
	ScreenUsers:          {label: "Users"},
	ScreenAnalytics:      {label: "Analytics"},
	ScreenPayments:       {label: "Payments"},
	ScreenAds:            {label: "Ads"},
	ScreenSystem:         {label: "System Health"},
	ScreenReports:        {label: "Reports"},
}

// Known reports whether the screen is in the transition table.
func Known(s Screen) bool {
	_, ok := screens[s]
	return ok
}

// Label returns the human-readable name for a screen. Unknown screens get a
// humanized form of their key so the placeholder panel still carries a
// sensible title.
func Label(s Screen) string {
	if e, ok := screens[s]; ok {
		return e.label
	}
	return humanize(string(s))
}

func humanize(key string) string {
	key = strings.TrimPrefix(key, "admin-")
	words := strings.Split(key, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Authorize reports whether the session may view the screen. Consulted by
// the guard before rendering any panel. Screens without a required
// permission only need an authenticated session.
func Authorize(sess model.Session, s Screen) bool {
	if !sess.LoggedIn {
		return false
	}
	e, ok := screens[s]
	if !ok || e.required == "" {
		return true
	}
	return sess.Can(e.required)
}

// Navigate maps a screen to its panel: the live-stats panel for the
// dashboard, a labeled placeholder for everything else.
func Navigate(s Screen) Panel {
	if s == ScreenDashboard {
		return dashboardPanel()
	}
	return Panel{
		Screen:      s,
		Kind:        PanelPlaceholder,
		Title:       Label(s),
		Description: "This admin feature is under development",
	}
}
