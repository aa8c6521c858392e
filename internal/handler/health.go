package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/waypartner/adminpanel/internal/backend"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type backendStatus interface {
	Status() (backend.Status, string)
	Demo() bool
}

// Health reports session-store and backend reachability. An unreachable
// backend is not fatal (the panel serves demo data); a failing session
// store is what degrades the service.
func Health(sessions pinger, monitor backendStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK

		if err := sessions.Ping(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		bStatus, detail := monitor.Status()
		mode := "live"
		if monitor.Demo() || bStatus == backend.StatusError {
			mode = "demo"
		}

		body := map[string]string{
			"status":  status,
			"backend": string(bStatus),
			"mode":    mode,
		}
		if detail != "" {
			body["detail"] = detail
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(body)
	}
}
