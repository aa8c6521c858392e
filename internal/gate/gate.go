// Package gate owns the single admin session and every transition on it.
// It is the explicit object the shell talks to: the session is never held
// in package-level state.
package gate

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/waypartner/adminpanel/internal/audit"
	"github.com/waypartner/adminpanel/internal/auth"
	"github.com/waypartner/adminpanel/internal/model"
	"github.com/waypartner/adminpanel/internal/nav"
	"github.com/waypartner/adminpanel/internal/store"
)

type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
)

var (
	// ErrAlreadyAuthenticated rejects a re-entrant login so a second
	// identity can never silently overwrite the live session.
	ErrAlreadyAuthenticated = errors.New("already authenticated")
	// ErrNotAuthenticated guards operations that need a live session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrForbidden is returned when the session lacks the permission a
	// screen requires.
	ErrForbidden = errors.New("forbidden")
)

// UIState holds the shell-local flags the gate resets on logout.
type UIState struct {
	SidebarOpen       bool `json:"sidebarOpen"`
	NotificationsOpen bool `json:"notificationsOpen"`
}

func initialUIState() UIState {
	return UIState{SidebarOpen: true, NotificationsOpen: false}
}

// Gate is the auth gate state machine. All transitions are serialized on
// one mutex, the Go rendering of the single UI event thread the panel ran
// on; at most one session is ever held.
type Gate struct {
	allowlist  *auth.Allowlist
	sessions   store.SessionStore
	logger     *slog.Logger
	audit      *audit.Logger
	loginDelay time.Duration
	nowFunc    func() time.Time

	mu      sync.Mutex
	state   State
	session model.Session
	token   string
	screen  nav.Screen
	ui      UIState

	onSessionChanged func(model.Session)
}

type Config struct {
	Allowlist *auth.Allowlist
	Sessions  store.SessionStore
	Logger    *slog.Logger
	Audit     *audit.Logger
	// LoginDelay simulates network latency during login. Zero disables it.
	LoginDelay time.Duration
}

func New(cfg Config) (*Gate, error) {
	if cfg.Allowlist == nil {
		return nil, errors.New("allowlist is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		allowlist:  cfg.Allowlist,
		sessions:   cfg.Sessions,
		logger:     logger,
		audit:      cfg.Audit,
		loginDelay: cfg.LoginDelay,
		nowFunc:    time.Now,
		state:      StateUnauthenticated,
		screen:     nav.ScreenLogin,
		ui:         initialUIState(),
	}, nil
}

// OnSessionChanged registers the shell's outbound notification. Set it
// before the gate starts handling events; it is invoked outside the gate's
// lock on login, hydrate and logout.
func (g *Gate) OnSessionChanged(fn func(model.Session)) {
	g.onSessionChanged = fn
}

// State returns the current gate state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// CurrentSession returns a copy of the live session. The zero session
// (LoggedIn false) means unauthenticated.
func (g *Gate) CurrentSession() model.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

// CurrentScreen returns the screen the shell should be showing.
func (g *Gate) CurrentScreen() nav.Screen {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.screen
}

// Authenticated resolves a client token to the live session. Used by the
// session middleware; a token from a previous process survives a restart
// because hydration restores it from the store.
func (g *Gate) Authenticated(token string) (model.Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateAuthenticated || token == "" || token != g.token {
		return model.Session{}, false
	}
	return g.session, true
}

// SubmitLogin validates the credential and, on success, persists the
// session and moves the gate to Authenticated. The failure is reported
// synchronously to the caller; nothing is queued. A store write failure
// does not fail the login: the session stays live in memory and is marked
// unpersisted.
func (g *Gate) SubmitLogin(ctx context.Context, cred auth.Credential) (model.Session, error) {
	g.mu.Lock()
	// Claiming the Authenticating state here makes this the only login in
	// flight: a concurrent attempt fails fast instead of racing a second
	// record into the store behind the live session.
	if g.state != StateUnauthenticated {
		g.mu.Unlock()
		return model.Session{}, ErrAlreadyAuthenticated
	}
	g.state = StateAuthenticating
	g.mu.Unlock()

	if g.loginDelay > 0 {
		select {
		case <-time.After(g.loginDelay):
		case <-ctx.Done():
			g.setState(StateUnauthenticated)
			return model.Session{}, ctx.Err()
		}
	}

	id, err := g.allowlist.Validate(cred)
	if err != nil {
		g.setState(StateUnauthenticated)
		if auditErr := g.audit.Log(cred.Phone, "login", "", "denied"); auditErr != nil {
			g.logger.Warn("audit write failed", "err", auditErr)
		}
		return model.Session{}, err
	}

	sess := model.Session{
		Identity:    id.Identity,
		Name:        id.Name,
		Role:        id.Role,
		Permissions: id.Permissions,
		LoginTime:   g.nowFunc().UTC(),
		LoggedIn:    true,
		Persisted:   true,
	}
	token := auth.NewToken()

	if err := g.sessions.Save(ctx, store.Record{Token: token, Session: sess}); err != nil {
		// A failed write never blocks the login; the session just
		// won't survive a restart.
		g.logger.Warn("could not persist admin session", "err", err)
		sess.Persisted = false
	}

	g.mu.Lock()
	g.state = StateAuthenticated
	g.session = sess
	g.token = token
	g.screen = nav.ScreenDashboard
	g.mu.Unlock()

	g.logger.Info("admin logged in", "identity", sess.Identity, "role", sess.Role)
	if auditErr := g.audit.Log(sess.Identity, "login", "", "granted"); auditErr != nil {
		g.logger.Warn("audit write failed", "err", auditErr)
	}
	g.notifySessionChanged(sess)
	return sess, nil
}

// Token returns the opaque token the shell hands to the client. Empty when
// unauthenticated.
func (g *Gate) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

// Hydrate restores a prior session from the store. Invoked once at process
// start. A missing or unreadable record means no prior session; a record
// with an unknown role is cleared. The restored session is trusted without
// re-validating credentials.
func (g *Gate) Hydrate(ctx context.Context) {
	rec, err := g.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrCorruptRecord) {
			g.logger.Warn("corrupt admin session record, clearing", "err", err)
			if err := g.sessions.Clear(ctx); err != nil {
				g.logger.Warn("could not clear session record", "err", err)
			}
			return
		}
		if !errors.Is(err, store.ErrNoSession) {
			g.logger.Warn("session store unavailable, starting unauthenticated", "err", err)
		}
		return
	}

	if !rec.Session.Role.Valid() {
		g.logger.Warn("invalid admin session record, clearing", "role", rec.Session.Role)
		if err := g.sessions.Clear(ctx); err != nil {
			g.logger.Warn("could not clear session record", "err", err)
		}
		return
	}

	sess := rec.Session
	sess.LoggedIn = true
	sess.Persisted = true

	g.mu.Lock()
	g.state = StateAuthenticated
	g.session = sess
	g.token = rec.Token
	g.screen = nav.ScreenDashboard
	g.mu.Unlock()

	g.logger.Info("admin session restored", "identity", sess.Identity, "role", sess.Role)
	g.notifySessionChanged(sess)
}

// Logout clears the session and the store record, and resets the UI-local
// flags and the current screen. Idempotent; the in-memory state is cleared
// even when the store clear fails.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	identity := g.session.Identity
	g.state = StateUnauthenticated
	g.session = model.Session{}
	g.token = ""
	g.screen = nav.ScreenLogin
	g.ui = initialUIState()
	g.mu.Unlock()

	err := g.sessions.Clear(ctx)
	if err != nil {
		g.logger.Warn("could not clear session record", "err", err)
	}

	if identity != "" {
		g.logger.Info("admin logged out", "identity", identity)
		if auditErr := g.audit.Log(identity, "logout", "", "ok"); auditErr != nil {
			g.logger.Warn("audit write failed", "err", auditErr)
		}
	}
	g.notifySessionChanged(model.Session{})
	return err
}

// Navigate routes the live session to a screen. The guard's permission
// check runs before any panel is rendered; unknown screens still render the
// placeholder panel.
func (g *Gate) Navigate(screen nav.Screen) (nav.Panel, error) {
	g.mu.Lock()
	if g.state != StateAuthenticated {
		g.mu.Unlock()
		return nav.Panel{}, ErrNotAuthenticated
	}
	sess := g.session
	if !nav.Authorize(sess, screen) {
		g.mu.Unlock()
		return nav.Panel{}, ErrForbidden
	}
	g.screen = screen
	g.mu.Unlock()

	if auditErr := g.audit.Log(sess.Identity, "navigate", string(screen), "ok"); auditErr != nil {
		g.logger.Warn("audit write failed", "err", auditErr)
	}
	return nav.Navigate(screen), nil
}

// UI returns the current shell-local flags.
func (g *Gate) UI() UIState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ui
}

// ToggleSidebar flips the sidebar flag and returns the new value.
func (g *Gate) ToggleSidebar() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ui.SidebarOpen = !g.ui.SidebarOpen
	return g.ui.SidebarOpen
}

// ToggleNotifications flips the notification drawer flag and returns the
// new value.
func (g *Gate) ToggleNotifications() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ui.NotificationsOpen = !g.ui.NotificationsOpen
	return g.ui.NotificationsOpen
}

func (g *Gate) setState(s State) {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()
}

func (g *Gate) notifySessionChanged(sess model.Session) {
	if g.onSessionChanged != nil {
		g.onSessionChanged(sess)
	}
}
