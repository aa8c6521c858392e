// Package store persists the single admin session record. It is the Go
// counterpart of the browser-local storage the panel historically used: one
// key, one JSON-serialized session, surviving restarts.
package store

import (
	"context"
	"errors"

	"github.com/waypartner/adminpanel/internal/model"
)

// SessionKey is the single key the session record lives under. The legacy
// bare token key is folded into the record's token column.
const SessionKey = "waypartner_admin_session"

// ErrNoSession is returned by Load when no session record exists.
var ErrNoSession = errors.New("no session record")

// ErrCorruptRecord is returned by Load when a record exists but cannot be
// decoded. Distinct from store unavailability: a corrupt record is safe to
// clear, an unreachable store is not.
var ErrCorruptRecord = errors.New("corrupt session record")

// Record is a persisted session plus the opaque token presented by the
// client cookie.
type Record struct {
	Token   string
	Session model.Session
}

// SessionStore is the durable single-record session persistence the auth
// gate writes through. Load returns ErrNoSession when the record is absent;
// any other error means the store is unavailable, which hydration treats as
// "no prior session".
type SessionStore interface {
	Save(ctx context.Context, rec Record) error
	Load(ctx context.Context) (Record, error)
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
}
