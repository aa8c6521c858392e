package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/waypartner/adminpanel/internal/model"
)

// SQLiteStore keeps the session record in a single-row sqlite table, so it
// survives process restarts the way a browser profile survives reloads.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Save(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec.Session)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO admin_session (key, token, record, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			token = excluded.token,
			record = excluded.record,
			updated_at = excluded.updated_at`,
		SessionKey, rec.Token, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save session record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (Record, error) {
	var (
		token   string
		payload string
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT token, record FROM admin_session WHERE key = ?`, SessionKey)
	if err := row.Scan(&token, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNoSession
		}
		return Record{}, fmt.Errorf("load session record: %w", err)
	}

	var sess model.Session
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return Record{Token: token, Session: sess}, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM admin_session WHERE key = ?`, SessionKey); err != nil {
		return fmt.Errorf("clear session record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
