// Package store persists customer risk profiles and the portal's activity
// audit trail in SQLite. Assessments and quotes are never stored: they are
// recomputed from the profile on demand, so stored state can never drift
// from the engine's output.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/assurelab/riskquote/internal/domain"
)

// Config contains configuration for the SQLite store.
type Config struct {
	// Path is the database file path. ":memory:" is valid for tests.
	Path string

	// BusyTimeout is the duration to wait when the database is locked.
	BusyTimeout time.Duration
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() *Config {
	return &Config{
		Path:        "data/riskquote.db",
		BusyTimeout: 5 * time.Second,
	}
}

// Profile is a stored risk profile with its identity and timestamps.
type Profile struct {
	ID        string             `json:"id"`
	Customer  string             `json:"customer"`
	Attrs     domain.RiskProfile `json:"attributes"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// AuditEntry is one appended audit record.
type AuditEntry struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id,omitempty"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// Audit actions recorded by the portal.
const (
	ActionProfileCreated = "profile_created"
	ActionProfileUpdated = "profile_updated"
	ActionQuoteComputed  = "quote_computed"
)

// Store is a SQLite-backed profile and audit store.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (and if necessary initializes) the store.
func Open(config *Config) (*Store, error) {
	if config == nil {
		config = DefaultConfig()
	}
	logger := slog.Default().With("component", "store.sqlite")

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", config.Path, err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.initialize(config); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("store initialized", "path", config.Path)
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initialize(config *Config) error {
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", config.BusyTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := s.db.Exec(insertSchemaVersion, SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	var version int
	if err := s.db.QueryRow(getSchemaVersion).Scan(&version); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version != SchemaVersion {
		return fmt.Errorf("schema version mismatch: expected %d, got %d", SchemaVersion, version)
	}
	return nil
}

// CreateProfile stores a new profile and returns it with a fresh ID.
func (s *Store) CreateProfile(ctx context.Context, customer string, attrs *domain.RiskProfile) (*Profile, error) {
	if err := attrs.Validate(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}

	now := time.Now().UTC()
	p := &Profile{
		ID:        uuid.NewString(),
		Customer:  customer,
		Attrs:     *attrs,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, customer, attributes, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Customer, string(payload), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}

	s.appendAudit(ctx, p.ID, ActionProfileCreated, "customer "+customer)
	return p, nil
}

// UpdateProfile supersedes a stored profile in place. Edits overwrite; no
// version history is kept.
func (s *Store) UpdateProfile(ctx context.Context, id string, attrs *domain.RiskProfile) (*Profile, error) {
	if err := attrs.Validate(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET attributes = ?, updated_at = ? WHERE id = ?`,
		string(payload), now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}

	s.appendAudit(ctx, id, ActionProfileUpdated, "profile superseded")
	return s.GetProfile(ctx, id)
}

// GetProfile fetches a stored profile by ID.
func (s *Store) GetProfile(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, customer, attributes, created_at, updated_at FROM profiles WHERE id = ?`, id).
		Scan(&p.ID, &p.Customer, &payload, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &p.Attrs); err != nil {
		return nil, fmt.Errorf("failed to decode profile attributes: %w", err)
	}
	return &p, nil
}

// ListProfiles returns the stored profiles for a customer, newest first.
func (s *Store) ListProfiles(ctx context.Context, customer string) ([]*Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, customer, attributes, created_at, updated_at FROM profiles
		 WHERE customer = ? ORDER BY updated_at DESC`, customer)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var out []*Profile
	for rows.Next() {
		var p Profile
		var payload string
		if err := rows.Scan(&p.ID, &p.Customer, &payload, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &p.Attrs); err != nil {
			return nil, fmt.Errorf("failed to decode profile attributes: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// RecordQuote appends an audit entry for a computed quote.
func (s *Store) RecordQuote(ctx context.Context, profileID string, quote *domain.PremiumQuote) {
	detail := fmt.Sprintf("%s coverage %s final %s", quote.PolicyType,
		quote.CoverageAmount.StringFixed(2), quote.FinalPremium.StringFixed(2))
	s.appendAudit(ctx, profileID, ActionQuoteComputed, detail)
}

// ListAudit returns the audit trail for a profile, oldest first.
func (s *Store) ListAudit(ctx context.Context, profileID string) ([]*AuditEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, profile_id, action, detail, created_at FROM audit_log
		 WHERE profile_id = ? ORDER BY created_at ASC`, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var out []*AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Action, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// appendAudit inserts an audit row. Audit failures are logged, not
// propagated: an estimate must never fail because the audit write did.
func (s *Store) appendAudit(ctx context.Context, profileID, action, detail string) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, profile_id, action, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), profileID, action, detail, time.Now().UTC())
	if err != nil {
		s.logger.Error("failed to append audit entry", "action", action, "error", err)
	}
}
