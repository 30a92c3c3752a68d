/*
Package sqlite provides a SQLite-backed subscription document store.

PURPOSE:
  Persists subscription documents for the engine's callers. The engine
  itself is pure and never touches storage; every handler reads a snapshot
  from here, computes or mutates, and writes back.

KEY TABLE:
  subscriptions: one row per subscription. The full configuration lives in
  a JSON document column (same pattern as storing policy configs as JSON);
  customer, mode and status are lifted into indexed columns for listing.

CONCURRENCY:
  Concurrent edits to the SAME document (two staff members adding overrides
  at once) are serialized with an optimistic version column. Update takes
  the version the caller read; a stale version returns
  subscription.ErrConcurrentModification and nothing is written. Reads need
  no coordination.

TERMINAL STATUS:
  Stopped is irreversible. Update rejects any write that moves a stopped
  document to another status with subscription.ErrSubscriptionStopped.

WAL MODE:
  SQLite is opened with WAL so readers do not block behind the single
  writer.

USAGE:
  store, err := sqlite.New("./data/deliveries.db")
  defer store.Close()
  rec, err := store.Get(ctx, "sub-001")

SEE ALSO:
  - factory:      Encodes/decodes the document column
  - api/handlers: Read-modify-write cycles using Version
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/earlybirddelivery/EARLYAPP-sub000/factory"
	"github.com/earlybirddelivery/EARLYAPP-sub000/subscription"
	_ "github.com/mattn/go-sqlite3"
)

// Store persists subscription documents in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Record is a stored subscription plus its version for optimistic updates.
type Record struct {
	Subscription *subscription.Subscription
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New opens (or creates) the database at dbPath. Use ":memory:" in tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS subscriptions (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		mode TEXT NOT NULL,
		status TEXT NOT NULL,
		document_json TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_subscriptions_customer
		ON subscriptions(customer_id);
	CREATE INDEX IF NOT EXISTS idx_subscriptions_status
		ON subscriptions(status);
	CREATE INDEX IF NOT EXISTS idx_subscriptions_mode
		ON subscriptions(mode);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// WRITES
// =============================================================================

// Save inserts a new subscription at version 1. The document must already
// have passed subscription.Validate.
func (s *Store) Save(ctx context.Context, sub *subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := factory.EncodeBytes(sub)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO subscriptions (id, customer_id, mode, status, document_json, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)`,
		sub.ID, sub.CustomerID, string(sub.Mode), string(sub.Status), string(doc), now, now)
	if err != nil {
		return fmt.Errorf("failed to save subscription %s: %w", sub.ID, err)
	}
	return nil
}

// Update overwrites the document if and only if the stored version still
// matches expectedVersion. On a stale version it returns
// subscription.ErrConcurrentModification; the caller should re-read, reapply
// its edit and retry.
func (s *Store) Update(ctx context.Context, sub *subscription.Subscription, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Terminal-status check against what is actually stored, not against
	// what the caller believes it read.
	var storedStatus string
	err := s.db.QueryRowContext(ctx,
		`SELECT status FROM subscriptions WHERE id = ?`, sub.ID).Scan(&storedStatus)
	if err == sql.ErrNoRows {
		return subscription.ErrSubscriptionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read subscription %s: %w", sub.ID, err)
	}
	if storedStatus == string(subscription.StatusStopped) && sub.Status != subscription.StatusStopped {
		return subscription.ErrSubscriptionStopped
	}

	doc, err := factory.EncodeBytes(sub)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET customer_id = ?, mode = ?, status = ?, document_json = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		sub.CustomerID, string(sub.Mode), string(sub.Status), string(doc), now, sub.ID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update subscription %s: %w", sub.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return subscription.ErrConcurrentModification
	}
	return nil
}

// =============================================================================
// READS
// =============================================================================

// Get loads one subscription by id.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT document_json, version, created_at, updated_at
		FROM subscriptions WHERE id = ?`, id)
	return scanRecord(id, row)
}

// List returns all subscriptions ordered by id.
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	return s.query(ctx, `
		SELECT id, document_json, version, created_at, updated_at
		FROM subscriptions ORDER BY id`)
}

// ListByCustomer returns a customer's subscriptions ordered by id.
func (s *Store) ListByCustomer(ctx context.Context, customerID string) ([]*Record, error) {
	return s.query(ctx, `
		SELECT id, document_json, version, created_at, updated_at
		FROM subscriptions WHERE customer_id = ? ORDER BY id`, customerID)
}

// ListByStatus returns all subscriptions with the given status.
func (s *Store) ListByStatus(ctx context.Context, status subscription.Status) ([]*Record, error) {
	return s.query(ctx, `
		SELECT id, document_json, version, created_at, updated_at
		FROM subscriptions WHERE status = ? ORDER BY id`, string(status))
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var (
			id, doc, createdAt, updatedAt string
			version                       int64
		)
		if err := rows.Scan(&id, &doc, &version, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		rec, err := buildRecord(id, doc, version, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(id string, row *sql.Row) (*Record, error) {
	var (
		doc, createdAt, updatedAt string
		version                   int64
	)
	err := row.Scan(&doc, &version, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, subscription.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription %s: %w", id, err)
	}
	return buildRecord(id, doc, version, createdAt, updatedAt)
}

func buildRecord(id, doc string, version int64, createdAt, updatedAt string) (*Record, error) {
	sub, err := factory.Parse([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("corrupt document for subscription %s: %w", id, err)
	}
	sub.ID = id

	rec := &Record{Subscription: sub, Version: version}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return rec, nil
}
