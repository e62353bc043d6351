package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Privacy-conscious visitor record; the client IP is stored hashed.
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageRecord is the log entry kept for every contact submission.
type MessageRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Provider   string    `json:"provider"`
	ProviderID string    `json:"provider_id,omitempty"`
	Delivered  bool      `json:"delivered"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type AdminStats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TotalMessages    int64           `json:"total_messages"`
	FailedMessages   int64           `json:"failed_messages"`
	RecentMessages   []MessageRecord `json:"recent_messages"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
}

type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	timestamp DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors (timestamp);

CREATE TABLE IF NOT EXISTS contact_messages (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	recipient TEXT NOT NULL,
	subject TEXT,
	provider TEXT NOT NULL,
	provider_id TEXT,
	delivered INTEGER NOT NULL DEFAULT 0,
	error TEXT,
	created_at DATETIME NOT NULL
);
`

// OpenStore opens (or creates) the SQLite database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps :memory: databases shared and serializes writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) RecordVisit(ctx context.Context, hashedIP, userAgent, path string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashedIP, userAgent, path, at.UTC())
	return err
}

func (s *Store) RecordMessage(ctx context.Context, m MessageRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_messages
			(id, name, email, recipient, subject, provider, provider_id, delivered, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Name, m.Email, m.Recipient, m.Subject, m.Provider, m.ProviderID, m.Delivered, m.Error, m.CreatedAt.UTC())
	return err
}

// CleanupVisitors removes visitor rows older than before.
func (s *Store) CleanupVisitors(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, before.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Stats collects the admin dashboard numbers as of now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*AdminStats, error) {
	stats := &AdminStats{}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{today}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.AddDate(0, 0, -7)}},
		{&stats.TotalMessages, `SELECT COUNT(*) FROM contact_messages`, nil},
		{&stats.FailedMessages, `SELECT COUNT(*) FROM contact_messages WHERE delivered = 0`, nil},
	}
	for _, q := range counts {
		if err := s.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dst); err != nil {
			return nil, err
		}
	}

	var err error
	if stats.RecentMessages, err = s.RecentMessages(ctx, 10); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]VisitorMetric, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return nil, err
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

func (s *Store) RecentMessages(ctx context.Context, limit int) ([]MessageRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, recipient, COALESCE(subject, ''), provider,
			COALESCE(provider_id, ''), delivered, COALESCE(error, ''), created_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []MessageRecord
	for rows.Next() {
		var m MessageRecord
		err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Recipient, &m.Subject, &m.Provider,
			&m.ProviderID, &m.Delivered, &m.Error, &m.CreatedAt)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
