package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when no record exists for a key.
var ErrNotFound = errors.New("not found")

// ContentRepo is a key/value store of published content documents.
type ContentRepo interface {
	// Get returns the body stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores body under key, replacing any existing body.
	Put(ctx context.Context, key string, body []byte) error

	// Delete removes key. Deleting a missing key returns ErrNotFound.
	Delete(ctx context.Context, key string) error

	// Keys lists stored keys starting with prefix, in key order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// contentRepo implements ContentRepo with plain SQL.
type contentRepo struct {
	db     *sql.DB
	driver Driver
}

func (r *contentRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var body string
	err := r.db.QueryRowContext(ctx,
		r.rebind(`SELECT body FROM content WHERE key = ?`), key,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query content %q: %w", key, err)
	}
	return []byte(body), nil
}

func (r *contentRepo) Put(ctx context.Context, key string, body []byte) error {
	_, err := r.db.ExecContext(ctx, r.rebind(
		`INSERT INTO content (key, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`),
		key, string(body), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save content %q: %w", key, err)
	}
	return nil
}

func (r *contentRepo) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM content WHERE key = ?`), key)
	if err != nil {
		return fmt.Errorf("delete content %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete content %q: %w", key, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *contentRepo) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM content ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("query content keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan content key: %w", err)
		}
		// Keys are full of '_' which LIKE treats as a wildcard, so filter here.
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content keys: %w", err)
	}
	return keys, nil
}

// rebind rewrites '?' placeholders to '$n' for Postgres.
func (r *contentRepo) rebind(query string) string {
	if r.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
