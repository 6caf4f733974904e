package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// postgresStorage хранит значения в таблице client_storage, разделяя их по профилю терминала.
type postgresStorage struct {
	db      *sql.DB
	profile string
}

var _ Storage = (*postgresStorage)(nil)

func NewPostgresStorage(db *sql.DB, profile string) *postgresStorage {
	return &postgresStorage{db: db, profile: profile}
}

func (r *postgresStorage) Get(ctx context.Context, key string) (string, error) {
	var value string
	row := r.db.QueryRowContext(ctx, "SELECT value FROM client_storage WHERE profile = $1 AND key = $2", r.profile, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func (r *postgresStorage) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO client_storage (profile, key, value, updated_at)
	          VALUES ($1, $2, $3, NOW())
	          ON CONFLICT (profile, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, r.profile, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (r *postgresStorage) Remove(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM client_storage WHERE profile = $1 AND key = $2", r.profile, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
