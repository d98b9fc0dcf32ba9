package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Veraticus/monetr-client/internal/common"
)

// SaveCookie persists a cookie by name. A cookie with a negative MaxAge deletes the stored one.
func (s *SQLiteStorage) SaveCookie(ctx context.Context, cookie *http.Cookie) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCookie(cookie); err != nil {
		return err
	}
	if cookie.MaxAge < 0 {
		return s.DeleteCookie(ctx, cookie.Name)
	}

	var expiresAt sql.NullTime
	switch {
	case cookie.MaxAge > 0:
		expiresAt = sql.NullTime{Time: time.Now().Add(time.Duration(cookie.MaxAge) * time.Second).UTC(), Valid: true}
	case !cookie.Expires.IsZero():
		expiresAt = sql.NullTime{Time: cookie.Expires.UTC(), Valid: true}
	}

	path := cookie.Path
	if path == "" {
		path = "/"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cookies (name, value, domain, path, expires_at, secure, http_only, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			domain = excluded.domain,
			path = excluded.path,
			expires_at = excluded.expires_at,
			secure = excluded.secure,
			http_only = excluded.http_only,
			updated_at = CURRENT_TIMESTAMP
	`, cookie.Name, cookie.Value, cookie.Domain, path, expiresAt, cookie.Secure, cookie.HttpOnly)
	if err != nil {
		return fmt.Errorf("failed to save cookie: %w", err)
	}
	return nil
}

// LoadCookie returns the stored cookie with the given name. Missing and expired cookies return
// common.ErrNotFound; an expired cookie is removed.
func (s *SQLiteStorage) LoadCookie(ctx context.Context, name string) (*http.Cookie, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	var (
		cookie    http.Cookie
		expiresAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT name, value, domain, path, expires_at, secure, http_only
		FROM cookies WHERE name = ?
	`, name).Scan(&cookie.Name, &cookie.Value, &cookie.Domain, &cookie.Path, &expiresAt, &cookie.Secure, &cookie.HttpOnly)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cookie %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cookie: %w", err)
	}

	if expiresAt.Valid {
		if !expiresAt.Time.After(time.Now()) {
			if delErr := s.DeleteCookie(ctx, name); delErr != nil {
				return nil, delErr
			}
			return nil, fmt.Errorf("cookie %q expired: %w", name, common.ErrNotFound)
		}
		cookie.Expires = expiresAt.Time
	}
	return &cookie, nil
}

// DeleteCookie removes the stored cookie with the given name.
func (s *SQLiteStorage) DeleteCookie(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM cookies WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete cookie: %w", err)
	}
	return nil
}
