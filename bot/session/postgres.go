package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"grabbot/bot/locale"
	"grabbot/core/logger"
)

// Postgres persists sessions in the sessions table, so language choices and
// pending links survive restarts.
type Postgres struct {
	db       *sqlx.DB
	fallback string
}

// NewPostgres builds a Store on top of an established connection pool.
func NewPostgres(db *sqlx.DB, fallback string) *Postgres {
	if !locale.IsSupported(fallback) {
		fallback = locale.Default
	}
	return &Postgres{db: db, fallback: fallback}
}

// Language implements Store.
func (p *Postgres) Language(ctx context.Context, userID int64) (string, error) {
	var lang string
	err := p.db.GetContext(ctx, &lang,
		`SELECT language FROM sessions WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return p.fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("session: load language: %w", err)
	}
	return lang, nil
}

// SetLanguage implements Store.
func (p *Postgres) SetLanguage(ctx context.Context, userID int64, code string) error {
	if !locale.IsSupported(code) {
		return ErrUnknownLanguage
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO sessions (user_id, language)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET language = EXCLUDED.language, updated_at = now()`,
		userID, code)
	if err != nil {
		return fmt.Errorf("session: store language: %w", err)
	}
	logger.Debug(ctx, "service.sessions", "session.language",
		slog.Int64("user_id", userID),
		slog.String("lang", code),
	)
	return nil
}

// SetPendingURL implements Store. Inserting for a user without a session row
// records the fallback language alongside the link.
func (p *Postgres) SetPendingURL(ctx context.Context, userID int64, url string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO sessions (user_id, language, pending_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET pending_url = EXCLUDED.pending_url, updated_at = now()`,
		userID, p.fallback, url)
	if err != nil {
		return fmt.Errorf("session: store pending url: %w", err)
	}
	return nil
}

// PendingURL implements Store.
func (p *Postgres) PendingURL(ctx context.Context, userID int64) (string, error) {
	var url sql.NullString
	err := p.db.GetContext(ctx, &url,
		`SELECT pending_url FROM sessions WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoPendingURL
	}
	if err != nil {
		return "", fmt.Errorf("session: load pending url: %w", err)
	}
	if !url.Valid {
		return "", ErrNoPendingURL
	}
	return url.String, nil
}

// Count implements Store.
func (p *Postgres) Count(ctx context.Context) (int, error) {
	var n int
	if err := p.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM sessions`); err != nil {
		return 0, fmt.Errorf("session: count: %w", err)
	}
	return n, nil
}
