package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
)

type sessionsRepo struct {
	db querier
}

const sessionColumns = `id, token_hash, user_id, font_family, font_size, flashes, remember, expires_at, created_at, updated_at`

func (r *sessionsRepo) GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error) {
	var (
		s       domain.Session
		userID  sql.NullString
		flashes string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE token_hash = ?`, tokenHash,
	).Scan(
		&s.ID,
		&s.TokenHash,
		&userID,
		&s.FontFamily,
		&s.FontSize,
		&flashes,
		&s.Remember,
		&s.ExpiresAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}

	if userID.Valid {
		s.UserID = userID.String
	}
	if err := json.Unmarshal([]byte(flashes), &s.Flashes); err != nil {
		return domain.Session{}, fmt.Errorf("decode session flashes: %w", err)
	}
	return s, nil
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	flashes, err := encodeFlashes(s.Flashes)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, token_hash, user_id, font_family, font_size, flashes, remember, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID,
		s.TokenHash,
		nullableID(s.UserID),
		s.FontFamily,
		s.FontSize,
		flashes,
		s.Remember,
		s.ExpiresAt.UTC(),
		s.CreatedAt.UTC(),
		s.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) UpdateSession(ctx context.Context, s domain.Session) error {
	flashes, err := encodeFlashes(s.Flashes)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions
		SET token_hash = ?, user_id = ?, font_family = ?, font_size = ?, flashes = ?, remember = ?, expires_at = ?, updated_at = ?
		WHERE id = ?`,
		s.TokenHash,
		nullableID(s.UserID),
		s.FontFamily,
		s.FontSize,
		flashes,
		s.Remember,
		s.ExpiresAt.UTC(),
		time.Now().UTC(),
		s.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

func (r *sessionsRepo) DeleteUserSessions(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, time.Now().UTC())
	return err
}

func encodeFlashes(flashes []domain.Flash) (string, error) {
	if len(flashes) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(flashes)
	if err != nil {
		return "", fmt.Errorf("encode session flashes: %w", err)
	}
	return string(b), nil
}

func nullableID(id string) sql.NullString {
	if id == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: id, Valid: true}
}
