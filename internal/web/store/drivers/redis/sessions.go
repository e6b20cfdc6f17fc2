// Package redis implements the session repository on Redis. The main
// store stays on SQLite; this backend exists for deployments that want
// session state off the database (TTL-based expiry comes for free).
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
	"github.com/bluebirdlabs/lyrictype/internal/web/store"

	"github.com/redis/go-redis/v9"
)

// Sessions implements store.Sessions using Redis. Each session is stored
// three ways: token fingerprint -> JSON record, session id -> current
// fingerprint (so updates can rotate tokens), and a per-user set of
// session ids (so account deletion can sweep every device).
type Sessions struct {
	client *redis.Client
	prefix string
}

var _ store.Sessions = (*Sessions)(nil)

func NewSessions(client *redis.Client, prefix string) *Sessions {
	return &Sessions{client: client, prefix: prefix}
}

func (r *Sessions) tokenKey(hash string) string { return fmt.Sprintf("%s:tok:%s", r.prefix, hash) }
func (r *Sessions) idKey(id string) string      { return fmt.Sprintf("%s:id:%s", r.prefix, id) }
func (r *Sessions) userKey(userID string) string {
	return fmt.Sprintf("%s:user:%s", r.prefix, userID)
}

func (r *Sessions) GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error) {
	data, err := r.client.Get(ctx, r.tokenKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, store.ErrNotFound
		}
		return domain.Session{}, err
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return s, nil
}

func (r *Sessions) CreateSession(ctx context.Context, s domain.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	if err := r.client.Set(ctx, r.tokenKey(s.TokenHash), data, ttl).Err(); err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.idKey(s.ID), s.TokenHash, ttl).Err(); err != nil {
		return err
	}
	if s.UserID != "" {
		if err := r.client.SAdd(ctx, r.userKey(s.UserID), s.ID).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Sessions) UpdateSession(ctx context.Context, s domain.Session) error {
	oldHash, err := r.client.Get(ctx, r.idKey(s.ID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return store.ErrNotFound
		}
		return err
	}

	// Drop the previous user binding if it changed (logout, deletion).
	old, err := r.GetSessionByTokenHash(ctx, oldHash)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if err == nil && old.UserID != "" && old.UserID != s.UserID {
		if err := r.client.SRem(ctx, r.userKey(old.UserID), s.ID).Err(); err != nil {
			return err
		}
	}

	// The token fingerprint is part of the key, so a rotation moves the record.
	if oldHash != s.TokenHash {
		if err := r.client.Del(ctx, r.tokenKey(oldHash)).Err(); err != nil {
			return err
		}
	}

	return r.CreateSession(ctx, s)
}

func (r *Sessions) DeleteSession(ctx context.Context, id string) error {
	hash, err := r.client.Get(ctx, r.idKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil // already gone
		}
		return err
	}

	s, err := r.GetSessionByTokenHash(ctx, hash)
	if err == nil && s.UserID != "" {
		if err := r.client.SRem(ctx, r.userKey(s.UserID), id).Err(); err != nil {
			return err
		}
	}

	if err := r.client.Del(ctx, r.tokenKey(hash)).Err(); err != nil {
		return err
	}
	return r.client.Del(ctx, r.idKey(id)).Err()
}

func (r *Sessions) DeleteUserSessions(ctx context.Context, userID string) error {
	ids, err := r.client.SMembers(ctx, r.userKey(userID)).Result()
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := r.DeleteSession(ctx, id); err != nil {
			return err
		}
	}

	return r.client.Del(ctx, r.userKey(userID)).Err()
}

// DeleteExpiredSessions is a no-op; Redis TTLs expire the keys.
func (r *Sessions) DeleteExpiredSessions(ctx context.Context) error {
	return nil
}
