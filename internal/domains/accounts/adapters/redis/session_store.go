// Package redis keeps login sessions in Redis so several API replicas share
// them. Each session lives under its own key with a TTL; a per-user set
// indexes the tokens so an account deletion can revoke them all. The index
// expires with the longest-lived session it holds.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/ports"
)

const (
	sessionKeyPrefix = "adoption:session:"
	userKeyPrefix    = "adoption:user-sessions:"
)

// SessionStore persists sessions in Redis.
type SessionStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

type sessionPayload struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func sessionKey(token string) string { return sessionKeyPrefix + token }

func userKey(userID int64) string { return userKeyPrefix + strconv.FormatInt(userID, 10) }

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	if session.Token == "" || session.Identity.UserID == 0 {
		return errors.New("token and user id are required")
	}
	ttl := time.Duration(0)
	if !session.ExpiresAt.IsZero() {
		ttl = session.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return nil
		}
	}
	payload, err := json.Marshal(sessionPayload{
		UserID:    session.Identity.UserID,
		Username:  session.Identity.Username,
		Role:      string(session.Identity.Role),
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(session.Token), payload, ttl)
		index := userKey(session.Identity.UserID)
		pipe.SAdd(ctx, index, session.Token)
		if ttl > 0 {
			// NX covers a fresh index, GT only ever extends an existing one.
			pipe.ExpireNX(ctx, index, ttl)
			pipe.ExpireGT(ctx, index, ttl)
		} else {
			pipe.Persist(ctx, index)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	if err := s.ensureClient(); err != nil {
		return nil, err
	}
	raw, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	var payload sessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &domain.Session{
		Token: token,
		Identity: domain.Identity{
			UserID:   payload.UserID,
			Username: payload.Username,
			Role:     domain.Role(payload.Role),
		},
		ExpiresAt: payload.ExpiresAt,
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	session, err := s.Get(ctx, token)
	if errors.Is(err, ports.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(token))
		pipe.SRem(ctx, userKey(session.Identity.UserID), token)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) DeleteByUser(ctx context.Context, userID int64) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	tokens, err := s.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("redis list user sessions: %w", err)
	}
	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, sessionKey(token))
	}
	keys = append(keys, userKey(userID))
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete user sessions: %w", err)
	}
	return nil
}

func (s *SessionStore) ensureClient() error {
	if s == nil || s.client == nil {
		return errors.New("redis session store not configured")
	}
	return nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
