package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
)

// ErrSessionNotFound is returned for unknown or expired tokens.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore abstracts session/token persistence.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID int64) error
}

// NoopSessionStore accepts writes and never resolves a token.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(context.Context, domain.Session) error { return nil }
func (noopSessionStore) Get(context.Context, string) (*domain.Session, error) {
	return nil, ErrSessionNotFound
}
func (noopSessionStore) Delete(context.Context, string) error      { return nil }
func (noopSessionStore) DeleteByUser(context.Context, int64) error { return nil }
