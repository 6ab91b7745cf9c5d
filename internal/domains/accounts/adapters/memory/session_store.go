package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/ports"
)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	sessions sync.Map
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.sessions.Store(session.Token, session)
	return nil
}

func (s *SessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	v, ok := s.sessions.Load(token)
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	session := v.(domain.Session)
	return &session, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.sessions.Delete(token)
	return nil
}

func (s *SessionStore) DeleteByUser(_ context.Context, userID int64) error {
	s.sessions.Range(func(key, value any) bool {
		if value.(domain.Session).Identity.UserID == userID {
			s.sessions.Delete(key)
		}
		return true
	})
	return nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
