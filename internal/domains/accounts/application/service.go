package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/ports"
	"github.com/Apurer/go-gin-adoption-server/internal/gateway"
)

// DefaultSessionTTL applies when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

// Service exposes account use cases.
type Service struct {
	gateway    gateway.Gateway
	sessions   ports.SessionStore
	sessionTTL time.Duration
	hashCost   int
	now        func() time.Time
	newToken   func() string
}

type Option func(*Service)

// WithSessionTTL sets how long a login stays valid.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithHashCost sets the bcrypt cost used for new passwords.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithTokenGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newToken = gen
		}
	}
}

func NewService(gw gateway.Gateway, sessions ports.SessionStore, opts ...Option) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	s := &Service{
		gateway:    gw,
		sessions:   sessions,
		sessionTTL: DefaultSessionTTL,
		now:        time.Now,
		newToken:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, mapError(err)
	}
	user, err := domain.NewUser(input.Username, input.Email, role)
	if err != nil {
		return nil, mapError(err)
	}
	if err := user.SetPassword(input.Password, s.hashCost); err != nil {
		return nil, mapError(err)
	}
	user.CreatedAt = s.now().UTC()

	var created *domain.User
	err = s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		if _, err := tx.Users().GetByEmail(ctx, user.Email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, gateway.ErrNotFound) {
			return err
		}
		var err error
		created, err = tx.Users().Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, mapError(ErrInvalidCredentials)
	}
	var user *domain.User
	err := s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		var err error
		user, err = tx.Users().GetByEmail(ctx, email)
		return err
	})
	if errors.Is(err, gateway.ErrNotFound) {
		return nil, mapError(ErrInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, mapError(ErrInvalidCredentials)
	}
	session := domain.Session{
		Token:     s.newToken(),
		Identity:  user.Identity(),
		ExpiresAt: s.now().Add(s.sessionTTL).UTC(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Identity{}, mapError(ports.ErrSessionNotFound)
	}
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return domain.Identity{}, mapError(err)
	}
	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, token)
		return domain.Identity{}, mapError(ports.ErrSessionNotFound)
	}
	return session.Identity, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	err := s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		var err error
		users, err = tx.Users().List(ctx)
		return err
	})
	return users, mapError(err)
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var user *domain.User
	err := s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		var err error
		user, err = tx.Users().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

// DeleteUser removes the account together with its adoptions and reviews.
// Pets the user created stay in the catalog without a creator.
func (s *Service) DeleteUser(ctx context.Context, actor domain.Identity, id int64) error {
	if !actor.IsAdmin() {
		return mapError(ErrNotAdmin)
	}
	if actor.UserID == id {
		return mapError(ErrSelfDelete)
	}
	err := s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		return mapError(err)
	}
	_ = s.sessions.DeleteByUser(ctx, id)
	return nil
}

var _ ports.Service = (*Service)(nil)
