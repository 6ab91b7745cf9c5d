package ports

import (
	"context"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
)

// RegisterInput carries the raw registration form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Service exposes account use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
	Logout(ctx context.Context, token string) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	DeleteUser(ctx context.Context, actor domain.Identity, id int64) error
}
