package ports

import (
	"context"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
)

// Actor is the caller of a use case that checks ownership.
type Actor struct {
	UserID int64
	Admin  bool
}

// Service exposes adoption workflow use cases to adapters.
type Service interface {
	Apply(ctx context.Context, userID, petID int64) (*domain.Adoption, error)
	Approve(ctx context.Context, adoptionID int64) (*domain.Adoption, error)
	Reject(ctx context.Context, adoptionID int64) (*domain.Adoption, error)
	Cancel(ctx context.Context, adoptionID int64, actor Actor) (*domain.Adoption, error)
	Get(ctx context.Context, adoptionID int64) (*domain.Adoption, error)
	List(ctx context.Context, filter domain.Filter) ([]*domain.Adoption, error)
}
