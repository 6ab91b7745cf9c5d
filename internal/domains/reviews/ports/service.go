package ports

import (
	"context"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/domain"
)

// SubmitInput carries a review form. Rating is nil when the field was omitted.
type SubmitInput struct {
	UserID  int64
	PetID   int64
	Rating  *int
	Comment string
}

// Service exposes review use cases to adapters.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Review, error)
	List(ctx context.Context, filter domain.Filter) ([]*domain.Review, error)
}
