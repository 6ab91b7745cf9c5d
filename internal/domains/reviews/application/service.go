package application

import (
	"context"
	"errors"
	"time"

	adoptionsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/ports"
	"github.com/Apurer/go-gin-adoption-server/internal/gateway"
)

// Service gates reviews on a completed adoption.
type Service struct {
	gateway gateway.Gateway
	now     func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(gw gateway.Gateway, opts ...Option) *Service {
	s := &Service{gateway: gw, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Submit stores a review when the user holds an Approved adoption of the pet.
// A user may review the same pet more than once.
func (s *Service) Submit(ctx context.Context, input ports.SubmitInput) (*domain.Review, error) {
	review, err := domain.NewReview(input.UserID, input.PetID, input.Rating, input.Comment, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	var created *domain.Review
	err = s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		// The lock keeps a concurrent cancel from landing before the insert.
		_, err := tx.Adoptions().FindWithStatusForUpdate(ctx, review.UserID, review.PetID, adoptionsdomain.StatusApproved)
		if errors.Is(err, gateway.ErrNotFound) {
			return domain.ErrNotAdopted
		}
		if err != nil {
			return err
		}
		created, err = tx.Reviews().Create(ctx, review)
		if errors.Is(err, gateway.ErrReference) {
			return domain.ErrPetNotFound
		}
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (s *Service) List(ctx context.Context, filter domain.Filter) ([]*domain.Review, error) {
	var reviews []*domain.Review
	err := s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		var err error
		reviews, err = tx.Reviews().List(ctx, filter)
		return err
	})
	return reviews, mapError(err)
}

var _ ports.Service = (*Service)(nil)
