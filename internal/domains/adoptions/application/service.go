package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/ports"
	"github.com/Apurer/go-gin-adoption-server/internal/gateway"
)

// Service runs the adoption workflow. Every use case is a single gateway
// transaction; pet and adoption rows are read for update before they change.
type Service struct {
	gateway   gateway.Gateway
	publisher ports.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.publisher = publisher
		}
	}
}

// WithLogger sets where failed event deliveries are reported.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(gw gateway.Gateway, opts ...Option) *Service {
	s := &Service{gateway: gw, publisher: ports.NoopEventPublisher, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Apply opens a pending request and takes the pet off the market. A user
// gets one request per pet whatever its outcome.
func (s *Service) Apply(ctx context.Context, userID, petID int64) (*domain.Adoption, error) {
	now := s.now().UTC()
	adoption, err := domain.NewAdoption(userID, petID, now)
	if err != nil {
		return nil, mapError(err)
	}
	var created *domain.Adoption
	err = s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		if _, err := tx.Users().GetByID(ctx, userID); err != nil {
			return notFoundAs(err, domain.ErrUserNotFound)
		}
		pet, err := tx.Pets().GetForUpdate(ctx, petID)
		if err != nil {
			return notFoundAs(err, domain.ErrPetNotFound)
		}
		if _, err := tx.Adoptions().FindByUserAndPet(ctx, userID, petID); err == nil {
			return domain.ErrAlreadyApplied
		} else if !errors.Is(err, gateway.ErrNotFound) {
			return err
		}
		if !pet.Available {
			return domain.ErrPetUnavailable
		}
		created, err = tx.Adoptions().Create(ctx, adoption)
		if err != nil {
			return notFoundAs(err, domain.ErrPetNotFound)
		}
		return tx.Pets().SetAvailable(ctx, petID, false)
	})
	if err != nil {
		return nil, mapError(err)
	}
	s.publish(ctx, domain.AdoptionRequested{
		BaseEvent:  domain.BaseEvent{Timestamp: now},
		AdoptionID: created.ID,
		UserID:     created.UserID,
		PetID:      created.PetID,
	})
	return created, nil
}

// Approve grants a pending request. Requests in any other state are returned unchanged.
func (s *Service) Approve(ctx context.Context, adoptionID int64) (*domain.Adoption, error) {
	return s.decide(ctx, adoptionID, true)
}

// Reject declines a pending request and relists the pet. Requests in any
// other state are returned unchanged.
func (s *Service) Reject(ctx context.Context, adoptionID int64) (*domain.Adoption, error) {
	return s.decide(ctx, adoptionID, false)
}

func (s *Service) decide(ctx context.Context, adoptionID int64, approve bool) (*domain.Adoption, error) {
	if adoptionID <= 0 {
		return nil, mapError(domain.ErrAdoptionIDMissing)
	}
	var (
		adoption *domain.Adoption
		changed  bool
	)
	err := s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		var err error
		adoption, err = tx.Adoptions().GetForUpdate(ctx, adoptionID)
		if err != nil {
			return notFoundAs(err, domain.ErrAdoptionNotFound)
		}
		if approve {
			changed = adoption.Approve()
		} else {
			changed = adoption.Reject()
		}
		if !changed {
			return nil
		}
		if err := tx.Adoptions().UpdateStatus(ctx, adoption.ID, adoption.Status); err != nil {
			return err
		}
		// approval keeps the pet off the market; rejection relists it
		return notFoundAs(tx.Pets().SetAvailable(ctx, adoption.PetID, !approve), domain.ErrPetNotFound)
	})
	if err != nil {
		return nil, mapError(err)
	}
	if changed {
		base := domain.BaseEvent{Timestamp: s.now().UTC()}
		if approve {
			s.publish(ctx, domain.AdoptionApproved{BaseEvent: base, AdoptionID: adoption.ID, PetID: adoption.PetID})
		} else {
			s.publish(ctx, domain.AdoptionRejected{BaseEvent: base, AdoptionID: adoption.ID, PetID: adoption.PetID})
		}
	}
	return adoption, nil
}

// Cancel withdraws a request in any state. The pet stays unavailable.
func (s *Service) Cancel(ctx context.Context, adoptionID int64, actor ports.Actor) (*domain.Adoption, error) {
	if adoptionID <= 0 {
		return nil, mapError(domain.ErrAdoptionIDMissing)
	}
	var (
		adoption *domain.Adoption
		previous domain.Status
	)
	err := s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		var err error
		adoption, err = tx.Adoptions().GetForUpdate(ctx, adoptionID)
		if err != nil {
			return notFoundAs(err, domain.ErrAdoptionNotFound)
		}
		if !actor.Admin && actor.UserID != adoption.UserID {
			return domain.ErrNotApplicant
		}
		previous = adoption.Cancel()
		return tx.Adoptions().UpdateStatus(ctx, adoption.ID, adoption.Status)
	})
	if err != nil {
		return nil, mapError(err)
	}
	s.publish(ctx, domain.AdoptionCancelled{
		BaseEvent:      domain.BaseEvent{Timestamp: s.now().UTC()},
		AdoptionID:     adoption.ID,
		PetID:          adoption.PetID,
		PreviousStatus: previous,
	})
	return adoption, nil
}

func (s *Service) Get(ctx context.Context, adoptionID int64) (*domain.Adoption, error) {
	if adoptionID <= 0 {
		return nil, mapError(domain.ErrAdoptionIDMissing)
	}
	var adoption *domain.Adoption
	err := s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		var err error
		adoption, err = tx.Adoptions().GetByID(ctx, adoptionID)
		return notFoundAs(err, domain.ErrAdoptionNotFound)
	})
	if err != nil {
		return nil, mapError(err)
	}
	return adoption, nil
}

func (s *Service) List(ctx context.Context, filter domain.Filter) ([]*domain.Adoption, error) {
	var adoptions []*domain.Adoption
	err := s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		var err error
		adoptions, err = tx.Adoptions().List(ctx, filter)
		return err
	})
	return adoptions, mapError(err)
}

// publish is best effort; the state change has already committed.
func (s *Service) publish(ctx context.Context, event domain.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish adoption event",
			slog.String("event", event.EventName()),
			slog.String("error", err.Error()),
		)
	}
}

func notFoundAs(err, target error) error {
	if errors.Is(err, gateway.ErrNotFound) || errors.Is(err, gateway.ErrReference) {
		return target
	}
	return err
}

var _ ports.Service = (*Service)(nil)
