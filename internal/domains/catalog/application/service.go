package application

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-adoption-server/internal/gateway"
)

// Service exposes catalog use cases.
type Service struct {
	gateway gateway.Gateway
	images  ports.ImageStore
	now     func() time.Time
}

type Option func(*Service)

// WithImageStore enables picture uploads on AddPet.
func WithImageStore(images ports.ImageStore) Option {
	return func(s *Service) { s.images = images }
}

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

// AddPetType rejects names that already exist after trimming. Matching is case-sensitive.
func (s *Service) AddPetType(ctx context.Context, name, description string) (*domain.PetType, error) {
	petType, err := domain.NewPetType(name, description)
	if err != nil {
		return nil, mapError(err)
	}
	var created *domain.PetType
	err = s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		if _, err := tx.PetTypes().GetByName(ctx, petType.Name); err == nil {
			return domain.ErrDuplicateType
		} else if !errors.Is(err, gateway.ErrNotFound) {
			return err
		}
		var err error
		created, err = tx.PetTypes().Create(ctx, petType)
		if errors.Is(err, gateway.ErrDuplicate) {
			return domain.ErrDuplicateType
		}
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (s *Service) ListPetTypes(ctx context.Context) ([]*domain.PetType, error) {
	var types []*domain.PetType
	err := s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		var err error
		types, err = tx.PetTypes().List(ctx)
		return err
	})
	return types, mapError(err)
}

// DeletePetType keeps the pets of that type and clears their type reference.
func (s *Service) DeletePetType(ctx context.Context, id int64) error {
	err := s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		return tx.PetTypes().Delete(ctx, id)
	})
	if errors.Is(err, gateway.ErrNotFound) {
		err = domain.ErrPetTypeNotFound
	}
	return mapError(err)
}

// AddPet lists a new available pet. The image, when given, is stored first
// and removed again if the pet cannot be saved.
func (s *Service) AddPet(ctx context.Context, input ports.AddPetInput) (*domain.Pet, error) {
	pet, err := domain.NewPet(input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	if err := pet.SetAge(input.Age); err != nil {
		return nil, mapError(err)
	}
	if err := pet.Describe(input.Breed, input.Gender); err != nil {
		return nil, mapError(err)
	}
	pet.Description = input.Description
	pet.PetTypeID = input.PetTypeID
	pet.CreatedBy = input.CreatedBy
	pet.CreatedAt = s.now().UTC()

	if input.Image != nil {
		if s.images == nil {
			return nil, ErrNoImageStore
		}
		location, err := s.images.Save(ctx, input.Image.Filename, input.Image.Content)
		if err != nil {
			return nil, err
		}
		pet.ImageURL = location
	}

	var created *domain.Pet
	err = s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		if pet.PetTypeID != nil {
			if _, err := tx.PetTypes().GetByID(ctx, *pet.PetTypeID); err != nil {
				if errors.Is(err, gateway.ErrNotFound) {
					return domain.ErrPetTypeNotFound
				}
				return err
			}
		}
		var err error
		created, err = tx.Pets().Create(ctx, pet)
		if errors.Is(err, gateway.ErrReference) {
			return domain.ErrCreatorNotFound
		}
		return err
	})
	if err != nil {
		if pet.ImageURL != "" {
			_ = s.images.Delete(ctx, pet.ImageURL)
		}
		return nil, mapError(err)
	}
	return created, nil
}

func (s *Service) ListPets(ctx context.Context, filter domain.PetFilter) ([]*domain.Pet, error) {
	var pets []*domain.Pet
	err := s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		var err error
		pets, err = tx.Pets().List(ctx, filter)
		return err
	})
	return pets, mapError(err)
}

func (s *Service) GetPet(ctx context.Context, id int64) (*domain.Pet, error) {
	var pet *domain.Pet
	err := s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		var err error
		pet, err = tx.Pets().GetByID(ctx, id)
		return err
	})
	if errors.Is(err, gateway.ErrNotFound) {
		return nil, mapError(domain.ErrPetNotFound)
	}
	if err != nil {
		return nil, mapError(err)
	}
	return pet, nil
}

// DeletePet removes the pet with its adoptions and reviews, then its image.
func (s *Service) DeletePet(ctx context.Context, id int64) error {
	var imageURL string
	err := s.gateway.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		pet, err := tx.Pets().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		imageURL = pet.ImageURL
		return tx.Pets().Delete(ctx, id)
	})
	if errors.Is(err, gateway.ErrNotFound) {
		return mapError(domain.ErrPetNotFound)
	}
	if err != nil {
		return mapError(err)
	}
	if imageURL != "" && s.images != nil {
		_ = s.images.Delete(ctx, imageURL)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
