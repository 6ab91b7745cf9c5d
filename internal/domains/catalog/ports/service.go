package ports

import (
	"context"
	"io"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
)

// Image is an uploaded picture awaiting storage.
type Image struct {
	Filename string
	Content  io.Reader
}

// AddPetInput carries the fields of a new catalog entry.
type AddPetInput struct {
	Name        string
	Breed       string
	Age         *int
	Gender      string
	PetTypeID   *int64
	Description string
	CreatedBy   *int64
	Image       *Image
}

// Service exposes catalog use cases to adapters.
type Service interface {
	AddPetType(ctx context.Context, name, description string) (*domain.PetType, error)
	ListPetTypes(ctx context.Context) ([]*domain.PetType, error)
	DeletePetType(ctx context.Context, id int64) error
	AddPet(ctx context.Context, input AddPetInput) (*domain.Pet, error)
	ListPets(ctx context.Context, filter domain.PetFilter) ([]*domain.Pet, error)
	GetPet(ctx context.Context, id int64) (*domain.Pet, error)
	DeletePet(ctx context.Context, id int64) error
}
