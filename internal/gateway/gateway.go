// Package gateway defines the transactional persistence boundary shared by the
// catalog, account, adoption and review contexts. Every use case runs inside
// one WithinTx call; returning an error from the callback rolls back all
// writes made through the Tx.
package gateway

import (
	"context"
	"errors"

	accountsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	adoptionsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	catalogdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	reviewsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/domain"
)

var (
	// ErrNotFound is returned when a keyed lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReference is returned when a write points at a row that does not exist.
	ErrReference = errors.New("referenced record does not exist")
)

// Gateway opens transaction scopes.
type Gateway interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes the record stores bound to one transaction.
type Tx interface {
	Users() Users
	PetTypes() PetTypes
	Pets() Pets
	Adoptions() Adoptions
	Reviews() Reviews
}

// Users stores accounts. Emails are unique.
type Users interface {
	Create(ctx context.Context, user *accountsdomain.User) (*accountsdomain.User, error)
	GetByID(ctx context.Context, id int64) (*accountsdomain.User, error)
	GetByEmail(ctx context.Context, email string) (*accountsdomain.User, error)
	List(ctx context.Context) ([]*accountsdomain.User, error)
	// Delete removes the user with their adoptions and reviews; pets they
	// created keep existing with no creator.
	Delete(ctx context.Context, id int64) error
}

// PetTypes stores catalog categories. Names are unique.
type PetTypes interface {
	Create(ctx context.Context, petType *catalogdomain.PetType) (*catalogdomain.PetType, error)
	GetByID(ctx context.Context, id int64) (*catalogdomain.PetType, error)
	GetByName(ctx context.Context, name string) (*catalogdomain.PetType, error)
	List(ctx context.Context) ([]*catalogdomain.PetType, error)
	// Delete removes the type; pets of that type keep existing untyped.
	Delete(ctx context.Context, id int64) error
}

// Pets stores catalog entries.
type Pets interface {
	Create(ctx context.Context, pet *catalogdomain.Pet) (*catalogdomain.Pet, error)
	GetByID(ctx context.Context, id int64) (*catalogdomain.Pet, error)
	// GetForUpdate reads the pet and holds a row lock until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*catalogdomain.Pet, error)
	SetAvailable(ctx context.Context, id int64, available bool) error
	List(ctx context.Context, filter catalogdomain.PetFilter) ([]*catalogdomain.Pet, error)
	// Delete removes the pet with its adoptions and reviews.
	Delete(ctx context.Context, id int64) error
}

// Adoptions stores adoption requests.
type Adoptions interface {
	Create(ctx context.Context, adoption *adoptionsdomain.Adoption) (*adoptionsdomain.Adoption, error)
	GetByID(ctx context.Context, id int64) (*adoptionsdomain.Adoption, error)
	// GetForUpdate reads the adoption and holds a row lock until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*adoptionsdomain.Adoption, error)
	// FindByUserAndPet returns the oldest request for the pair in any status.
	FindByUserAndPet(ctx context.Context, userID, petID int64) (*adoptionsdomain.Adoption, error)
	// FindWithStatusForUpdate locks the oldest request for the pair in the
	// given status, compared case-insensitively.
	FindWithStatusForUpdate(ctx context.Context, userID, petID int64, status adoptionsdomain.Status) (*adoptionsdomain.Adoption, error)
	UpdateStatus(ctx context.Context, id int64, status adoptionsdomain.Status) error
	List(ctx context.Context, filter adoptionsdomain.Filter) ([]*adoptionsdomain.Adoption, error)
}

// Reviews stores pet reviews.
type Reviews interface {
	Create(ctx context.Context, review *reviewsdomain.Review) (*reviewsdomain.Review, error)
	List(ctx context.Context, filter reviewsdomain.Filter) ([]*reviewsdomain.Review, error)
}
