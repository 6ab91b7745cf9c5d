package application

import (
	"errors"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/shared/failure"
)

// ErrNoImageStore is returned when an upload arrives but no image store is wired.
var ErrNoImageStore = errors.New("image uploads are not configured")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrNameTooLong),
		errors.Is(err, domain.ErrEmptyTypeName),
		errors.Is(err, domain.ErrTypeNameTooLong),
		errors.Is(err, domain.ErrBreedTooLong),
		errors.Is(err, domain.ErrGenderTooLong),
		errors.Is(err, domain.ErrNegativeAge):
		return failure.Wrap(failure.ErrValidation, err)
	case errors.Is(err, domain.ErrDuplicateType):
		return failure.Wrap(failure.ErrConflict, err)
	case errors.Is(err, domain.ErrPetNotFound),
		errors.Is(err, domain.ErrPetTypeNotFound),
		errors.Is(err, domain.ErrCreatorNotFound):
		return failure.Wrap(failure.ErrNotFound, err)
	}
	return err
}
