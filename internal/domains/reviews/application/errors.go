package application

import (
	"errors"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/shared/failure"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidPetID),
		errors.Is(err, domain.ErrMissingRating):
		return failure.Wrap(failure.ErrValidation, err)
	case errors.Is(err, domain.ErrNotAdopted):
		return failure.Wrap(failure.ErrForbidden, err)
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrPetNotFound):
		return failure.Wrap(failure.ErrNotFound, err)
	}
	return err
}
