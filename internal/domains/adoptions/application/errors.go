package application

import (
	"errors"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/shared/failure"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidPetID),
		errors.Is(err, domain.ErrAdoptionIDMissing),
		errors.Is(err, domain.ErrInvalidStatus):
		return failure.Wrap(failure.ErrValidation, err)
	case errors.Is(err, domain.ErrAlreadyApplied):
		return failure.Wrap(failure.ErrConflict, err)
	case errors.Is(err, domain.ErrPetUnavailable):
		return failure.Wrap(failure.ErrInvalidState, err)
	case errors.Is(err, domain.ErrAdoptionNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPetNotFound):
		return failure.Wrap(failure.ErrNotFound, err)
	case errors.Is(err, domain.ErrNotApplicant):
		return failure.Wrap(failure.ErrForbidden, err)
	}
	return err
}
