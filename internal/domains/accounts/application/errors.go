package application

import (
	"errors"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/ports"
	"github.com/Apurer/go-gin-adoption-server/internal/gateway"
	"github.com/Apurer/go-gin-adoption-server/internal/shared/failure"
)

var (
	// ErrEmailTaken is returned when registering an address that already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned for unknown user ids.
	ErrUserNotFound = errors.New("user not found")
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("cannot delete the signed-in account")
	// ErrNotAdmin is returned when a non-admin calls an admin-only use case.
	ErrNotAdmin = errors.New("admin role required")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrEmptyUsername),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidRole):
		return failure.Wrap(failure.ErrValidation, err)
	case errors.Is(err, ErrEmailTaken):
		return failure.Wrap(failure.ErrConflict, err)
	case errors.Is(err, gateway.ErrDuplicate):
		return failure.Wrap(failure.ErrConflict, ErrEmailTaken)
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ports.ErrSessionNotFound):
		return failure.Wrap(failure.ErrUnauthorized, err)
	case errors.Is(err, ErrUserNotFound):
		return failure.Wrap(failure.ErrNotFound, err)
	case errors.Is(err, gateway.ErrNotFound):
		return failure.Wrap(failure.ErrNotFound, ErrUserNotFound)
	case errors.Is(err, ErrSelfDelete), errors.Is(err, ErrNotAdmin):
		return failure.Wrap(failure.ErrForbidden, err)
	}
	return err
}
