package errors

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Apurer/go-gin-adoption-server/internal/shared/failure"
)

// MapFailure translates the shared failure kinds into problem templates.
func MapFailure(err error) (ProblemDetail, bool) {
	var template ProblemDetail
	switch failure.Kind(err) {
	case failure.ErrValidation:
		template = ErrValidation
	case failure.ErrConflict:
		template = ErrConflict
	case failure.ErrInvalidState:
		template = ErrInvalidState
	case failure.ErrNotFound:
		template = ErrNotFound
	case failure.ErrUnauthorized:
		template = ErrUnauthorized
	case failure.ErrForbidden:
		template = ErrForbidden
	default:
		return ProblemDetail{}, false
	}
	return template.WithCause(err), true
}

// MapBindingErrors turns validator field errors raised by gin binding into a
// validation problem keyed by form field name.
func MapBindingErrors(err error) (ProblemDetail, bool) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ProblemDetail{}, false
	}
	fields := make(map[string]string, len(fieldErrs))
	names := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := strings.ToLower(fe.Field())
		fields[name] = describeTag(fe)
		names = append(names, name)
	}
	problem := NewValidationProblem(fields).
		WithDetail("invalid fields: " + strings.Join(names, ", "))
	problem.Cause = problem.Detail
	return problem, true
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

// NewAPIResponder returns the responder used by the HTTP layer, with binding
// and failure-kind mappers installed.
func NewAPIResponder(baseURI string) *ChainedResponder {
	return NewChainedResponder(baseURI, MapBindingErrors, MapFailure)
}
