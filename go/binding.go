package adoptionserver

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/Apurer/go-gin-adoption-server/internal/shared/errors"
)

// bind decodes form or query fields into obj and answers 400 when they are
// missing or malformed.
func bind(c *gin.Context, message string, obj any) bool {
	err := c.ShouldBind(obj)
	if err == nil {
		return true
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		respondError(c, message, err)
		return false
	}
	respondProblem(c, apierrors.ErrBadRequest.WithCause(err).WithMessage(message))
	return false
}

func parseIDParam(c *gin.Context, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(name+" must be a positive integer").WithMessage(message))
		return 0, false
	}
	return id, true
}
