package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/go-gin-adoption-server/internal/shared/errors"
)

var responder = apierrors.NewAPIResponder("")

// respondError resolves err to a problem document carrying the operation summary.
func respondError(c *gin.Context, message string, err error) {
	if err == nil {
		return
	}
	responder.RespondWithMessage(c, message, err)
}

// respondProblem writes a fixed problem, used by middleware that has no error to map.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

func respondMessage(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func respondCreated(c *gin.Context, message string, id int64) {
	respondMessage(c, http.StatusCreated, message, gin.H{"id": id})
}
