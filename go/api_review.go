package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reviewsmapper "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/adapters/http/mapper"
	reviewsports "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/ports"
)

// ReviewAPI serves pet reviews.
type ReviewAPI struct {
	service reviewsports.Service
}

// NewReviewAPI wires dependencies.
func NewReviewAPI(service reviewsports.Service) ReviewAPI {
	return ReviewAPI{service: service}
}

// Post /add_review
func (api *ReviewAPI) AddReview(c *gin.Context) {
	var form reviewsmapper.ReviewForm
	if !bind(c, "Error adding review", &form) {
		return
	}
	identity, _ := CurrentIdentity(c)
	userID, ok := actingUserID(c, identity, form.UserID, "Error adding review")
	if !ok {
		return
	}
	review, err := api.service.Submit(c.Request.Context(), form.ToSubmitInput(userID))
	if err != nil {
		respondError(c, "Error adding review", err)
		return
	}
	respondCreated(c, "Review submitted successfully.", review.ID)
}

// Get /get_reviews
func (api *ReviewAPI) GetReviews(c *gin.Context) {
	var query reviewsmapper.ReviewQuery
	if !bind(c, "Error fetching reviews", &query) {
		return
	}
	reviews, err := api.service.List(c.Request.Context(), query.ToFilter())
	if err != nil {
		respondError(c, "Error fetching reviews", err)
		return
	}
	c.JSON(http.StatusOK, reviewsmapper.FromDomainReviews(reviews))
}
