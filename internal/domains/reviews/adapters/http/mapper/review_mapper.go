package mapper

import (
	"time"

	reviewsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/domain"
	reviewsports "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/ports"
)

// ReviewForm is the form payload of POST /add_review. UserID is honoured for admins only.
type ReviewForm struct {
	UserID  *int64 `form:"user_id"`
	PetID   int64  `form:"pet_id"`
	Rating  *int   `form:"rating"`
	Comment string `form:"comment"`
}

// ReviewQuery holds the filters of GET /get_reviews.
type ReviewQuery struct {
	UserID *int64 `form:"user_id"`
	PetID  *int64 `form:"pet_id"`
}

// Review represents the transport-level review payload.
type Review struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	PetID      int64     `json:"pet_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	ReviewDate time.Time `json:"review_date"`
}

// ToSubmitInput converts the form for the given author.
func (f ReviewForm) ToSubmitInput(userID int64) reviewsports.SubmitInput {
	return reviewsports.SubmitInput{UserID: userID, PetID: f.PetID, Rating: f.Rating, Comment: f.Comment}
}

func (q ReviewQuery) ToFilter() reviewsdomain.Filter {
	return reviewsdomain.Filter{UserID: q.UserID, PetID: q.PetID}
}

// FromDomainReview converts a domain review into a transport representation.
func FromDomainReview(review *reviewsdomain.Review) Review {
	if review == nil {
		return Review{}
	}
	return Review{
		ID:         review.ID,
		UserID:     review.UserID,
		PetID:      review.PetID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		ReviewDate: review.ReviewDate,
	}
}

// FromDomainReviews converts a slice of domain reviews to transport representation.
func FromDomainReviews(reviews []*reviewsdomain.Review) []Review {
	result := make([]Review, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, FromDomainReview(review))
	}
	return result
}
