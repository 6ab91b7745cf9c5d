package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidUserID = errors.New("user_id is required")
	ErrInvalidPetID  = errors.New("pet_id is required")
	ErrMissingRating = errors.New("rating is required")
	ErrNotAdopted    = errors.New("reviews require an approved adoption of this pet")
	ErrUserNotFound  = errors.New("user not found")
	ErrPetNotFound   = errors.New("pet not found")
)

// Review is feedback left by an adopter about a pet they adopted.
type Review struct {
	ID         int64
	UserID     int64
	PetID      int64
	Rating     int
	Comment    string
	ReviewDate time.Time
}

// NewReview checks that the required fields are present.
func NewReview(userID, petID int64, rating *int, comment string, now time.Time) (*Review, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	if petID <= 0 {
		return nil, ErrInvalidPetID
	}
	if rating == nil {
		return nil, ErrMissingRating
	}
	return &Review{
		UserID:     userID,
		PetID:      petID,
		Rating:     *rating,
		Comment:    strings.TrimSpace(comment),
		ReviewDate: now,
	}, nil
}

// Filter narrows review listings.
type Filter struct {
	UserID *int64
	PetID  *int64
}

// Matches reports whether r passes the filter.
func (f Filter) Matches(r *Review) bool {
	if f.UserID != nil && r.UserID != *f.UserID {
		return false
	}
	if f.PetID != nil && r.PetID != *f.PetID {
		return false
	}
	return true
}
