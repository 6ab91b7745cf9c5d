package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	rating := 5
	now := time.Now()
	r, err := NewReview(1, 2, &rating, "  lovely dog ", now)
	require.NoError(t, err)
	require.Equal(t, 5, r.Rating)
	require.Equal(t, "lovely dog", r.Comment)
	require.Equal(t, now, r.ReviewDate)
}

func TestNewReviewPresenceChecks(t *testing.T) {
	rating := 4
	_, err := NewReview(0, 2, &rating, "", time.Now())
	require.ErrorIs(t, err, ErrInvalidUserID)
	_, err = NewReview(1, 0, &rating, "", time.Now())
	require.ErrorIs(t, err, ErrInvalidPetID)
	_, err = NewReview(1, 2, nil, "", time.Now())
	require.ErrorIs(t, err, ErrMissingRating)
}
