package domain

import (
	"errors"
	"strings"
	"time"
)

// Status is the lifecycle state of an adoption request.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

var (
	ErrInvalidStatus     = errors.New("adoption status is invalid")
	ErrInvalidUserID     = errors.New("user_id is required")
	ErrInvalidPetID      = errors.New("pet_id is required")
	ErrAdoptionNotFound  = errors.New("adoption not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrPetNotFound       = errors.New("pet not found")
	ErrAlreadyApplied    = errors.New("an adoption request for this pet already exists")
	ErrPetUnavailable    = errors.New("pet is not available for adoption")
	ErrNotApplicant      = errors.New("only the applicant or an admin can cancel this adoption")
	ErrAdoptionIDMissing = errors.New("adoption_id is required")
)

// ParseStatus accepts any casing of the four known states and returns the
// canonical form.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return StatusPending, nil
	case "approved":
		return StatusApproved, nil
	case "rejected":
		return StatusRejected, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Is compares statuses case-insensitively.
func (s Status) Is(other Status) bool {
	return strings.EqualFold(string(s), string(other))
}

// Adoption is a user's request to adopt a pet.
type Adoption struct {
	ID           int64
	UserID       int64
	PetID        int64
	Status       Status
	AdoptionDate time.Time
}

// NewAdoption opens a pending request.
func NewAdoption(userID, petID int64, now time.Time) (*Adoption, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	if petID <= 0 {
		return nil, ErrInvalidPetID
	}
	return &Adoption{UserID: userID, PetID: petID, Status: StatusPending, AdoptionDate: now}, nil
}

// IsPending reports whether a decision is still outstanding.
func (a *Adoption) IsPending() bool {
	return a.Status.Is(StatusPending)
}

// IsApproved reports whether the request was granted.
func (a *Adoption) IsApproved() bool {
	return a.Status.Is(StatusApproved)
}

// Approve moves a pending request to Approved. It reports false and leaves the
// request untouched in any other state.
func (a *Adoption) Approve() bool {
	if !a.IsPending() {
		return false
	}
	a.Status = StatusApproved
	return true
}

// Reject moves a pending request to Rejected. It reports false and leaves the
// request untouched in any other state.
func (a *Adoption) Reject() bool {
	if !a.IsPending() {
		return false
	}
	a.Status = StatusRejected
	return true
}

// Cancel marks the request Cancelled from any state and returns the previous one.
// Pet availability is not restored here or by callers.
func (a *Adoption) Cancel() Status {
	previous := a.Status
	a.Status = StatusCancelled
	return previous
}

// Filter narrows adoption listings.
type Filter struct {
	UserID *int64
	PetID  *int64
	Status *Status
}

// Matches reports whether a passes the filter.
func (f Filter) Matches(a *Adoption) bool {
	if f.UserID != nil && a.UserID != *f.UserID {
		return false
	}
	if f.PetID != nil && a.PetID != *f.PetID {
		return false
	}
	if f.Status != nil && !a.Status.Is(*f.Status) {
		return false
	}
	return true
}
