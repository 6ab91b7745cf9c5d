package domain

import "time"

// Event is the base interface for adoption domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AdoptionRequested is raised when a user applies for a pet.
type AdoptionRequested struct {
	BaseEvent
	AdoptionID int64
	UserID     int64
	PetID      int64
}

// EventName returns the event type identifier.
func (e AdoptionRequested) EventName() string {
	return "adoptions.adoption.requested"
}

// AdoptionApproved is raised when a pending request is granted.
type AdoptionApproved struct {
	BaseEvent
	AdoptionID int64
	PetID      int64
}

// EventName returns the event type identifier.
func (e AdoptionApproved) EventName() string {
	return "adoptions.adoption.approved"
}

// AdoptionRejected is raised when a pending request is declined and the pet relisted.
type AdoptionRejected struct {
	BaseEvent
	AdoptionID int64
	PetID      int64
}

// EventName returns the event type identifier.
func (e AdoptionRejected) EventName() string {
	return "adoptions.adoption.rejected"
}

// AdoptionCancelled is raised when a request is withdrawn.
type AdoptionCancelled struct {
	BaseEvent
	AdoptionID     int64
	PetID          int64
	PreviousStatus Status
}

// EventName returns the event type identifier.
func (e AdoptionCancelled) EventName() string {
	return "adoptions.adoption.cancelled"
}
