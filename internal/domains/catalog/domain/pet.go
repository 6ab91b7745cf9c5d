package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrEmptyName       = errors.New("pet name is required")
	ErrNameTooLong     = errors.New("pet name must be at most 100 characters")
	ErrEmptyTypeName   = errors.New("type_name is required")
	ErrTypeNameTooLong = errors.New("type_name must be at most 100 characters")
	ErrBreedTooLong    = errors.New("breed must be at most 100 characters")
	ErrGenderTooLong   = errors.New("gender must be at most 20 characters")
	ErrNegativeAge     = errors.New("age must not be negative")
	ErrPetNotFound     = errors.New("pet not found")
	ErrPetTypeNotFound = errors.New("pet type not found")
	ErrCreatorNotFound = errors.New("creating user not found")
	ErrDuplicateType   = errors.New("pet type already exists")
)

// Column widths shared with the relational schema.
const (
	MaxNameLength     = 100
	MaxTypeNameLength = 100
	MaxBreedLength    = 100
	MaxGenderLength   = 20
)

func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

// PetType is a catalog category such as "Dog" or "Cat".
type PetType struct {
	ID          int64
	Name        string
	Description string
}

// NewPetType trims and validates the type name.
func NewPetType(name, description string) (*PetType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTypeName
	}
	if tooLong(name, MaxTypeNameLength) {
		return nil, ErrTypeNameTooLong
	}
	return &PetType{Name: name, Description: strings.TrimSpace(description)}, nil
}

// Pet is an adoptable animal listed in the catalog.
type Pet struct {
	ID          int64
	Name        string
	Breed       string
	Age         *int
	Gender      string
	PetTypeID   *int64
	Description string
	ImageURL    string
	Available   bool
	CreatedBy   *int64
	CreatedAt   time.Time
}

// NewPet builds a listed, available pet.
func NewPet(name string) (*Pet, error) {
	p := &Pet{Available: true}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename validates and stores the pet name.
func (p *Pet) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if tooLong(name, MaxNameLength) {
		return ErrNameTooLong
	}
	p.Name = name
	return nil
}

// Describe stores breed and gender after checking their lengths.
func (p *Pet) Describe(breed, gender string) error {
	breed, gender = strings.TrimSpace(breed), strings.TrimSpace(gender)
	if tooLong(breed, MaxBreedLength) {
		return ErrBreedTooLong
	}
	if tooLong(gender, MaxGenderLength) {
		return ErrGenderTooLong
	}
	p.Breed, p.Gender = breed, gender
	return nil
}

// SetAge records the age in years; nil clears it.
func (p *Pet) SetAge(age *int) error {
	if age != nil && *age < 0 {
		return ErrNegativeAge
	}
	p.Age = age
	return nil
}

// PetFilter narrows pet listings.
type PetFilter struct {
	AvailableOnly bool
	PetTypeID     *int64
}

// Matches reports whether p passes the filter.
func (f PetFilter) Matches(p *Pet) bool {
	if f.AvailableOnly && !p.Available {
		return false
	}
	if f.PetTypeID != nil && (p.PetTypeID == nil || *p.PetTypeID != *f.PetTypeID) {
		return false
	}
	return true
}
