package mapper

import (
	"strings"
	"time"

	adoptionsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
)

// ApplyForm is the form payload of POST /adopt_pet. UserID is honoured for admins only.
type ApplyForm struct {
	UserID *int64 `form:"user_id"`
	PetID  int64  `form:"pet_id"`
}

// AdoptionIDForm carries the adoption_id of approve, reject and cancel.
type AdoptionIDForm struct {
	AdoptionID int64 `form:"adoption_id"`
}

// AdoptionQuery holds the filters of GET /get_adoptions.
type AdoptionQuery struct {
	UserID *int64 `form:"user_id"`
	PetID  *int64 `form:"pet_id"`
	Status string `form:"status"`
}

// Adoption represents the transport-level adoption payload.
type Adoption struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	PetID        int64     `json:"pet_id"`
	Status       string    `json:"status"`
	AdoptionDate time.Time `json:"adoption_date"`
}

// ToFilter converts the query string into a domain filter.
func (q AdoptionQuery) ToFilter() (adoptionsdomain.Filter, error) {
	filter := adoptionsdomain.Filter{UserID: q.UserID, PetID: q.PetID}
	if strings.TrimSpace(q.Status) != "" {
		status, err := adoptionsdomain.ParseStatus(q.Status)
		if err != nil {
			return adoptionsdomain.Filter{}, err
		}
		filter.Status = &status
	}
	return filter, nil
}

// FromDomainAdoption converts a domain adoption into a transport representation.
func FromDomainAdoption(adoption *adoptionsdomain.Adoption) Adoption {
	if adoption == nil {
		return Adoption{}
	}
	return Adoption{
		ID:           adoption.ID,
		UserID:       adoption.UserID,
		PetID:        adoption.PetID,
		Status:       string(adoption.Status),
		AdoptionDate: adoption.AdoptionDate,
	}
}

// FromDomainAdoptions converts a slice of domain adoptions to transport representation.
func FromDomainAdoptions(adoptions []*adoptionsdomain.Adoption) []Adoption {
	result := make([]Adoption, 0, len(adoptions))
	for _, adoption := range adoptions {
		result = append(result, FromDomainAdoption(adoption))
	}
	return result
}
