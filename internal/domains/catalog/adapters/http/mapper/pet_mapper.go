package mapper

import (
	"time"

	catalogdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/ports"
)

// PetTypeForm is the form payload of POST /add_pet_type.
type PetTypeForm struct {
	TypeName    string `form:"type_name"`
	Description string `form:"description"`
}

// PetForm is the multipart payload of POST /add_pet. The picture travels in
// the image_url file part and is handled separately.
type PetForm struct {
	Name        string `form:"name"`
	Breed       string `form:"breed"`
	Age         *int   `form:"age"`
	Gender      string `form:"gender"`
	PetTypeID   *int64 `form:"pet_type_id"`
	Description string `form:"description"`
}

// PetTypeIDForm carries the pet_type_id of POST /delete_pet_type.
type PetTypeIDForm struct {
	PetTypeID int64 `form:"pet_type_id" binding:"required"`
}

// PetIDForm carries the pet_id of POST /delete_pet.
type PetIDForm struct {
	PetID int64 `form:"pet_id" binding:"required"`
}

// PetQuery holds the filters of GET /get_pets.
type PetQuery struct {
	Available bool   `form:"available"`
	PetTypeID *int64 `form:"pet_type_id"`
}

// PetType represents the transport-level pet type payload.
type PetType struct {
	ID          int64  `json:"id"`
	TypeName    string `json:"type_name"`
	Description string `json:"description"`
}

// Pet represents the transport-level pet payload.
type Pet struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Breed       string    `json:"breed"`
	Age         *int      `json:"age"`
	Gender      string    `json:"gender"`
	PetTypeID   *int64    `json:"pet_type_id"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image_url"`
	Available   bool      `json:"available"`
	CreatedBy   *int64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToAddPetInput converts the form into the service input. A zero pet type id
// is treated as absent.
func (f PetForm) ToAddPetInput(createdBy *int64, image *catalogports.Image) catalogports.AddPetInput {
	return catalogports.AddPetInput{
		Name:        f.Name,
		Breed:       f.Breed,
		Age:         f.Age,
		Gender:      f.Gender,
		PetTypeID:   positive(f.PetTypeID),
		Description: f.Description,
		CreatedBy:   createdBy,
		Image:       image,
	}
}

// ToFilter converts the query string into a domain filter.
func (q PetQuery) ToFilter() catalogdomain.PetFilter {
	return catalogdomain.PetFilter{AvailableOnly: q.Available, PetTypeID: positive(q.PetTypeID)}
}

func FromDomainPetType(petType *catalogdomain.PetType) PetType {
	if petType == nil {
		return PetType{}
	}
	return PetType{ID: petType.ID, TypeName: petType.Name, Description: petType.Description}
}

func FromDomainPetTypes(types []*catalogdomain.PetType) []PetType {
	result := make([]PetType, 0, len(types))
	for _, petType := range types {
		result = append(result, FromDomainPetType(petType))
	}
	return result
}

// FromDomainPet converts a domain pet into a transport representation.
func FromDomainPet(pet *catalogdomain.Pet) Pet {
	if pet == nil {
		return Pet{}
	}
	out := Pet{
		ID:          pet.ID,
		Name:        pet.Name,
		Breed:       pet.Breed,
		Age:         pet.Age,
		Gender:      pet.Gender,
		PetTypeID:   pet.PetTypeID,
		Description: pet.Description,
		Available:   pet.Available,
		CreatedBy:   pet.CreatedBy,
		CreatedAt:   pet.CreatedAt,
	}
	if pet.ImageURL != "" {
		url := pet.ImageURL
		out.ImageURL = &url
	}
	return out
}

// FromDomainPets converts a slice of domain pets to transport representation.
func FromDomainPets(pets []*catalogdomain.Pet) []Pet {
	result := make([]Pet, 0, len(pets))
	for _, pet := range pets {
		result = append(result, FromDomainPet(pet))
	}
	return result
}

func positive(id *int64) *int64 {
	if id == nil || *id <= 0 {
		return nil
	}
	v := *id
	return &v
}
