package adoptionserver

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/ports"
)

// PetAPI serves the pet and pet type catalog.
type PetAPI struct {
	service catalogports.Service
}

// NewPetAPI creates a PetAPI backed by the provided service.
func NewPetAPI(service catalogports.Service) PetAPI {
	return PetAPI{service: service}
}

// Post /add_pet_type
func (api *PetAPI) AddPetType(c *gin.Context) {
	var form catalogmapper.PetTypeForm
	if !bind(c, "Error creating pet type", &form) {
		return
	}
	petType, err := api.service.AddPetType(c.Request.Context(), form.TypeName, form.Description)
	if err != nil {
		respondError(c, "Error creating pet type", err)
		return
	}
	respondCreated(c, "Pet type added successfully.", petType.ID)
}

// Get /get_pet_types
func (api *PetAPI) GetPetTypes(c *gin.Context) {
	types, err := api.service.ListPetTypes(c.Request.Context())
	if err != nil {
		respondError(c, "Error fetching pet types", err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainPetTypes(types))
}

// Post /delete_pet_type
// Pets of the removed type keep existing without a type.
func (api *PetAPI) DeletePetType(c *gin.Context) {
	var form catalogmapper.PetTypeIDForm
	if !bind(c, "Error deleting pet type", &form) {
		return
	}
	if err := api.service.DeletePetType(c.Request.Context(), form.PetTypeID); err != nil {
		respondError(c, "Error deleting pet type", err)
		return
	}
	respondMessage(c, http.StatusOK, "Pet type deleted successfully.", nil)
}

// Post /add_pet
// Multipart form; the optional picture travels in the image_url file part.
func (api *PetAPI) AddPet(c *gin.Context) {
	var form catalogmapper.PetForm
	if !bind(c, "Error adding pet", &form) {
		return
	}
	var image *catalogports.Image
	if header, err := c.FormFile("image_url"); err == nil && header.Filename != "" {
		file, err := header.Open()
		if err != nil {
			respondError(c, "Error adding pet", err)
			return
		}
		defer closeUpload(file)
		image = &catalogports.Image{Filename: header.Filename, Content: file}
	}
	identity, _ := CurrentIdentity(c)
	createdBy := identity.UserID
	pet, err := api.service.AddPet(c.Request.Context(), form.ToAddPetInput(&createdBy, image))
	if err != nil {
		respondError(c, "Error adding pet", err)
		return
	}
	respondCreated(c, "Pet added successfully.", pet.ID)
}

func closeUpload(file multipart.File) {
	_ = file.Close()
}

// Get /get_pets
func (api *PetAPI) GetPets(c *gin.Context) {
	var query catalogmapper.PetQuery
	if !bind(c, "Error fetching pets", &query) {
		return
	}
	pets, err := api.service.ListPets(c.Request.Context(), query.ToFilter())
	if err != nil {
		respondError(c, "Error fetching pets", err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainPets(pets))
}

// Get /get_pet/:id
func (api *PetAPI) GetPet(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Error fetching pet")
	if !ok {
		return
	}
	pet, err := api.service.GetPet(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Error fetching pet", err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainPet(pet))
}

// Post /delete_pet
func (api *PetAPI) DeletePet(c *gin.Context) {
	var form catalogmapper.PetIDForm
	if !bind(c, "Error deleting pet", &form) {
		return
	}
	if err := api.service.DeletePet(c.Request.Context(), form.PetID); err != nil {
		respondError(c, "Error deleting pet", err)
		return
	}
	respondMessage(c, http.StatusOK, "Pet deleted successfully.", nil)
}
