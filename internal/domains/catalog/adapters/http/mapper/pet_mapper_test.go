package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	catalogdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
)

func TestPetFormDropsZeroTypeID(t *testing.T) {
	zero := int64(0)
	input := PetForm{Name: "Rex", PetTypeID: &zero}.ToAddPetInput(nil, nil)
	assert.Nil(t, input.PetTypeID)

	two := int64(2)
	input = PetForm{Name: "Rex", PetTypeID: &two}.ToAddPetInput(nil, nil)
	if assert.NotNil(t, input.PetTypeID) {
		assert.Equal(t, int64(2), *input.PetTypeID)
	}
}

func TestFromDomainPetImageURL(t *testing.T) {
	out := FromDomainPet(&catalogdomain.Pet{Name: "Rex"})
	assert.Nil(t, out.ImageURL)

	out = FromDomainPet(&catalogdomain.Pet{Name: "Rex", ImageURL: "uploads/rex.jpg"})
	if assert.NotNil(t, out.ImageURL) {
		assert.Equal(t, "uploads/rex.jpg", *out.ImageURL)
	}
}
