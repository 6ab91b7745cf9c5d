package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPetIsAvailable(t *testing.T) {
	p, err := NewPet(" Rex ")
	require.NoError(t, err)
	require.Equal(t, "Rex", p.Name)
	require.True(t, p.Available)
}

func TestNewPetRequiresName(t *testing.T) {
	_, err := NewPet("   ")
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewPet(strings.Repeat("x", 101))
	require.ErrorIs(t, err, ErrNameTooLong)
}

func TestSetAge(t *testing.T) {
	p, err := NewPet("Rex")
	require.NoError(t, err)
	neg := -1
	require.ErrorIs(t, p.SetAge(&neg), ErrNegativeAge)
	three := 3
	require.NoError(t, p.SetAge(&three))
	require.Equal(t, 3, *p.Age)
}

func TestNewPetTypeTrims(t *testing.T) {
	pt, err := NewPetType("  Dog ", "loyal")
	require.NoError(t, err)
	require.Equal(t, "Dog", pt.Name)

	_, err = NewPetType(" ", "")
	require.ErrorIs(t, err, ErrEmptyTypeName)

	_, err = NewPetType(strings.Repeat("t", MaxTypeNameLength+1), "")
	require.ErrorIs(t, err, ErrTypeNameTooLong)

	pt, err = NewPetType(strings.Repeat("é", MaxTypeNameLength), "")
	require.NoError(t, err)
	require.Len(t, []rune(pt.Name), MaxTypeNameLength)
}

func TestDescribe(t *testing.T) {
	p, err := NewPet("Rex")
	require.NoError(t, err)

	require.NoError(t, p.Describe(" Beagle ", "Unknown/mixed"))
	require.Equal(t, "Beagle", p.Breed)
	require.Equal(t, "Unknown/mixed", p.Gender)

	require.ErrorIs(t, p.Describe(strings.Repeat("b", MaxBreedLength+1), ""), ErrBreedTooLong)
	require.ErrorIs(t, p.Describe("", strings.Repeat("g", MaxGenderLength+1)), ErrGenderTooLong)
	require.Equal(t, "Beagle", p.Breed)
}

func TestPetFilter(t *testing.T) {
	dog, cat := int64(1), int64(2)
	p := &Pet{Available: false, PetTypeID: &dog}

	require.True(t, PetFilter{}.Matches(p))
	require.False(t, PetFilter{AvailableOnly: true}.Matches(p))
	require.True(t, PetFilter{PetTypeID: &dog}.Matches(p))
	require.False(t, PetFilter{PetTypeID: &cat}.Matches(p))
	require.False(t, PetFilter{PetTypeID: &cat}.Matches(&Pet{}))
}
