package seed_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-adoption-server/internal/app/seed"
	accountsmemory "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/adapters/memory"
	accountsapp "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/application"
	catalogapp "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	gatewaymemory "github.com/Apurer/go-gin-adoption-server/internal/gateway/memory"
)

const document = `
admin:
  username: admin
  email: admin@example.com
  password: secret123
pet_types:
  - name: Dog
  - name: Cat
    description: Independent
pets:
  - name: Rex
    type: Dog
    age: 4
  - name: Milo
    type: cat
  - name: Stray
`

func TestDecodeRejectsUnknownPetType(t *testing.T) {
	_, err := seed.Decode(strings.NewReader("pet_types:\n  - name: Dog\npets:\n  - name: Tweety\n    type: Bird\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown pet type "Bird"`)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := seed.Decode(strings.NewReader("pet_types:\n  - name: Dog\n    colour: brown\n"))
	require.Error(t, err)
}

func TestLoadIsRepeatable(t *testing.T) {
	ctx := context.Background()
	gw := gatewaymemory.NewGateway()
	accounts := accountsapp.NewService(gw, accountsmemory.NewSessionStore(), accountsapp.WithHashCost(4))
	catalog := catalogapp.NewService(gw)
	loader := seed.NewLoader(accounts, catalog, nil)

	doc, err := seed.Decode(strings.NewReader(document))
	require.NoError(t, err)

	result, err := loader.Load(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{AdminCreated: true, PetTypes: 2, Pets: 3}, result)

	pets, err := catalog.ListPets(ctx, catalogdomain.PetFilter{})
	require.NoError(t, err)
	require.Len(t, pets, 3)
	assert.NotNil(t, pets[0].PetTypeID)
	assert.Nil(t, pets[2].PetTypeID)

	again, err := loader.Load(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{}, again)

	session, err := accounts.Login(ctx, "admin@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "admin", string(session.Identity.Role))
}
