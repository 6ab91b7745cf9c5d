package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	adoptionsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	catalogdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/ports"
	"github.com/Apurer/go-gin-adoption-server/internal/gateway"
	gwmemory "github.com/Apurer/go-gin-adoption-server/internal/gateway/memory"
	"github.com/Apurer/go-gin-adoption-server/internal/shared/failure"
)

func seedAdoption(t *testing.T, gw gateway.Gateway, status adoptionsdomain.Status) (userID, petID int64) {
	t.Helper()
	err := gw.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		user, err := tx.Users().Create(ctx, &accountsdomain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: accountsdomain.RoleAdopter})
		if err != nil {
			return err
		}
		pet, err := tx.Pets().Create(ctx, &catalogdomain.Pet{Name: "Rex"})
		if err != nil {
			return err
		}
		userID, petID = user.ID, pet.ID
		_, err = tx.Adoptions().Create(ctx, &adoptionsdomain.Adoption{UserID: user.ID, PetID: pet.ID, Status: status})
		return err
	})
	require.NoError(t, err)
	return userID, petID
}

func rating(v int) *int { return &v }

func TestSubmitRequiresApprovedAdoption(t *testing.T) {
	for _, status := range []adoptionsdomain.Status{adoptionsdomain.StatusPending, adoptionsdomain.StatusRejected, adoptionsdomain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			gw := gwmemory.NewGateway()
			user, pet := seedAdoption(t, gw, status)
			svc := NewService(gw)

			_, err := svc.Submit(context.Background(), ports.SubmitInput{UserID: user, PetID: pet, Rating: rating(5)})
			require.ErrorIs(t, err, failure.ErrForbidden)
			require.ErrorIs(t, err, domain.ErrNotAdopted)
		})
	}
}

func TestSubmitAllowsRepeatedReviews(t *testing.T) {
	gw := gwmemory.NewGateway()
	user, pet := seedAdoption(t, gw, adoptionsdomain.StatusApproved)
	svc := NewService(gw)
	ctx := context.Background()

	first, err := svc.Submit(ctx, ports.SubmitInput{UserID: user, PetID: pet, Rating: rating(5), Comment: " Lovely dog "})
	require.NoError(t, err)
	assert.Equal(t, "Lovely dog", first.Comment)

	_, err = svc.Submit(ctx, ports.SubmitInput{UserID: user, PetID: pet, Rating: rating(4)})
	require.NoError(t, err)

	reviews, err := svc.List(ctx, domain.Filter{PetID: &pet})
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	other := pet + 100
	reviews, err = svc.List(ctx, domain.Filter{PetID: &other})
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestSubmitValidation(t *testing.T) {
	svc := NewService(gwmemory.NewGateway())
	ctx := context.Background()

	_, err := svc.Submit(ctx, ports.SubmitInput{PetID: 1, Rating: rating(3)})
	require.ErrorIs(t, err, failure.ErrValidation)
	_, err = svc.Submit(ctx, ports.SubmitInput{UserID: 1, Rating: rating(3)})
	require.ErrorIs(t, err, failure.ErrValidation)
	_, err = svc.Submit(ctx, ports.SubmitInput{UserID: 1, PetID: 1})
	require.ErrorIs(t, err, failure.ErrValidation)
	require.ErrorIs(t, err, domain.ErrMissingRating)
}
