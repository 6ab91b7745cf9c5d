package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	accountsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	adoptionsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	catalogdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	reviewsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/gateway"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestGateway() *Gateway {
	return NewGateway(WithClock(func() time.Time { return fixedNow }))
}

func seedUserAndPet(t *testing.T, g *Gateway) (int64, int64) {
	t.Helper()
	var userID, petID int64
	err := g.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		user, err := tx.Users().Create(ctx, &accountsdomain.User{Username: "alice", Email: "alice@example.com", Role: accountsdomain.RoleAdopter})
		if err != nil {
			return err
		}
		pet, err := tx.Pets().Create(ctx, &catalogdomain.Pet{Name: "Rex", Available: true, CreatedBy: &user.ID})
		if err != nil {
			return err
		}
		userID, petID = user.ID, pet.ID
		return nil
	})
	require.NoError(t, err)
	return userID, petID
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	g := newTestGateway()
	boom := errors.New("boom")

	err := g.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		_, err := tx.PetTypes().Create(ctx, &catalogdomain.PetType{Name: "Dog"})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = g.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		types, err := tx.PetTypes().List(ctx)
		require.NoError(t, err)
		require.Empty(t, types)
		return nil
	})
	require.NoError(t, err)
}

func TestUniqueConstraints(t *testing.T) {
	g := newTestGateway()
	err := g.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		_, err := tx.Users().Create(ctx, &accountsdomain.User{Username: "a", Email: "a@example.com"})
		require.NoError(t, err)
		_, err = tx.Users().Create(ctx, &accountsdomain.User{Username: "b", Email: " A@Example.com"})
		require.ErrorIs(t, err, gateway.ErrDuplicate)

		_, err = tx.PetTypes().Create(ctx, &catalogdomain.PetType{Name: "Dog"})
		require.NoError(t, err)
		_, err = tx.PetTypes().Create(ctx, &catalogdomain.PetType{Name: "Dog"})
		require.ErrorIs(t, err, gateway.ErrDuplicate)
		_, err = tx.PetTypes().Create(ctx, &catalogdomain.PetType{Name: "dog"})
		require.NoError(t, err)
		return nil
	})
	require.NoError(t, err)
}

func TestReferencesAreEnforced(t *testing.T) {
	g := newTestGateway()
	missing := int64(99)
	err := g.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		_, err := tx.Pets().Create(ctx, &catalogdomain.Pet{Name: "Rex", PetTypeID: &missing})
		require.ErrorIs(t, err, gateway.ErrReference)
		_, err = tx.Adoptions().Create(ctx, &adoptionsdomain.Adoption{UserID: 1, PetID: 1, Status: adoptionsdomain.StatusPending})
		require.ErrorIs(t, err, gateway.ErrReference)
		_, err = tx.Reviews().Create(ctx, &reviewsdomain.Review{UserID: 1, PetID: 1, Rating: 5})
		require.ErrorIs(t, err, gateway.ErrReference)
		return nil
	})
	require.NoError(t, err)
}

func TestDeleteUserCascades(t *testing.T) {
	g := newTestGateway()
	userID, petID := seedUserAndPet(t, g)

	err := g.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		_, err := tx.Adoptions().Create(ctx, &adoptionsdomain.Adoption{UserID: userID, PetID: petID, Status: adoptionsdomain.StatusApproved})
		require.NoError(t, err)
		_, err = tx.Reviews().Create(ctx, &reviewsdomain.Review{UserID: userID, PetID: petID, Rating: 5})
		require.NoError(t, err)
		return tx.Users().Delete(ctx, userID)
	})
	require.NoError(t, err)

	err = g.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		adoptions, err := tx.Adoptions().List(ctx, adoptionsdomain.Filter{})
		require.NoError(t, err)
		require.Empty(t, adoptions)
		reviews, err := tx.Reviews().List(ctx, reviewsdomain.Filter{})
		require.NoError(t, err)
		require.Empty(t, reviews)
		pet, err := tx.Pets().GetByID(ctx, petID)
		require.NoError(t, err)
		require.Nil(t, pet.CreatedBy)
		require.ErrorIs(t, tx.Users().Delete(ctx, userID), gateway.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestDeletePetTypeKeepsPets(t *testing.T) {
	g := newTestGateway()
	var petID int64
	err := g.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		pt, err := tx.PetTypes().Create(ctx, &catalogdomain.PetType{Name: "Cat"})
		require.NoError(t, err)
		pet, err := tx.Pets().Create(ctx, &catalogdomain.Pet{Name: "Tom", PetTypeID: &pt.ID, Available: true})
		require.NoError(t, err)
		petID = pet.ID
		return tx.PetTypes().Delete(ctx, pt.ID)
	})
	require.NoError(t, err)

	err = g.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		pet, err := tx.Pets().GetByID(ctx, petID)
		require.NoError(t, err)
		require.Nil(t, pet.PetTypeID)
		require.Equal(t, fixedNow, pet.CreatedAt)
		return nil
	})
	require.NoError(t, err)
}

func TestFindByUserAndPetReturnsOldest(t *testing.T) {
	g := newTestGateway()
	userID, petID := seedUserAndPet(t, g)
	err := g.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		first, err := tx.Adoptions().Create(ctx, &adoptionsdomain.Adoption{UserID: userID, PetID: petID, Status: adoptionsdomain.StatusRejected})
		require.NoError(t, err)
		_, err = tx.Adoptions().Create(ctx, &adoptionsdomain.Adoption{UserID: userID, PetID: petID, Status: adoptionsdomain.StatusPending})
		require.NoError(t, err)

		found, err := tx.Adoptions().FindByUserAndPet(ctx, userID, petID)
		require.NoError(t, err)
		require.Equal(t, first.ID, found.ID)

		pending, err := tx.Adoptions().FindWithStatusForUpdate(ctx, userID, petID, adoptionsdomain.Status("PENDING"))
		require.NoError(t, err)
		require.NotEqual(t, first.ID, pending.ID)
		_, err = tx.Adoptions().FindWithStatusForUpdate(ctx, userID, petID, adoptionsdomain.StatusApproved)
		require.ErrorIs(t, err, gateway.ErrNotFound)

		_, err = tx.Adoptions().FindByUserAndPet(ctx, userID, petID+1)
		require.ErrorIs(t, err, gateway.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestReturnedPetsAreCopies(t *testing.T) {
	g := newTestGateway()
	_, petID := seedUserAndPet(t, g)
	err := g.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		pet, err := tx.Pets().GetByID(ctx, petID)
		require.NoError(t, err)
		*pet.CreatedBy = 42
		pet.Available = false

		again, err := tx.Pets().GetByID(ctx, petID)
		require.NoError(t, err)
		require.NotEqual(t, int64(42), *again.CreatedBy)
		require.True(t, again.Available)
		return nil
	})
	require.NoError(t, err)
}

func TestTransactionsAreSerialised(t *testing.T) {
	g := newTestGateway()
	_, petID := seedUserAndPet(t, g)

	var wg sync.WaitGroup
	wins := make(chan struct{}, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
				pet, err := tx.Pets().GetForUpdate(ctx, petID)
				if err != nil || !pet.Available {
					return err
				}
				wins <- struct{}{}
				return tx.Pets().SetAvailable(ctx, petID, false)
			})
		}()
	}
	wg.Wait()
	close(wins)
	require.Len(t, wins, 1)
}

func TestWithinTxHonoursCancelledContext(t *testing.T) {
	g := newTestGateway()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := g.WithinTx(ctx, func(context.Context, gateway.Tx) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, called)
}
