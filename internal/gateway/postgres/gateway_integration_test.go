//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	accountsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	adoptionsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	catalogdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	reviewsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/gateway"
	pggateway "github.com/Apurer/go-gin-adoption-server/internal/gateway/postgres"
	"github.com/Apurer/go-gin-adoption-server/internal/platform/migrations"
)

func setupGatewayPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("adoption_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

type fixture struct {
	user *accountsdomain.User
	pet  *catalogdomain.Pet
}

func seed(t *testing.T, gw gateway.Gateway) fixture {
	t.Helper()
	var fx fixture
	err := gw.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		user, err := accountsdomain.NewUser("alice", "alice@example.com", accountsdomain.RoleAdopter)
		if err != nil {
			return err
		}
		user.PasswordHash = "hash"
		if fx.user, err = tx.Users().Create(ctx, user); err != nil {
			return err
		}
		petType, err := tx.PetTypes().Create(ctx, &catalogdomain.PetType{Name: "Dog"})
		if err != nil {
			return err
		}
		pet, err := catalogdomain.NewPet("Rex")
		if err != nil {
			return err
		}
		pet.PetTypeID = &petType.ID
		pet.CreatedBy = &fx.user.ID
		fx.pet, err = tx.Pets().Create(ctx, pet)
		return err
	})
	require.NoError(t, err)
	return fx
}

func TestGateway_CreateAndQuery(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupGatewayPostgresContainer(t)
	defer cleanup()

	gw := pggateway.NewGateway(db)
	fx := seed(t, gw)
	ctx := context.Background()

	err := gw.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		byEmail, err := tx.Users().GetByEmail(ctx, "  ALICE@example.com ")
		require.NoError(t, err)
		assert.Equal(t, fx.user.ID, byEmail.ID)

		_, err = tx.Users().Create(ctx, &accountsdomain.User{Username: "dup", Email: "alice@example.com", PasswordHash: "x", Role: accountsdomain.RoleAdopter})
		assert.ErrorIs(t, err, gateway.ErrDuplicate)
		return nil
	})
	// the duplicate insert aborts the transaction
	require.Error(t, err)

	err = gw.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		available, err := tx.Pets().List(ctx, catalogdomain.PetFilter{AvailableOnly: true})
		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.Equal(t, "Rex", available[0].Name)
		return nil
	})
	require.NoError(t, err)
}

func TestGateway_RollbackOnError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupGatewayPostgresContainer(t)
	defer cleanup()

	gw := pggateway.NewGateway(db)
	fx := seed(t, gw)
	ctx := context.Background()

	err := gw.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		if err := tx.Pets().SetAvailable(ctx, fx.pet.ID, false); err != nil {
			return err
		}
		_, err := tx.Adoptions().Create(ctx, &adoptionsdomain.Adoption{UserID: fx.user.ID, PetID: 9999, Status: adoptionsdomain.StatusPending})
		return err
	})
	require.ErrorIs(t, err, gateway.ErrReference)

	err = gw.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		pet, err := tx.Pets().GetByID(ctx, fx.pet.ID)
		require.NoError(t, err)
		assert.True(t, pet.Available)
		return nil
	})
	require.NoError(t, err)
}

func TestGateway_DeleteUserCascades(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupGatewayPostgresContainer(t)
	defer cleanup()

	gw := pggateway.NewGateway(db)
	fx := seed(t, gw)
	ctx := context.Background()

	err := gw.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		if _, err := tx.Adoptions().Create(ctx, &adoptionsdomain.Adoption{UserID: fx.user.ID, PetID: fx.pet.ID, Status: adoptionsdomain.StatusApproved, AdoptionDate: time.Now()}); err != nil {
			return err
		}
		_, err := tx.Reviews().Create(ctx, &reviewsdomain.Review{UserID: fx.user.ID, PetID: fx.pet.ID, Rating: 5, ReviewDate: time.Now()})
		return err
	})
	require.NoError(t, err)

	err = gw.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		return tx.Users().Delete(ctx, fx.user.ID)
	})
	require.NoError(t, err)

	err = gw.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		adoptions, err := tx.Adoptions().List(ctx, adoptionsdomain.Filter{})
		require.NoError(t, err)
		assert.Empty(t, adoptions)

		reviews, err := tx.Reviews().List(ctx, reviewsdomain.Filter{})
		require.NoError(t, err)
		assert.Empty(t, reviews)

		pet, err := tx.Pets().GetByID(ctx, fx.pet.ID)
		require.NoError(t, err)
		assert.Nil(t, pet.CreatedBy)
		return nil
	})
	require.NoError(t, err)

	err = gw.WithinTx(ctx, func(ctx context.Context, tx gateway.Tx) error {
		return tx.Users().Delete(ctx, fx.user.ID)
	})
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestGateway_RowLockSerializesApplications(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupGatewayPostgresContainer(t)
	defer cleanup()

	gw := pggateway.NewGateway(db)
	fx := seed(t, gw)

	const workers = 5
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := gw.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
				pet, err := tx.Pets().GetForUpdate(ctx, fx.pet.ID)
				if err != nil {
					return err
				}
				if !pet.Available {
					return nil
				}
				if _, err := tx.Adoptions().Create(ctx, &adoptionsdomain.Adoption{UserID: fx.user.ID, PetID: pet.ID, Status: adoptionsdomain.StatusPending, AdoptionDate: time.Now()}); err != nil {
					return err
				}
				mu.Lock()
				wins++
				mu.Unlock()
				return tx.Pets().SetAvailable(ctx, pet.ID, false)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}
