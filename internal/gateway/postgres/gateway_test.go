package postgres

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	adoptionsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	catalogdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/gateway"
)

func newMockGateway(t *testing.T) (*Gateway, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewGateway(db), mock
}

func TestGetForUpdateLocksPetRow(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "pets" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "available"}).AddRow(5, "Rex", true))
	mock.ExpectExec(`UPDATE "pets" SET "available"=\$1 WHERE id = \$2`).
		WithArgs(false, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := gw.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		pet, err := tx.Pets().GetForUpdate(ctx, 5)
		if err != nil {
			return err
		}
		assert.Equal(t, "Rex", pet.Name)
		assert.True(t, pet.Available)
		return tx.Pets().SetAvailable(ctx, pet.ID, false)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForUpdateLocksAdoptionRow(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "adoptions" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "pet_id", "status"}).AddRow(7, 1, 5, "pending"))
	mock.ExpectCommit()

	err := gw.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		adoption, err := tx.Adoptions().GetForUpdate(ctx, 7)
		if err != nil {
			return err
		}
		assert.Equal(t, adoptionsdomain.StatusPending, adoption.Status)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUniqueViolationRollsBack(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "pet_types"`).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := gw.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		_, err := tx.PetTypes().Create(ctx, &catalogdomain.PetType{Name: "Dog"})
		return err
	})
	require.ErrorIs(t, err, gateway.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForeignKeyViolationIsReference(t *testing.T) {
	gw, mock := newMockGateway(t)
	missingType := int64(42)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "pets"`).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation, Message: "violates foreign key constraint"})
	mock.ExpectRollback()

	err := gw.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		_, err := tx.Pets().Create(ctx, &catalogdomain.Pet{Name: "Rex", PetTypeID: &missingType, Available: true})
		return err
	})
	require.ErrorIs(t, err, gateway.ErrReference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindWithStatusForUpdateLocksAndIgnoresCase(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "adoptions" WHERE user_id = \$1 AND pet_id = \$2 AND LOWER\(status\) = \$3 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "pet_id", "status"}).AddRow(3, 1, 5, "approved"))
	mock.ExpectCommit()

	err := gw.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		adoption, err := tx.Adoptions().FindWithStatusForUpdate(ctx, 1, 5, adoptionsdomain.StatusApproved)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(3), adoption.ID)
		assert.True(t, adoption.Status.Is(adoptionsdomain.StatusApproved))
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindWithStatusForUpdateMissingIsNotFound(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "adoptions" WHERE .*LOWER\(status\) = \$3 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := gw.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		_, err := tx.Adoptions().FindWithStatusForUpdate(ctx, 1, 5, adoptionsdomain.StatusApproved)
		return err
	})
	require.ErrorIs(t, err, gateway.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissingRowIsNotFound(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := gw.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		_, err := tx.Users().GetByID(ctx, 99)
		return err
	})
	require.ErrorIs(t, err, gateway.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnconfiguredGateway(t *testing.T) {
	var gw *Gateway
	err := gw.WithinTx(context.Background(), func(context.Context, gateway.Tx) error { return nil })
	require.Error(t, err)
}
