package application

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/ports"
	gwpostgres "github.com/Apurer/go-gin-adoption-server/internal/gateway/postgres"
	"github.com/Apurer/go-gin-adoption-server/internal/shared/failure"
)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewService(gwpostgres.NewGateway(db)), mock
}

func TestSubmitLocksApprovedAdoptionBeforeInsert(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "adoptions" WHERE user_id = \$1 AND pet_id = \$2 AND LOWER\(status\) = \$3 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "pet_id", "status"}).AddRow(3, 1, 5, "Approved"))
	mock.ExpectQuery(`INSERT INTO "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	review, err := svc.Submit(context.Background(), ports.SubmitInput{UserID: 1, PetID: 5, Rating: rating(4)})
	require.NoError(t, err)
	assert.Equal(t, int64(11), review.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitWithoutLockedAdoptionRollsBack(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "adoptions" WHERE .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Submit(context.Background(), ports.SubmitInput{UserID: 1, PetID: 5, Rating: rating(4)})
	require.ErrorIs(t, err, failure.ErrForbidden)
	require.ErrorIs(t, err, domain.ErrNotAdopted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
