package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopdash/backend/internal/domain/promotion"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM DB backed by a mocked SQL connection
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormCouponRepository_FindByCode(t *testing.T) {
	t.Run("finds coupon scoped to the shop", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCouponRepository(db)

		rows := sqlmock.NewRows([]string{"id", "code", "shop_id", "discount_type", "discount_value", "min_amount", "uses", "max_uses"}).
			AddRow(1, "SAVE10", 3, "PERCENTAGE", "10", "150", 5, 100)

		mock.ExpectQuery(`SELECT \* FROM "coupons" WHERE code = \$1 AND shop_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("SAVE10", 3, 1).
			WillReturnRows(rows)

		coupon, err := repo.FindByCode(context.Background(), "SAVE10", 3)

		require.NoError(t, err)
		assert.Equal(t, "SAVE10", coupon.Code)
		assert.Equal(t, uint(3), coupon.ShopID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing rows to ErrNotFound", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCouponRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "coupons" WHERE code = \$1 AND shop_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("NOPE", 3, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		coupon, err := repo.FindByCode(context.Background(), "NOPE", 3)

		assert.Nil(t, coupon)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCouponRepository_ExistsForOtherShop(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormCouponRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "coupons" WHERE code = \$1 AND shop_id <> \$2`).
		WithArgs("SAVE10", 3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsForOtherShop(context.Background(), "SAVE10", 3)

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormCouponRepository_IncrementUse(t *testing.T) {
	t.Run("increments under the max-uses guard", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCouponRepository(db)

		// The guard must live in the UPDATE itself, not in a prior read
		mock.ExpectExec(`UPDATE "coupons" SET "uses"=uses \+ 1.* WHERE code = \$\d+ AND uses < max_uses`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementUse(context.Background(), "SAVE10")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrExhausted when the guard matches no rows", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCouponRepository(db)

		mock.ExpectExec(`UPDATE "coupons" SET "uses"=uses \+ 1.* WHERE code = \$\d+ AND uses < max_uses`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.IncrementUse(context.Background(), "SAVE10")

		assert.ErrorIs(t, err, promotion.ErrExhausted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
