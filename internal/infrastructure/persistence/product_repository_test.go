package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository_FindByIDs(t *testing.T) {
	t.Run("fetches products in one batch", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		rows := sqlmock.NewRows([]string{"id", "shop_id", "name", "price", "discount_percent", "stock"}).
			AddRow(1, 3, "Masala Dosa", "100", "10", 20).
			AddRow(2, 3, "Filter Coffee", "40", "0", 50)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id IN \(\$1,\$2\)`).
			WithArgs(1, 2).
			WillReturnRows(rows)

		products, err := repo.FindByIDs(context.Background(), []uint{1, 2})

		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Masala Dosa", products[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing ids are simply absent", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		rows := sqlmock.NewRows([]string{"id", "shop_id", "name", "price", "discount_percent", "stock"}).
			AddRow(1, 3, "Masala Dosa", "100", "10", 20)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id IN \(\$1,\$2\)`).
			WithArgs(1, 999).
			WillReturnRows(rows)

		products, err := repo.FindByIDs(context.Background(), []uint{1, 999})

		require.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("empty input skips the query", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		products, err := repo.FindByIDs(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, products)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_DecrementStock(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormProductRepository(db)

	// Single UPDATE flooring at zero, never a read-then-write
	mock.ExpectExec(`UPDATE "products" SET "stock"=GREATEST\(stock - \$\d+, 0\).* WHERE id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DecrementStock(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
