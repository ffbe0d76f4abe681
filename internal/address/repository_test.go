package address

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var addrCols = []string{"id", "street", "house_number", "apartment_number", "entrance", "floor", "door_code", "latitude", "longitude"}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Unfiltered", func(t *testing.T) {
		rows := sqlmock.NewRows(addrCols).
			AddRow(1, "Baker Street", "221B", nil, nil, nil, nil, "51.5237740", "-0.1585340").
			AddRow(2, "Main Street", "10", "4", "2", 3, "1234", nil, nil)

		mock.ExpectQuery(`FROM addresses ORDER BY street, house_number`).
			WillReturnRows(rows)

		addrs, err := repo.List(ctx, "")
		require.NoError(t, err)
		require.Len(t, addrs, 2)
		assert.Equal(t, "Baker Street, 221B", addrs[0].Label())
		require.NotNil(t, addrs[0].Latitude)
		assert.True(t, addrs[0].Latitude.Equal(decimal.RequireFromString("51.5237740")))
		assert.Nil(t, addrs[0].Floor)
		require.NotNil(t, addrs[1].Floor)
		assert.Equal(t, 3, *addrs[1].Floor)
	})

	t.Run("Search", func(t *testing.T) {
		rows := sqlmock.NewRows(addrCols).
			AddRow(1, "Baker Street", "221B", nil, nil, nil, nil, nil, nil)

		mock.ExpectQuery(`WHERE street ILIKE \$1 OR house_number ILIKE \$1`).
			WithArgs("%baker%").
			WillReturnRows(rows)

		addrs, err := repo.List(ctx, "baker")
		require.NoError(t, err)
		require.Len(t, addrs, 1)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`FROM addresses`).
			WillReturnError(errors.New("db error"))

		_, err := repo.List(ctx, "")
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(addrCols).
			AddRow(5, "Main Street", "10", "4", nil, nil, nil, nil, nil)

		mock.ExpectQuery(`FROM addresses WHERE id = \$1`).
			WithArgs(int64(5)).
			WillReturnRows(rows)

		a, err := repo.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "Main Street", a.Street)
		require.NotNil(t, a.ApartmentNumber)
		assert.Equal(t, "4", *a.ApartmentNumber)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`FROM addresses WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(addrCols))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	apt := "4"
	mock.ExpectQuery(`INSERT INTO addresses`).
		WithArgs("Main Street", "10", "4", nil, nil, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))

	a := &Address{Street: "Main Street", HouseNumber: "10", ApartmentNumber: &apt}
	require.NoError(t, repo.Create(ctx, a))
	assert.Equal(t, int64(8), a.ID)
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE addresses`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(ctx, &Address{ID: 8, Street: "Main Street", HouseNumber: "12"}))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE addresses`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(ctx, &Address{ID: 99}), ErrNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM addresses WHERE id = \$1`).
			WithArgs(int64(8)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 8))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM addresses WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 99), ErrNotFound)
	})
}
