package repository_test

import (
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/nearbasket/nearbasket-api/internal/models"
	repository "github.com/nearbasket/nearbasket-api/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartRepoTest(t *testing.T) (repository.CartRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewCartRepo(db)
	require.NotNil(t, repo)

	return repo, mock
}

func TestCartRepository(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()

	t.Run("GetByUserID - Found", func(t *testing.T) {
		userID := uuid.New()
		cartID := uuid.New()
		storeID := uuid.New()
		now := time.Now()

		items := []models.CartItem{
			{ProductID: uuid.New(), Quantity: 2, PriceAtAdd: 100, OfferPriceAtAdd: 90, Unit: "kg"},
			{ProductID: uuid.New(), StoreID: &storeID, Quantity: 1, PriceAtAdd: 50, OfferPriceAtAdd: 50, Unit: "piece"},
		}
		itemsJSON, err := json.Marshal(items)
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"id", "user_id", "items", "version", "created_at", "updated_at", "created_at_ist", "updated_at_ist"}).
			AddRow(cartID, userID, itemsJSON, int64(3), now, now, "01/01/2026, 9:00:00 am", "01/01/2026, 9:00:00 am")

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, items, version, created_at, updated_at, created_at_ist, updated_at_ist")).
			WithArgs(userID).
			WillReturnRows(rows)

		cart, err := repo.GetByUserID(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, cartID, cart.ID)
		assert.Equal(t, int64(3), cart.Version)
		require.Len(t, cart.Items, 2)
		assert.Nil(t, cart.Items[0].StoreID)
		require.NotNil(t, cart.Items[1].StoreID)
		assert.Equal(t, storeID, *cart.Items[1].StoreID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Create - Inserts With Version Zero", func(t *testing.T) {
		now := time.Now()
		cart := &models.Cart{
			ID:     uuid.New(),
			UserID: uuid.New(),
			Items:  []models.CartItem{},
		}

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO carts")).
			WithArgs(cart.ID, cart.UserID, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		err := repo.Create(ctx, cart)

		require.NoError(t, err)
		assert.Equal(t, int64(0), cart.Version)
		assert.NotEmpty(t, cart.CreatedAtIST)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Update - Bumps Version On Success", func(t *testing.T) {
		cart := &models.Cart{
			ID:      uuid.New(),
			UserID:  uuid.New(),
			Items:   []models.CartItem{{ProductID: uuid.New(), Quantity: 1}},
			Version: 5,
		}

		mock.ExpectExec(regexp.QuoteMeta("UPDATE carts")).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), cart.ID, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, cart)

		require.NoError(t, err)
		assert.Equal(t, int64(6), cart.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Update - Stale Version Conflicts", func(t *testing.T) {
		cart := &models.Cart{
			ID:      uuid.New(),
			UserID:  uuid.New(),
			Items:   []models.CartItem{},
			Version: 2,
		}

		mock.ExpectExec(regexp.QuoteMeta("UPDATE carts")).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), cart.ID, int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, cart)

		assert.ErrorIs(t, err, repository.ErrVersionConflict)
		assert.Equal(t, int64(2), cart.Version, "version must not change on conflict")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Update - Database Error", func(t *testing.T) {
		cart := &models.Cart{ID: uuid.New(), Items: []models.CartItem{}}

		dbErr := errors.New("connection reset")
		mock.ExpectExec(regexp.QuoteMeta("UPDATE carts")).
			WillReturnError(dbErr)

		err := repo.Update(ctx, cart)

		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
