package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	cacheMocks "github.com/nearbasket/nearbasket-api/internal/cache/mocks"
	appErrors "github.com/nearbasket/nearbasket-api/internal/errors"
	"github.com/nearbasket/nearbasket-api/internal/models"
	repository "github.com/nearbasket/nearbasket-api/internal/repositories"
	"github.com/nearbasket/nearbasket-api/internal/repositories/mocks"
	service "github.com/nearbasket/nearbasket-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCartServiceTest(t *testing.T) (service.CartService, *mocks.CartRepository, *mocks.CatalogRepository, *cacheMocks.Cache) {
	mockCartRepo := mocks.NewCartRepository(t)
	mockCatalogRepo := mocks.NewCatalogRepository(t)
	mockCache := cacheMocks.NewCache(t)
	cartService := service.NewCartService(mockCartRepo, mockCatalogRepo, mockCache, 2*time.Minute, 3)

	return cartService, mockCartRepo, mockCatalogRepo, mockCache
}

func cartWith(userID uuid.UUID, items ...models.CartItem) *models.Cart {
	return &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items:  items,
	}
}

// expectPopulation wires the cache-miss population path for the given
// products, in cart-line order.
func expectPopulation(ctx context.Context, mockCatalogRepo *mocks.CatalogRepository, mockCache *cacheMocks.Cache, products ...*models.Product) {
	ids := make([]uuid.UUID, 0, len(products))
	found := make(map[uuid.UUID]*models.Product, len(products))

	for _, product := range products {
		ids = append(ids, product.ID)
		found[product.ID] = product
		mockCache.On("Get", ctx, "product:"+product.ID.String(), mock.Anything).Return(false, nil).Once()
		mockCache.On("Set", ctx, "product:"+product.ID.String(), product, 2*time.Minute).Return(nil).Once()
	}

	mockCatalogRepo.On("FindProductsByIDs", ctx, ids).Return(found, nil).Once()
}

func TestGetCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - Creates Cart On First Use", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		mockCartRepo.On("GetByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()
		mockCartRepo.On("Create", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.GetCart(ctx, userID)

		// Assert
		assert.NoError(t, err)
		require.NotNil(t, cart)
		assert.Equal(t, userID, cart.UserID)
		assert.Empty(t, cart.Items)
	})

	t.Run("Success - Populates Items From Catalog On Cache Miss", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockCatalogRepo, mockCache := setupCartServiceTest(t)
		productID := uuid.New()
		existing := cartWith(userID, models.CartItem{ProductID: productID, Quantity: 2, PriceAtAdd: 100})
		product := &models.Product{ID: productID, Name: "Basmati Rice", Price: 100, Unit: "kg"}

		mockCartRepo.On("GetByUserID", ctx, userID).Return(existing, nil).Once()
		mockCache.On("Get", ctx, "product:"+productID.String(), mock.Anything).Return(false, nil).Once()
		mockCatalogRepo.On("FindProductsByIDs", ctx, []uuid.UUID{productID}).
			Return(map[uuid.UUID]*models.Product{productID: product}, nil).Once()
		mockCache.On("Set", ctx, "product:"+productID.String(), product, 2*time.Minute).Return(nil).Once()

		// Act
		cart, err := cartService.GetCart(ctx, userID)

		// Assert
		assert.NoError(t, err)
		require.Len(t, cart.Items, 1)
		require.NotNil(t, cart.Items[0].Product)
		assert.Equal(t, "Basmati Rice", cart.Items[0].Product.Name)
	})

	t.Run("Success - Population Failure Degrades Gracefully", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockCatalogRepo, mockCache := setupCartServiceTest(t)
		productID := uuid.New()
		existing := cartWith(userID, models.CartItem{ProductID: productID, Quantity: 1})

		mockCartRepo.On("GetByUserID", ctx, userID).Return(existing, nil).Once()
		mockCache.On("Get", ctx, mock.Anything, mock.Anything).Return(false, errors.New("redis down")).Once()
		mockCatalogRepo.On("FindProductsByIDs", ctx, []uuid.UUID{productID}).
			Return(nil, errors.New("db down")).Once()

		// Act
		cart, err := cartService.GetCart(ctx, userID)

		// Assert
		assert.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Nil(t, cart.Items[0].Product)
	})
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success - New Line Snapshots Current Prices", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockCatalogRepo, mockCache := setupCartServiceTest(t)
		offer := 150.0
		product := &models.Product{ID: productID, Name: "Ghee", Price: 200, OfferPrice: &offer, Unit: "litre"}

		mockCatalogRepo.On("FindProduct", ctx, productID, (*uuid.UUID)(nil)).Return(product, nil).Once()
		mockCartRepo.On("GetByUserID", ctx, userID).Return(cartWith(userID), nil).Once()
		mockCartRepo.On("Update", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()
		expectPopulation(ctx, mockCatalogRepo, mockCache, product)

		// Act
		cart, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: productID})

		// Assert
		assert.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 1, cart.Items[0].Quantity)
		assert.Equal(t, 200.0, cart.Items[0].PriceAtAdd)
		assert.Equal(t, 150.0, cart.Items[0].OfferPriceAtAdd)
		assert.Equal(t, "litre", cart.Items[0].Unit)
		// Mutation responses come back catalog-populated, like GetCart.
		require.NotNil(t, cart.Items[0].Product)
		assert.Equal(t, "Ghee", cart.Items[0].Product.Name)
	})

	t.Run("Success - Existing Line Increments Quantity", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockCatalogRepo, mockCache := setupCartServiceTest(t)
		product := &models.Product{ID: productID, Price: 50}
		existing := cartWith(userID, models.CartItem{ProductID: productID, Quantity: 2, PriceAtAdd: 45})

		mockCatalogRepo.On("FindProduct", ctx, productID, (*uuid.UUID)(nil)).Return(product, nil).Once()
		mockCartRepo.On("GetByUserID", ctx, userID).Return(existing, nil).Once()
		mockCartRepo.On("Update", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()
		expectPopulation(ctx, mockCatalogRepo, mockCache, product)

		// Act
		cart, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: productID, Quantity: 3})

		// Assert
		assert.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 5, cart.Items[0].Quantity)
		// Snapshot prices stay from the original add.
		assert.Equal(t, 45.0, cart.Items[0].PriceAtAdd)
	})

	t.Run("Success - Same Product Different Store Is A Separate Line", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockCatalogRepo, mockCache := setupCartServiceTest(t)
		storeID := uuid.New()
		product := &models.Product{ID: productID, StoreID: &storeID, Price: 60}
		existing := cartWith(userID, models.CartItem{ProductID: productID, Quantity: 1})

		mockCatalogRepo.On("FindProduct", ctx, productID, &storeID).Return(product, nil).Once()
		mockCartRepo.On("GetByUserID", ctx, userID).Return(existing, nil).Once()
		mockCartRepo.On("Update", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()
		// Both lines share the product ID, so population fetches it once.
		expectPopulation(ctx, mockCatalogRepo, mockCache, product)

		// Act
		cart, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: productID, StoreID: &storeID})

		// Assert
		assert.NoError(t, err)
		require.Len(t, cart.Items, 2)
		assert.Nil(t, cart.Items[0].StoreID)
		require.NotNil(t, cart.Items[1].StoreID)
		assert.Equal(t, storeID, *cart.Items[1].StoreID)
	})

	t.Run("Failure - Product Not In Scope", func(t *testing.T) {
		// Arrange
		cartService, _, mockCatalogRepo, _ := setupCartServiceTest(t)
		storeID := uuid.New()
		mockCatalogRepo.On("FindProduct", ctx, productID, &storeID).Return(nil, sql.ErrNoRows).Once()

		// Act
		cart, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: productID, StoreID: &storeID})

		// Assert
		assert.Nil(t, cart)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Product not found or inactive", appErr.Message)
	})

	t.Run("Success - Retries On Version Conflict", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockCatalogRepo, mockCache := setupCartServiceTest(t)
		product := &models.Product{ID: productID, Price: 10}

		mockCatalogRepo.On("FindProduct", ctx, productID, (*uuid.UUID)(nil)).Return(product, nil).Once()
		mockCartRepo.On("GetByUserID", ctx, userID).Return(cartWith(userID), nil).Twice()
		mockCartRepo.On("Update", ctx, mock.AnythingOfType("*models.Cart")).Return(repository.ErrVersionConflict).Once()
		mockCartRepo.On("Update", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()
		expectPopulation(ctx, mockCatalogRepo, mockCache, product)

		// Act
		cart, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: productID})

		// Assert
		assert.NoError(t, err)
		require.Len(t, cart.Items, 1)
	})

	t.Run("Failure - Gives Up After Repeated Conflicts", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockCatalogRepo, _ := setupCartServiceTest(t)
		product := &models.Product{ID: productID, Price: 10}

		mockCatalogRepo.On("FindProduct", ctx, productID, (*uuid.UUID)(nil)).Return(product, nil).Once()
		mockCartRepo.On("GetByUserID", ctx, userID).Return(cartWith(userID), nil).Times(3)
		mockCartRepo.On("Update", ctx, mock.AnythingOfType("*models.Cart")).Return(repository.ErrVersionConflict).Times(3)

		// Act
		cart, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: productID})

		// Assert
		assert.Nil(t, cart)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
	})
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success - Sets Quantity", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockCatalogRepo, mockCache := setupCartServiceTest(t)
		product := &models.Product{ID: productID, Name: "Toor Dal"}
		existing := cartWith(userID, models.CartItem{ProductID: productID, Quantity: 1})

		mockCartRepo.On("GetByUserID", ctx, userID).Return(existing, nil).Once()
		mockCartRepo.On("Update", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()
		expectPopulation(ctx, mockCatalogRepo, mockCache, product)

		// Act
		cart, err := cartService.UpdateQuantity(ctx, userID, &models.UpdateQuantityRequest{ProductID: productID, Quantity: 7})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 7, cart.Items[0].Quantity)
		require.NotNil(t, cart.Items[0].Product)
		assert.Equal(t, "Toor Dal", cart.Items[0].Product.Name)
	})

	t.Run("Success - Zero Removes The Line", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		existing := cartWith(userID, models.CartItem{ProductID: productID, Quantity: 4})

		mockCartRepo.On("GetByUserID", ctx, userID).Return(existing, nil).Once()
		mockCartRepo.On("Update", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.UpdateQuantity(ctx, userID, &models.UpdateQuantityRequest{ProductID: productID, Quantity: 0})

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("Failure - Missing Line", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		mockCartRepo.On("GetByUserID", ctx, userID).Return(cartWith(userID), nil).Once()

		// Act
		cart, err := cartService.UpdateQuantity(ctx, userID, &models.UpdateQuantityRequest{ProductID: productID, Quantity: 2})

		// Assert
		assert.Nil(t, cart)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestDecreaseItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success - Default Decrement Is One", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockCatalogRepo, mockCache := setupCartServiceTest(t)
		product := &models.Product{ID: productID, Name: "Curd"}
		existing := cartWith(userID, models.CartItem{ProductID: productID, Quantity: 3})

		mockCartRepo.On("GetByUserID", ctx, userID).Return(existing, nil).Once()
		mockCartRepo.On("Update", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()
		expectPopulation(ctx, mockCatalogRepo, mockCache, product)

		// Act
		cart, err := cartService.DecreaseItem(ctx, userID, &models.DecreaseItemRequest{ProductID: productID})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 2, cart.Items[0].Quantity)
		require.NotNil(t, cart.Items[0].Product)
	})

	t.Run("Success - Reaching Zero Removes The Line", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		existing := cartWith(userID, models.CartItem{ProductID: productID, Quantity: 2})

		mockCartRepo.On("GetByUserID", ctx, userID).Return(existing, nil).Once()
		mockCartRepo.On("Update", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.DecreaseItem(ctx, userID, &models.DecreaseItemRequest{ProductID: productID, DecrementBy: 5})

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, cart.Items)
	})
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - Clears Everything", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		storeID := uuid.New()
		existing := cartWith(userID,
			models.CartItem{ProductID: uuid.New(), Quantity: 1},
			models.CartItem{ProductID: uuid.New(), StoreID: &storeID, Quantity: 2},
		)

		mockCartRepo.On("GetByUserID", ctx, userID).Return(existing, nil).Once()
		mockCartRepo.On("Update", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.Clear(ctx, userID, nil, false)

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("Success - Scoped Clear Keeps Other Scopes", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockCatalogRepo, mockCache := setupCartServiceTest(t)
		storeID := uuid.New()
		product := &models.Product{ID: uuid.New(), Name: "Atta"}
		existing := cartWith(userID,
			models.CartItem{ProductID: product.ID, Quantity: 1},
			models.CartItem{ProductID: uuid.New(), StoreID: &storeID, Quantity: 2},
		)

		mockCartRepo.On("GetByUserID", ctx, userID).Return(existing, nil).Once()
		mockCartRepo.On("Update", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()
		expectPopulation(ctx, mockCatalogRepo, mockCache, product)

		// Act
		cart, err := cartService.Clear(ctx, userID, &storeID, true)

		// Assert
		assert.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, product.ID, cart.Items[0].ProductID)
		require.NotNil(t, cart.Items[0].Product)
	})

	t.Run("Success - Empty Cart Is A No-Op", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		mockCartRepo.On("GetByUserID", ctx, userID).Return(cartWith(userID), nil).Once()

		// Act
		cart, err := cartService.Clear(ctx, userID, nil, false)

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, cart.Items)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		existing := cartWith(userID, models.CartItem{ProductID: productID, Quantity: 1})

		mockCartRepo.On("GetByUserID", ctx, userID).Return(existing, nil).Once()
		mockCartRepo.On("Update", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.RemoveItem(ctx, userID, productID, nil)

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("Failure - Wrong Scope", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		storeID := uuid.New()
		existing := cartWith(userID, models.CartItem{ProductID: productID, StoreID: &storeID, Quantity: 1})

		mockCartRepo.On("GetByUserID", ctx, userID).Return(existing, nil).Once()

		// Act: the line exists under the store scope, not the global one.
		cart, err := cartService.RemoveItem(ctx, userID, productID, nil)

		// Assert
		assert.Nil(t, cart)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
