package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nearbasket/nearbasket-api/internal/cache"
	appErrors "github.com/nearbasket/nearbasket-api/internal/errors"
	"github.com/nearbasket/nearbasket-api/internal/models"
	repository "github.com/nearbasket/nearbasket-api/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error)
	DecreaseItem(ctx context.Context, userID uuid.UUID, req *models.DecreaseItemRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID, storeID *uuid.UUID) (*models.Cart, error)
	Clear(ctx context.Context, userID uuid.UUID, storeID *uuid.UUID, scoped bool) (*models.Cart, error)
}

type cartService struct {
	repo       repository.CartRepository
	catalog    repository.CatalogRepository
	cache      cache.Cache
	productTTL time.Duration
	maxRetries int
}

func NewCartService(repo repository.CartRepository, catalog repository.CatalogRepository, productCache cache.Cache, productTTL time.Duration, maxRetries int) CartService {
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &cartService{repo: repo, catalog: catalog, cache: productCache, productTTL: productTTL, maxRetries: maxRetries}
}

// getOrCreate returns the user's cart, creating an empty one on first use.
func (s *cartService) getOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	cart = &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items:  []models.CartItem{},
	}

	if createErr := s.repo.Create(ctx, cart); createErr != nil {
		// A concurrent first request may have created the row already.
		cart, err = s.repo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, appErrors.DatabaseError("Failed to create cart").WithError(createErr)
		}
	}

	return cart, nil
}

// withCart runs a read-modify-write cycle against the cart, retrying on
// version conflicts. The mutate callback returns false to skip the write.
func (s *cartService) withCart(ctx context.Context, userID uuid.UUID, mutate func(cart *models.Cart) (bool, error)) (*models.Cart, error) {
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		cart, err := s.getOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}

		dirty, err := mutate(cart)
		if err != nil {
			return nil, err
		}

		if !dirty {
			return cart, nil
		}

		err = s.repo.Update(ctx, cart)
		if err == nil {
			return cart, nil
		}

		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
		}
	}

	return nil, appErrors.DuplicateEntryError("Cart was modified concurrently, please retry")
}

// withPopulatedCart is withCart plus catalog population, so mutation
// responses carry the same product details as GetCart.
func (s *cartService) withPopulatedCart(ctx context.Context, userID uuid.UUID, mutate func(cart *models.Cart) (bool, error)) (*models.Cart, error) {
	cart, err := s.withCart(ctx, userID, mutate)
	if err != nil {
		return nil, err
	}

	s.populate(ctx, cart)

	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.populate(ctx, cart)

	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	product, err := s.resolveProduct(ctx, req.ProductID, req.StoreID)
	if err != nil {
		return nil, err
	}

	return s.withPopulatedCart(ctx, userID, func(cart *models.Cart) (bool, error) {
		idx := cart.FindItem(req.ProductID, req.StoreID)
		if idx >= 0 {
			cart.Items[idx].Quantity += quantity

			return true, nil
		}

		unit := product.Unit
		if unit == "" {
			unit = "piece"
		}

		cart.Items = append(cart.Items, models.CartItem{
			ProductID:       req.ProductID,
			StoreID:         req.StoreID,
			Quantity:        quantity,
			PriceAtAdd:      product.Price,
			OfferPriceAtAdd: product.SellingPrice(),
			Unit:            unit,
		})

		return true, nil
	})
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error) {
	return s.withPopulatedCart(ctx, userID, func(cart *models.Cart) (bool, error) {
		idx := cart.FindItem(req.ProductID, req.StoreID)
		if idx < 0 {
			return false, appErrors.NotFoundError("Item not found in cart")
		}

		if req.Quantity <= 0 {
			cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

			return true, nil
		}

		cart.Items[idx].Quantity = req.Quantity

		return true, nil
	})
}

func (s *cartService) DecreaseItem(ctx context.Context, userID uuid.UUID, req *models.DecreaseItemRequest) (*models.Cart, error) {
	decrement := req.DecrementBy
	if decrement == 0 {
		decrement = 1
	}

	return s.withPopulatedCart(ctx, userID, func(cart *models.Cart) (bool, error) {
		idx := cart.FindItem(req.ProductID, req.StoreID)
		if idx < 0 {
			return false, appErrors.NotFoundError("Item not found in cart")
		}

		cart.Items[idx].Quantity -= decrement
		if cart.Items[idx].Quantity <= 0 {
			cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		}

		return true, nil
	})
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID, storeID *uuid.UUID) (*models.Cart, error) {
	return s.withPopulatedCart(ctx, userID, func(cart *models.Cart) (bool, error) {
		idx := cart.FindItem(productID, storeID)
		if idx < 0 {
			return false, appErrors.NotFoundError("Item not found in cart")
		}

		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

		return true, nil
	})
}

// Clear empties the cart, or just one store scope when scoped is true.
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID, storeID *uuid.UUID, scoped bool) (*models.Cart, error) {
	return s.withPopulatedCart(ctx, userID, func(cart *models.Cart) (bool, error) {
		if !scoped {
			if len(cart.Items) == 0 {
				return false, nil
			}

			cart.Items = []models.CartItem{}

			return true, nil
		}

		remaining := cart.ItemsOutOfScope(storeID)
		if len(remaining) == len(cart.Items) {
			return false, nil
		}

		if remaining == nil {
			remaining = []models.CartItem{}
		}

		cart.Items = remaining

		return true, nil
	})
}

// resolveProduct looks up the product within its store scope. Absence,
// soft-deletion, inactivity and scope mismatch all land in the same error.
func (s *cartService) resolveProduct(ctx context.Context, productID uuid.UUID, storeID *uuid.UUID) (*models.Product, error) {
	product, err := s.catalog.FindProduct(ctx, productID, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found or inactive")
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

// populate attaches current catalog details to cart lines for display.
// Failures degrade to an unpopulated cart; checkout never relies on this.
func (s *cartService) populate(ctx context.Context, cart *models.Cart) {
	if len(cart.Items) == 0 {
		return
	}

	missing := make([]uuid.UUID, 0, len(cart.Items))
	found := make(map[uuid.UUID]*models.Product, len(cart.Items))

	for i := range cart.Items {
		id := cart.Items[i].ProductID
		if _, ok := found[id]; ok {
			continue
		}

		product := &models.Product{}

		hit, err := s.cache.Get(ctx, cache.Key(cache.ProductKeyPrefix, id.String()), product)
		if err != nil {
			slog.WarnContext(ctx, "product cache read failed", slog.String("productId", id.String()), slog.Any("error", err))
		}

		if hit && err == nil {
			found[id] = product
		} else {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		fetched, err := s.catalog.FindProductsByIDs(ctx, missing)
		if err != nil {
			slog.WarnContext(ctx, "cart population failed", slog.Any("error", err))
		}

		for id, product := range fetched {
			found[id] = product

			if err := s.cache.Set(ctx, cache.Key(cache.ProductKeyPrefix, id.String()), product, s.productTTL); err != nil {
				slog.WarnContext(ctx, "product cache write failed", slog.String("productId", id.String()), slog.Any("error", err))
			}
		}
	}

	for i := range cart.Items {
		cart.Items[i].Product = found[cart.Items[i].ProductID]
	}
}
