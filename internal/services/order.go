package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	appErrors "github.com/nearbasket/nearbasket-api/internal/errors"
	"github.com/nearbasket/nearbasket-api/internal/models"
	repository "github.com/nearbasket/nearbasket-api/internal/repositories"
	"github.com/nearbasket/nearbasket-api/pkg/emailer"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type OrderService interface {
	// Checkout converts the cart lines matching req.StoreID into an order.
	// idempotencyKey may be empty; when set, retries with the same key
	// return the original order.
	Checkout(ctx context.Context, userID uuid.UUID, idempotencyKey string, req *models.CheckoutRequest) (*models.Order, error)

	ListMyOrders(ctx context.Context, userID uuid.UUID, scope string, storeID *uuid.UUID, page, size int) (*models.PaginatedResponse, error)
	GetMyOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)

	AdminListOrders(ctx context.Context, filter models.OrderListFilter, page, size int) (*models.PaginatedResponse, error)
	AdminGetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error)
	SoftDelete(ctx context.Context, orderID uuid.UUID) error

	StoreOrders(ctx context.Context, storeID uuid.UUID, filter models.OrderListFilter, page, size int) (*models.PaginatedResponse, *models.StoreOrderStats, error)
	StoreOrder(ctx context.Context, storeID, orderID uuid.UUID) (*models.Order, error)
	StoreUpdateStatus(ctx context.Context, storeID, orderID uuid.UUID, req *models.StoreOrderStatusRequest) (*models.Order, error)
	StoreDashboard(ctx context.Context, storeID uuid.UUID) (*models.StoreDashboard, error)
}

type orderService struct {
	repo        repository.OrderRepository
	cartRepo    repository.CartRepository
	catalog     repository.CatalogRepository
	idempotency repository.IdempotencyRepository
	emailer     emailer.EmailService
	sanitizer   *bluemonday.Policy
	maxRetries  int
}

func NewOrderService(repo repository.OrderRepository, cartRepo repository.CartRepository, catalog repository.CatalogRepository, idempotency repository.IdempotencyRepository, emailService emailer.EmailService, maxRetries int) OrderService {
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &orderService{
		repo:        repo,
		cartRepo:    cartRepo,
		catalog:     catalog,
		idempotency: idempotency,
		emailer:     emailService,
		sanitizer:   bluemonday.StrictPolicy(),
		maxRetries:  maxRetries,
	}
}

func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, idempotencyKey string, req *models.CheckoutRequest) (*models.Order, error) {
	if idempotencyKey == "" {
		return s.checkoutWithRetry(ctx, userID, req)
	}

	orderID, found, err := s.idempotency.Lookup(ctx, userID, idempotencyKey)
	if err != nil {
		return nil, appErrors.InternalError("Failed to check idempotency key").WithError(err)
	}

	if found {
		return s.fetchOrder(ctx, orderID)
	}

	reserved, err := s.idempotency.Reserve(ctx, userID, idempotencyKey)
	if err != nil {
		return nil, appErrors.InternalError("Failed to reserve idempotency key").WithError(err)
	}

	if !reserved {
		// Another attempt holds the key. It may have finished by now.
		orderID, found, err = s.idempotency.Lookup(ctx, userID, idempotencyKey)
		if err == nil && found {
			return s.fetchOrder(ctx, orderID)
		}

		return nil, appErrors.DuplicateEntryError("A checkout with this idempotency key is already in progress")
	}

	order, err := s.checkoutWithRetry(ctx, userID, req)
	if err != nil {
		if releaseErr := s.idempotency.Release(ctx, userID, idempotencyKey); releaseErr != nil {
			slog.WarnContext(ctx, "failed to release idempotency key", slog.Any("error", releaseErr))
		}

		return nil, err
	}

	if err := s.idempotency.Complete(ctx, userID, idempotencyKey, order.ID); err != nil {
		slog.WarnContext(ctx, "failed to record idempotency result", slog.String("orderId", order.ID.String()), slog.Any("error", err))
	}

	return order, nil
}

func (s *orderService) checkoutWithRetry(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.Order, error) {
	var lastErr error

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		order, err := s.checkoutOnce(ctx, userID, req)
		if err == nil {
			return order, nil
		}

		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}

		lastErr = err
	}

	return nil, appErrors.DuplicateEntryError("Cart was modified concurrently, please retry").WithError(lastErr)
}

// checkoutOnce runs one attempt of the checkout pipeline: load the cart,
// validate the store scope, re-resolve every line against the current
// catalog, and persist order plus shrunken cart in one transaction.
func (s *orderService) checkoutOnce(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.Order, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.EmptyCartError("Cart is empty")
		}

		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if len(cart.Items) == 0 {
		return nil, appErrors.EmptyCartError("Cart is empty")
	}

	if req.StoreID != nil {
		if _, err := s.catalog.FindStore(ctx, *req.StoreID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.NotFoundError("Store not found or inactive")
			}

			return nil, appErrors.DatabaseError("Failed to fetch store").WithError(err)
		}
	}

	scopeItems := cart.ItemsInScope(req.StoreID)
	if len(scopeItems) == 0 {
		if req.StoreID == nil {
			return nil, appErrors.NoItemsForScopeError("No marketplace items in cart; pass store_id to check out a store's items")
		}

		return nil, appErrors.NoItemsForScopeError("No items from this store in cart")
	}

	var subtotal, grandTotal float64

	orderItems := make([]models.OrderItem, 0, len(scopeItems))

	for _, item := range scopeItems {
		product, err := s.catalog.FindProduct(ctx, item.ProductID, item.StoreID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.ProductUnavailableError(fmt.Sprintf("Product %s is no longer available", item.ProductID))
			}

			return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
		}

		price := product.Price
		offer := product.SellingPrice()
		lineTotal := offer * float64(item.Quantity)

		subtotal += price * float64(item.Quantity)
		grandTotal += lineTotal

		orderItems = append(orderItems, models.OrderItem{
			ProductID:     product.ID,
			Name:          product.Name,
			Images:        product.Images,
			Unit:          item.Unit,
			Quantity:      item.Quantity,
			Price:         price,
			OfferPrice:    offer,
			PercentageOff: percentageOff(price, offer),
			LineTotal:     lineTotal,
		})
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCOD
	}

	now := time.Now()

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          userID,
		StoreID:         req.StoreID,
		Items:           orderItems,
		Subtotal:        subtotal,
		TotalDiscount:   subtotal - grandTotal,
		GrandTotal:      grandTotal,
		Status:          models.OrderStatusPending,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
		ShippingAddress: s.sanitizeAddress(req),
		Notes:           s.sanitizer.Sanitize(req.Notes),
		StatusHistory: []models.StatusChange{
			{Status: string(models.OrderStatusPending), ChangedAt: now, ChangedBy: "checkout"},
		},
	}

	remaining := cart.ItemsOutOfScope(req.StoreID)
	if remaining == nil {
		remaining = []models.CartItem{}
	}

	cart.Items = remaining

	if err := s.repo.Checkout(ctx, order, cart); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}

		return nil, appErrors.DatabaseError("Failed to place order").WithError(err)
	}

	return order, nil
}

// percentageOff is the discount as a whole percentage, rounded to nearest.
func percentageOff(price, offer float64) int {
	if price <= 0 || offer >= price {
		return 0
	}

	return int(math.Round(100 * (price - offer) / price))
}

func (s *orderService) sanitizeAddress(req *models.CheckoutRequest) models.ShippingAddress {
	country := req.Country
	if country == "" {
		country = "India"
	}

	return models.ShippingAddress{
		FullName:     s.sanitizer.Sanitize(req.FullName),
		Mobile:       s.sanitizer.Sanitize(req.Mobile),
		Email:        s.sanitizer.Sanitize(req.Email),
		AddressLine1: s.sanitizer.Sanitize(req.AddressLine1),
		AddressLine2: s.sanitizer.Sanitize(req.AddressLine2),
		Landmark:     s.sanitizer.Sanitize(req.Landmark),
		City:         s.sanitizer.Sanitize(req.City),
		State:        s.sanitizer.Sanitize(req.State),
		Pincode:      s.sanitizer.Sanitize(req.Pincode),
		Country:      s.sanitizer.Sanitize(country),
		Location: models.GeoPoint{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			Accuracy:  req.Accuracy,
		},
	}
}

func (s *orderService) fetchOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

func (s *orderService) ListMyOrders(ctx context.Context, userID uuid.UUID, scope string, storeID *uuid.UUID, page, size int) (*models.PaginatedResponse, error) {
	filter := models.OrderListFilter{UserID: &userID, Scope: scope, StoreID: storeID}

	return s.list(ctx, filter, page, size)
}

func (s *orderService) GetMyOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.fetchOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		return nil, appErrors.NotFoundError("Order not found")
	}

	return order, nil
}

func (s *orderService) AdminListOrders(ctx context.Context, filter models.OrderListFilter, page, size int) (*models.PaginatedResponse, error) {
	return s.list(ctx, filter, page, size)
}

func (s *orderService) AdminGetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.fetchOrder(ctx, orderID)
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	if req.Status == nil && req.PaymentStatus == nil {
		return nil, appErrors.ValidationError("At least one of status or payment_status is required")
	}

	order, err := s.fetchOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	update, err := buildStatusUpdate(order, req.Status, req.PaymentStatus, "admin")
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, orderID, nil, update)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found")
		}

		return nil, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	s.notifyStatusChange(ctx, updated, req.Status)

	return updated, nil
}

func (s *orderService) SoftDelete(ctx context.Context, orderID uuid.UUID) error {
	if _, err := s.fetchOrder(ctx, orderID); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, orderID); err != nil {
		return appErrors.DatabaseError("Failed to delete order").WithError(err)
	}

	return nil
}

func (s *orderService) StoreOrders(ctx context.Context, storeID uuid.UUID, filter models.OrderListFilter, page, size int) (*models.PaginatedResponse, *models.StoreOrderStats, error) {
	filter.StoreID = &storeID
	filter.Scope = ""

	result, err := s.list(ctx, filter, page, size)
	if err != nil {
		return nil, nil, err
	}

	stats, err := s.repo.StoreStats(ctx, storeID, filter)
	if err != nil {
		return nil, nil, appErrors.DatabaseError("Failed to fetch store stats").WithError(err)
	}

	return result, stats, nil
}

func (s *orderService) StoreOrder(ctx context.Context, storeID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.fetchOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.StoreID == nil || *order.StoreID != storeID {
		return nil, appErrors.NotFoundError("Order not found")
	}

	return order, nil
}

func (s *orderService) StoreUpdateStatus(ctx context.Context, storeID, orderID uuid.UUID, req *models.StoreOrderStatusRequest) (*models.Order, error) {
	order, err := s.StoreOrder(ctx, storeID, orderID)
	if err != nil {
		return nil, err
	}

	status := req.Status

	update, err := buildStatusUpdate(order, &status, nil, "store_owner")
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, orderID, &storeID, update)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found")
		}

		return nil, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	s.notifyStatusChange(ctx, updated, &status)

	return updated, nil
}

func (s *orderService) StoreDashboard(ctx context.Context, storeID uuid.UUID) (*models.StoreDashboard, error) {
	allTime, err := s.repo.StoreStats(ctx, storeID, models.OrderListFilter{})
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch store stats").WithError(err)
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	today, err := s.repo.StoreRevenueSince(ctx, storeID, startOfDay)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch today's revenue").WithError(err)
	}

	month, err := s.repo.StoreRevenueSince(ctx, storeID, startOfMonth)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch month's revenue").WithError(err)
	}

	dashboard := &models.StoreDashboard{
		TodaysOrders: today,
		MonthsOrders: month,
		AllTime:      *allTime,
	}

	if allTime.Total > 0 {
		dashboard.AvgOrderValue = allTime.TotalRevenue / float64(allTime.Total)
	}

	return dashboard, nil
}

func (s *orderService) list(ctx context.Context, filter models.OrderListFilter, page, size int) (*models.PaginatedResponse, error) {
	if page < 1 {
		page = 1
	}

	if size < 1 {
		size = defaultPageSize
	}

	if size > maxPageSize {
		size = maxPageSize
	}

	orders, total, err := s.repo.List(ctx, filter, page, size)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return &models.PaginatedResponse{
		Data:     orders,
		Total:    total,
		Page:     page,
		PageSize: size,
	}, nil
}

// buildStatusUpdate validates the requested transitions against the order's
// current state and produces the repository update with its history entry.
func buildStatusUpdate(order *models.Order, status *models.OrderStatus, paymentStatus *models.PaymentStatus, actor string) (repository.StatusUpdate, error) {
	var update repository.StatusUpdate

	historyStatus := ""

	if status != nil {
		if !order.Status.CanTransitionTo(*status) {
			return update, appErrors.InvalidTransitionError(fmt.Sprintf("Cannot change order status from %s to %s", order.Status, *status))
		}

		update.Status = status
		historyStatus = string(*status)
	}

	if paymentStatus != nil {
		if !order.PaymentStatus.CanTransitionTo(*paymentStatus) {
			return update, appErrors.InvalidTransitionError(fmt.Sprintf("Cannot change payment status from %s to %s", order.PaymentStatus, *paymentStatus))
		}

		update.PaymentStatus = paymentStatus

		if historyStatus == "" {
			historyStatus = "payment:" + string(*paymentStatus)
		}
	}

	update.Change = models.StatusChange{
		Status:    historyStatus,
		ChangedAt: time.Now(),
		ChangedBy: actor,
	}

	return update, nil
}

// notifyStatusChange emails the shipping contact. Failures are logged, never
// surfaced; order updates must not depend on the mail provider.
func (s *orderService) notifyStatusChange(ctx context.Context, order *models.Order, status *models.OrderStatus) {
	if s.emailer == nil || status == nil || order.ShippingAddress.Email == "" {
		return
	}

	if err := s.emailer.SendOrderStatusUpdate(ctx, order); err != nil {
		slog.WarnContext(ctx, "failed to send order status email",
			slog.String("orderId", order.ID.String()), slog.Any("error", err))
	}
}
