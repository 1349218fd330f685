package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nearbasket/nearbasket-api/internal/api/middleware"
	"github.com/nearbasket/nearbasket-api/internal/errors"
	"github.com/nearbasket/nearbasket-api/internal/models"
	service "github.com/nearbasket/nearbasket-api/internal/services"
	"github.com/nearbasket/nearbasket-api/internal/utils"
	"github.com/nearbasket/nearbasket-api/internal/utils/response"
)

// StoreOrderHandler is the vendor-facing order surface. Every route takes
// the store from the path and checks the caller may act for it.
type StoreOrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewStoreOrderHandler(orderService service.OrderService) *StoreOrderHandler {
	return &StoreOrderHandler{orderService: orderService, validator: validator.New()}
}

// resolveStore parses the path store ID and rejects callers who neither own
// the store nor hold the admin role.
func resolveStore(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return uuid.Nil, false
	}

	storeID, err := utils.ParseID(r, "storeId")
	if err != nil {
		response.Error(w, err)
		return uuid.Nil, false
	}

	if !claims.OwnsStore(storeID) {
		middleware.LoggerFromContext(r.Context()).Warn("Store access denied",
			slog.String("storeId", storeID.String()), slog.String("role", claims.Role))
		response.Error(w, errors.ForbiddenError("You do not manage this store"))

		return uuid.Nil, false
	}

	return storeID, true
}

// ListOrders godoc
//
//	@Summary		List a store's orders
//	@Description	Lists the store's orders with aggregate counters, filterable by status and date range.
//	@Tags			Store
//	@Produce		json
//	@Param			storeId	path		string					true	"Store ID (UUID)"	Format(uuid)
//	@Param			status	query		string					false	"Order status"
//	@Param			from	query		string					false	"Start date (RFC 3339)"
//	@Param			to		query		string					false	"End date (RFC 3339)"
//	@Param			page	query		int						false	"Page number"
//	@Param			size	query		int						false	"Page size"
//	@Success		200		{object}	response.APIResponse	"Orders page plus stats"
//	@Failure		403		{object}	response.ErrorResponse	"Caller does not manage this store"
//	@Security		BearerAuth
//	@Router			/stores/{storeId}/orders [get]
func (h *StoreOrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		storeID, ok := resolveStore(w, r)
		if !ok {
			return
		}

		filter, err := parseOrderFilter(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		page, size := parsePagination(r)

		result, stats, err := h.orderService.StoreOrders(r.Context(), storeID, filter, page, size)
		if err != nil {
			logger.Error("Failed to list store orders", slog.String("storeId", storeID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"orders": result,
			"stats":  stats,
		})
	}
}

// GetOrder godoc
//
//	@Summary		Get one of the store's orders
//	@Tags			Store
//	@Produce		json
//	@Param			storeId	path		string					true	"Store ID (UUID)"	Format(uuid)
//	@Param			orderId	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200		{object}	models.Order			"Order"
//	@Failure		404		{object}	response.ErrorResponse	"Order not found for this store"
//	@Security		BearerAuth
//	@Router			/stores/{storeId}/orders/{orderId} [get]
func (h *StoreOrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		storeID, ok := resolveStore(w, r)
		if !ok {
			return
		}

		orderID, err := utils.ParseID(r, "orderId")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.StoreOrder(r.Context(), storeID, orderID)
		if err != nil {
			logger.Warn("Failed to fetch store order", slog.String("orderId", orderID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// UpdateOrderStatus godoc
//
//	@Summary		Update a store order's status
//	@Description	Moves the order along its lifecycle on behalf of the store. Payment status and the pending state are out of reach here.
//	@Tags			Store
//	@Accept			json
//	@Produce		json
//	@Param			storeId	path		string							true	"Store ID (UUID)"	Format(uuid)
//	@Param			orderId	path		string							true	"Order ID (UUID)"	Format(uuid)
//	@Param			update	body		models.StoreOrderStatusRequest	true	"New status"
//	@Success		200		{object}	models.Order					"Updated order"
//	@Failure		400		{object}	response.ErrorResponse			"Invalid transition"
//	@Failure		404		{object}	response.ErrorResponse			"Order not found for this store"
//	@Security		BearerAuth
//	@Router			/stores/{storeId}/orders/{orderId}/status [patch]
func (h *StoreOrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		storeID, ok := resolveStore(w, r)
		if !ok {
			return
		}

		orderID, err := utils.ParseID(r, "orderId")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.StoreOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.StoreUpdateStatus(r.Context(), storeID, orderID, &req)
		if err != nil {
			logger.Error("Failed to update store order status",
				slog.String("orderId", orderID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Store order status updated",
			slog.String("orderId", orderID.String()),
			slog.String("status", string(order.Status)))
		response.Success(w, http.StatusOK, order)
	}
}

// Dashboard godoc
//
//	@Summary		Store dashboard
//	@Description	Today's and this month's order counts and revenue, all-time counters and the average order value.
//	@Tags			Store
//	@Produce		json
//	@Param			storeId	path		string					true	"Store ID (UUID)"	Format(uuid)
//	@Success		200		{object}	models.StoreDashboard	"Dashboard"
//	@Failure		403		{object}	response.ErrorResponse	"Caller does not manage this store"
//	@Security		BearerAuth
//	@Router			/stores/{storeId}/dashboard [get]
func (h *StoreOrderHandler) Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		storeID, ok := resolveStore(w, r)
		if !ok {
			return
		}

		dashboard, err := h.orderService.StoreDashboard(r.Context(), storeID)
		if err != nil {
			logger.Error("Failed to build store dashboard", slog.String("storeId", storeID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, dashboard)
	}
}
