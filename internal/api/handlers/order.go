package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nearbasket/nearbasket-api/internal/api/middleware"
	"github.com/nearbasket/nearbasket-api/internal/errors"
	"github.com/nearbasket/nearbasket-api/internal/models"
	service "github.com/nearbasket/nearbasket-api/internal/services"
	"github.com/nearbasket/nearbasket-api/internal/utils"
	"github.com/nearbasket/nearbasket-api/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// Checkout godoc
//
//	@Summary		Check out the cart
//	@Description	Converts the cart lines in the requested store scope into an order, re-pricing every line against the current catalog. Repeating the request with the same Idempotency-Key header returns the original order.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			Idempotency-Key	header		string					false	"Client-chosen key for safe retries"
//	@Param			checkout		body		models.CheckoutRequest	true	"Store scope, shipping details and payment method"
//	@Success		201				{object}	models.Order			"Placed order"
//	@Failure		400				{object}	response.ErrorResponse	"Empty cart, no items for scope, or validation error"
//	@Failure		404				{object}	response.ErrorResponse	"Store not found or inactive"
//	@Failure		409				{object}	response.ErrorResponse	"A product became unavailable, or the cart changed concurrently"
//	@Failure		500				{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/checkout [post]
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		idempotencyKey := r.Header.Get("Idempotency-Key")

		order, err := h.orderService.Checkout(r.Context(), claims.UserID, idempotencyKey, &req)
		if err != nil {
			logger.Error("Checkout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order placed",
			slog.String("orderId", order.ID.String()),
			slog.Float64("grandTotal", order.GrandTotal))
		response.Success(w, http.StatusCreated, order)
	}
}

// ListOrders godoc
//
//	@Summary		List my orders
//	@Description	Lists the authenticated user's orders, newest first. scope=global selects marketplace orders, scope=store selects store orders; storeId pins one store.
//	@Tags			Orders
//	@Produce		json
//	@Param			scope	query		string							false	"global or store"
//	@Param			storeId	query		string							false	"Store ID (UUID)"
//	@Param			page	query		int								false	"Page number"
//	@Param			size	query		int								false	"Page size"
//	@Success		200		{object}	models.PaginatedResponse		"Orders page"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		scope := r.URL.Query().Get("scope")
		if scope != "" && scope != "global" && scope != "store" {
			response.Error(w, errors.AddValidationError("scope", "must be global or store"))
			return
		}

		storeID, err := utils.ParseOptionalStoreID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		page, size := parsePagination(r)

		result, err := h.orderService.ListMyOrders(r.Context(), claims.UserID, scope, storeID, page, size)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

// GetOrder godoc
//
//	@Summary		Get one of my orders
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Order			"Order"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetMyOrder(r.Context(), claims.UserID, id)
		if err != nil {
			logger.Warn("Failed to fetch order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// AdminListOrders godoc
//
//	@Summary		List all orders
//	@Description	Admin listing across users with optional status, scope, store and date-range filters.
//	@Tags			Admin
//	@Produce		json
//	@Param			status	query		string						false	"Order status"
//	@Param			scope	query		string						false	"global or store"
//	@Param			storeId	query		string						false	"Store ID (UUID)"
//	@Param			from	query		string						false	"Start date (RFC 3339)"
//	@Param			to		query		string						false	"End date (RFC 3339)"
//	@Param			page	query		int							false	"Page number"
//	@Param			size	query		int							false	"Page size"
//	@Success		200		{object}	models.PaginatedResponse	"Orders page"
//	@Failure		403		{object}	response.ErrorResponse		"Admin role required"
//	@Security		BearerAuth
//	@Router			/admin/orders [get]
func (h *OrderHandler) AdminListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		filter, err := parseOrderFilter(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		page, size := parsePagination(r)

		result, err := h.orderService.AdminListOrders(r.Context(), filter, page, size)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

// AdminGetOrder godoc
//
//	@Summary		Get any order
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Order			"Order"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Security		BearerAuth
//	@Router			/admin/orders/{id} [get]
func (h *OrderHandler) AdminGetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.AdminGetOrder(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to fetch order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// UpdateOrderStatus godoc
//
//	@Summary		Update order or payment status
//	@Description	Moves the order along its lifecycle and/or updates the payment axis. Illegal transitions are rejected.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Order ID (UUID)"	Format(uuid)
//	@Param			update	body		models.UpdateOrderStatusRequest	true	"New status values"
//	@Success		200		{object}	models.Order					"Updated order"
//	@Failure		400		{object}	response.ErrorResponse			"Invalid transition or empty update"
//	@Failure		404		{object}	response.ErrorResponse			"Order not found"
//	@Security		BearerAuth
//	@Router			/admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateStatus(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update order status", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated",
			slog.String("orderId", id.String()),
			slog.String("status", string(order.Status)),
			slog.String("paymentStatus", string(order.PaymentStatus)))
		response.Success(w, http.StatusOK, order)
	}
}

// DeleteOrder godoc
//
//	@Summary		Soft delete an order
//	@Description	Hides the order from all listings; the row is retained.
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	response.APIResponse	"Deleted"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Security		BearerAuth
//	@Router			/admin/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.orderService.SoftDelete(r.Context(), id); err != nil {
			logger.Error("Failed to delete order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order deleted", slog.String("orderId", id.String()))
		response.SuccessWithMessage(w, http.StatusOK, "Order deleted", nil)
	}
}

func parsePagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	return page, size
}

func parseOrderFilter(r *http.Request) (models.OrderListFilter, error) {
	var filter models.OrderListFilter

	query := r.URL.Query()

	scope := query.Get("scope")
	if scope != "" && scope != "global" && scope != "store" {
		return filter, errors.AddValidationError("scope", "must be global or store")
	}

	filter.Scope = scope
	filter.Status = models.OrderStatus(query.Get("status"))

	if raw := query.Get("storeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.AddValidationError("storeId", "must be a valid UUID").WithError(err)
		}

		filter.StoreID = &id
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.AddValidationError("from", "must be an RFC 3339 timestamp").WithError(err)
		}

		filter.StartDate = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.AddValidationError("to", "must be an RFC 3339 timestamp").WithError(err)
		}

		filter.EndDate = &to
	}

	return filter, nil
}
