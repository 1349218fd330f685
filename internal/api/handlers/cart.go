package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nearbasket/nearbasket-api/internal/api/middleware"
	"github.com/nearbasket/nearbasket-api/internal/errors"
	"github.com/nearbasket/nearbasket-api/internal/models"
	service "github.com/nearbasket/nearbasket-api/internal/services"
	"github.com/nearbasket/nearbasket-api/internal/utils"
	"github.com/nearbasket/nearbasket-api/internal/utils/response"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//
//	@Summary		Get the current user's cart
//	@Description	Returns the cart with current catalog details attached to every line. Pass storeId to view only that store's lines.
//	@Tags			Cart
//	@Produce		json
//	@Param			storeId	query		string					false	"Store ID filter (UUID)"
//	@Success		200		{object}	models.Cart				"Cart with populated items"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		storeID, err := utils.ParseOptionalStoreID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to fetch cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if r.URL.Query().Has("storeId") {
			cart.Items = cart.ItemsInScope(storeID)
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//
//	@Summary		Add an item to the cart
//	@Description	Adds a product line scoped to a store (or the marketplace catalog when store_id is absent). Adding an existing line increments its quantity.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Item to add"
//	@Success		200		{object}	models.Cart				"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found or inactive"
//	@Failure		409		{object}	response.ErrorResponse	"Concurrent cart modification"
//	@Security		BearerAuth
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to add cart item", slog.String("productId", req.ProductID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("productId", req.ProductID.String()))
		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateQuantity godoc
//
//	@Summary		Set a cart line's quantity
//	@Description	Sets the quantity of an existing line. Zero or negative removes the line.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.UpdateQuantityRequest	true	"Line and new quantity"
//	@Success		200		{object}	models.Cart						"Updated cart"
//	@Failure		404		{object}	response.ErrorResponse			"Item not found in cart"
//	@Security		BearerAuth
//	@Router			/cart/items [patch]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to update cart quantity", slog.String("productId", req.ProductID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// DecreaseItem godoc
//
//	@Summary		Decrease a cart line's quantity
//	@Description	Decrements the line by decrement_by (default 1); the line is removed when it reaches zero.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.DecreaseItemRequest	true	"Line and decrement"
//	@Success		200		{object}	models.Cart					"Updated cart"
//	@Failure		404		{object}	response.ErrorResponse		"Item not found in cart"
//	@Security		BearerAuth
//	@Router			/cart/items/decrease [post]
func (h *CartHandler) DecreaseItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.DecreaseItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.DecreaseItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to decrease cart item", slog.String("productId", req.ProductID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//
//	@Summary		Remove a line from the cart
//	@Description	Removes the line identified by the product ID and the optional storeId query parameter.
//	@Tags			Cart
//	@Produce		json
//	@Param			productId	path		string					true	"Product ID (UUID)"
//	@Param			storeId		query		string					false	"Store ID (UUID); absent selects the marketplace line"
//	@Success		200			{object}	models.Cart				"Updated cart"
//	@Failure		404			{object}	response.ErrorResponse	"Item not found in cart"
//	@Security		BearerAuth
//	@Router			/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			response.Error(w, err)
			return
		}

		storeID, err := utils.ParseOptionalStoreID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, productID, storeID)
		if err != nil {
			logger.Error("Failed to remove cart item", slog.String("productId", productID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// ClearCart godoc
//
//	@Summary		Clear the cart
//	@Description	Removes all lines, or only one store's lines when storeId is given.
//	@Tags			Cart
//	@Produce		json
//	@Param			storeId	query		string					false	"Store ID (UUID) to clear"
//	@Success		200		{object}	models.Cart				"Emptied cart"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		storeID, err := utils.ParseOptionalStoreID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		scoped := r.URL.Query().Has("storeId")

		cart, err := h.cartService.Clear(r.Context(), claims.UserID, storeID, scoped)
		if err != nil {
			logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart cleared", slog.Bool("scoped", scoped))
		response.Success(w, http.StatusOK, cart)
	}
}
