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

type PaymentHandler struct {
	paymentService service.PaymentService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validator: validator.New()}
}

// InitiatePayment godoc
//
//	@Summary		Initiate a payment
//	@Description	Creates a payment record. Cash on delivery completes immediately; online methods open a gateway intent.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			payment	body		models.InitiatePaymentRequest	true	"Method and amount"
//	@Success		201		{object}	models.Payment					"Created payment"
//	@Failure		400		{object}	response.ErrorResponse			"Validation error"
//	@Failure		500		{object}	response.ErrorResponse			"Gateway or internal error"
//	@Security		BearerAuth
//	@Router			/payments [post]
func (h *PaymentHandler) InitiatePayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.InitiatePaymentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		payment, err := h.paymentService.Initiate(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to initiate payment", slog.String("method", req.Method), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment initiated",
			slog.String("paymentId", payment.ID.String()),
			slog.String("method", payment.Method))
		response.Success(w, http.StatusCreated, payment)
	}
}

// LinkPayment godoc
//
//	@Summary		Link a payment to an order
//	@Description	Attaches the payment to one of the caller's orders. Supplying transaction_id also marks a pending payment completed.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Payment ID (UUID)"	Format(uuid)
//	@Param			link	body		models.LinkPaymentRequest	true	"Order and optional transaction reference"
//	@Success		200		{object}	models.Payment				"Linked payment"
//	@Failure		404		{object}	response.ErrorResponse		"Payment or order not found"
//	@Security		BearerAuth
//	@Router			/payments/{id}/link [post]
func (h *PaymentHandler) LinkPayment() http.HandlerFunc {
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

		var req models.LinkPaymentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		payment, err := h.paymentService.Link(r.Context(), claims.UserID, id, &req)
		if err != nil {
			logger.Error("Failed to link payment",
				slog.String("paymentId", id.String()),
				slog.String("orderId", req.OrderID.String()),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment linked",
			slog.String("paymentId", payment.ID.String()),
			slog.String("orderId", req.OrderID.String()))
		response.Success(w, http.StatusOK, payment)
	}
}

// GetPayment godoc
//
//	@Summary		Get a payment
//	@Tags			Payments
//	@Produce		json
//	@Param			id	path		string					true	"Payment ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Payment			"Payment"
//	@Failure		404	{object}	response.ErrorResponse	"Payment not found"
//	@Security		BearerAuth
//	@Router			/payments/{id} [get]
func (h *PaymentHandler) GetPayment() http.HandlerFunc {
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

		payment, err := h.paymentService.Get(r.Context(), claims.UserID, id)
		if err != nil {
			logger.Warn("Failed to fetch payment", slog.String("paymentId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, payment)
	}
}
