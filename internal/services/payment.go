package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	appErrors "github.com/nearbasket/nearbasket-api/internal/errors"
	"github.com/nearbasket/nearbasket-api/internal/models"
	repository "github.com/nearbasket/nearbasket-api/internal/repositories"
	"github.com/nearbasket/nearbasket-api/pkg/gateway"
)

type PaymentService interface {
	// Initiate creates a payment record. Cash on delivery completes
	// immediately; online methods open a gateway intent first.
	Initiate(ctx context.Context, userID uuid.UUID, req *models.InitiatePaymentRequest) (*models.Payment, error)

	// Link attaches a payment to an order after checkout, optionally
	// marking it completed with the gateway's transaction reference.
	Link(ctx context.Context, userID, paymentID uuid.UUID, req *models.LinkPaymentRequest) (*models.Payment, error)

	Get(ctx context.Context, userID, paymentID uuid.UUID) (*models.Payment, error)
}

type paymentService struct {
	repo      repository.PaymentRepository
	orderRepo repository.OrderRepository
	gateway   gateway.Client
}

func NewPaymentService(repo repository.PaymentRepository, orderRepo repository.OrderRepository, gatewayClient gateway.Client) PaymentService {
	return &paymentService{repo: repo, orderRepo: orderRepo, gateway: gatewayClient}
}

func (s *paymentService) Initiate(ctx context.Context, userID uuid.UUID, req *models.InitiatePaymentRequest) (*models.Payment, error) {
	payment := &models.Payment{
		ID:       uuid.New(),
		UserID:   userID,
		OrderID:  req.OrderID,
		Method:   req.Method,
		Amount:   req.Amount,
		Currency: "inr",
		Status:   models.PaymentStatePending,
		Metadata: req.Metadata,
	}

	if req.Method == models.PaymentMethodCOD {
		// Nothing to collect up front; the courier settles on delivery.
		payment.Status = models.PaymentStateCompleted
	} else {
		intent, err := s.gateway.CreatePaymentIntent(toPaise(req.Amount), payment.Currency,
			fmt.Sprintf("Payment by user %s", userID), userID.String())
		if err != nil {
			return nil, appErrors.ThirdPartyError("Failed to create payment intent").WithError(err)
		}

		payment.GatewayIntentID = intent.ID
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, appErrors.DatabaseError("Failed to create payment").WithError(err)
	}

	return payment, nil
}

func (s *paymentService) Link(ctx context.Context, userID, paymentID uuid.UUID, req *models.LinkPaymentRequest) (*models.Payment, error) {
	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if order.UserID != userID {
		return nil, appErrors.NotFoundError("Order not found")
	}

	payment, err := s.repo.LinkToOrder(ctx, paymentID, userID, req.OrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Payment not found")
		}

		return nil, appErrors.DatabaseError("Failed to link payment").WithError(err)
	}

	if req.TransactionID != "" && payment.Status == models.PaymentStatePending {
		payment, err = s.repo.UpdateStatus(ctx, paymentID, userID, models.PaymentStateCompleted, req.TransactionID)
		if err != nil {
			return nil, appErrors.DatabaseError("Failed to update payment status").WithError(err)
		}
	}

	return payment, nil
}

func (s *paymentService) Get(ctx context.Context, userID, paymentID uuid.UUID) (*models.Payment, error) {
	payment, err := s.repo.GetByID(ctx, paymentID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Payment not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch payment").WithError(err)
	}

	return payment, nil
}

// toPaise converts rupees to the smallest currency unit the gateway expects.
func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
