package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nearbasket/nearbasket-api/internal/models"
	"github.com/nearbasket/nearbasket-api/internal/utils"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Payment, error)
	LinkToOrder(ctx context.Context, id, userID, orderID uuid.UUID) (*models.Payment, error)
	UpdateStatus(ctx context.Context, id, userID uuid.UUID, status models.PaymentState, transactionID string) (*models.Payment, error)
}

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepo(db *sql.DB) PaymentRepository {
	return &paymentRepository{DB: db}
}

const paymentColumns = `id, user_id, order_id, payment_method, amount, currency, status,
	transaction_id, gateway_intent_id, metadata, error_message,
	created_at, updated_at, created_at_ist, updated_at_ist`

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	metadataJSON, err := json.Marshal(payment.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal payment metadata: %w", err)
	}

	query := `
		INSERT INTO payments (id, user_id, order_id, payment_method, amount, currency, status,
			transaction_id, gateway_intent_id, metadata, error_message,
			created_at_ist, updated_at_ist, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	ist := utils.ISTNow()
	payment.CreatedAtIST = ist
	payment.UpdatedAtIST = ist

	return r.DB.QueryRowContext(dbCtx, query,
		payment.ID, payment.UserID, nullableUUID(payment.OrderID),
		payment.Method, payment.Amount, payment.Currency, payment.Status,
		payment.TransactionID, payment.GatewayIntentID, metadataJSON, payment.ErrorMessage, ist,
	).Scan(&payment.CreatedAt, &payment.UpdatedAt)
}

func (r *paymentRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Payment, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE
	`

	payment, err := scanPayment(r.DB.QueryRowContext(dbCtx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("querying payment: %w", err)
	}

	return payment, nil
}

func (r *paymentRepository) LinkToOrder(ctx context.Context, id, userID, orderID uuid.UUID) (*models.Payment, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE payments
		SET order_id = $1, updated_at = NOW(), updated_at_ist = $2
		WHERE id = $3 AND user_id = $4 AND is_deleted = FALSE
		RETURNING ` + paymentColumns

	payment, err := scanPayment(r.DB.QueryRowContext(dbCtx, query, orderID, utils.ISTNow(), id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to link payment: %w", err)
	}

	return payment, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status models.PaymentState, transactionID string) (*models.Payment, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE payments
		SET status = $1, transaction_id = $2, updated_at = NOW(), updated_at_ist = $3
		WHERE id = $4 AND user_id = $5 AND is_deleted = FALSE
		RETURNING ` + paymentColumns

	payment, err := scanPayment(r.DB.QueryRowContext(dbCtx, query, status, transactionID, utils.ISTNow(), id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	return payment, nil
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	payment := &models.Payment{}

	var (
		orderID      uuid.NullUUID
		metadataJSON []byte
	)

	err := row.Scan(
		&payment.ID, &payment.UserID, &orderID, &payment.Method,
		&payment.Amount, &payment.Currency, &payment.Status,
		&payment.TransactionID, &payment.GatewayIntentID, &metadataJSON, &payment.ErrorMessage,
		&payment.CreatedAt, &payment.UpdatedAt, &payment.CreatedAtIST, &payment.UpdatedAtIST,
	)
	if err != nil {
		return nil, err
	}

	if orderID.Valid {
		id := orderID.UUID
		payment.OrderID = &id
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &payment.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payment metadata: %w", err)
		}
	}

	return payment, nil
}
