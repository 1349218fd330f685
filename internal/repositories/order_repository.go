package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nearbasket/nearbasket-api/internal/models"
	"github.com/nearbasket/nearbasket-api/internal/utils"
)

type StatusUpdate struct {
	Status        *models.OrderStatus
	PaymentStatus *models.PaymentStatus
	Change        models.StatusChange
}

type OrderRepository interface {
	// Checkout persists the order and shrinks the cart in one transaction.
	// The cart write is version-guarded; ErrVersionConflict means the cart
	// changed mid-checkout and the caller must re-read and retry.
	Checkout(ctx context.Context, order *models.Order, cart *models.Cart) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter models.OrderListFilter, page, size int) ([]models.Order, int, error)

	// UpdateStatus applies the non-nil axes and appends to the status
	// history. A non-nil storeID restricts the match to that store's
	// orders (store-owner path).
	UpdateStatus(ctx context.Context, id uuid.UUID, storeID *uuid.UUID, update StatusUpdate) (*models.Order, error)

	SoftDelete(ctx context.Context, id uuid.UUID) error

	StoreStats(ctx context.Context, storeID uuid.UUID, filter models.OrderListFilter) (*models.StoreOrderStats, error)
	StoreRevenueSince(ctx context.Context, storeID uuid.UUID, since time.Time) (models.RevenueWindow, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `id, user_id, store_id, items, subtotal, total_discount, grand_total,
	status, payment_method, payment_status, shipping_address, notes, status_history,
	created_at, updated_at, created_at_ist, updated_at_ist`

func (r *orderRepository) Checkout(ctx context.Context, order *models.Order, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	addressJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	historyJSON, err := json.Marshal(order.StatusHistory)
	if err != nil {
		return fmt.Errorf("failed to marshal status history: %w", err)
	}

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin checkout transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, user_id, store_id, items, subtotal, total_discount, grand_total,
			status, payment_method, payment_status, shipping_address, notes, status_history,
			created_at_ist, updated_at_ist, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	ist := utils.ISTNow()
	order.CreatedAtIST = ist
	order.UpdatedAtIST = ist

	err = tx.QueryRowContext(dbCtx, query,
		order.ID, order.UserID, nullableUUID(order.StoreID), itemsJSON,
		order.Subtotal, order.TotalDiscount, order.GrandTotal,
		order.Status, order.PaymentMethod, order.PaymentStatus,
		addressJSON, order.Notes, historyJSON, ist,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	result, err := execCartUpdate(dbCtx, tx, cart)
	if err != nil {
		return err
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return ErrVersionConflict
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit checkout: %w", err)
	}

	cart.Version++

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1 AND is_deleted = FALSE
	`

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("querying order: %w", err)
	}

	return order, nil
}

func (r *orderRepository) List(ctx context.Context, filter models.OrderListFilter, page, size int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	where, args := buildOrderFilter(filter)

	var total int

	countQuery := `SELECT COUNT(*) FROM orders ` + where
	if err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting orders: %w", err)
	}

	offset := (page - 1) * size
	args = append(args, size, offset)

	query := fmt.Sprintf(`
		SELECT `+orderColumns+`
		FROM orders
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, storeID *uuid.UUID, update StatusUpdate) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	changeJSON, err := json.Marshal([]models.StatusChange{update.Change})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status change: %w", err)
	}

	args := []any{update.Status, update.PaymentStatus, changeJSON, utils.ISTNow(), id}

	query := `
		UPDATE orders
		SET status = COALESCE($1, status),
			payment_status = COALESCE($2, payment_status),
			status_history = status_history || $3::jsonb,
			updated_at = NOW(),
			updated_at_ist = $4
		WHERE id = $5 AND is_deleted = FALSE
	`

	if storeID != nil {
		query += ` AND store_id = $6`
		args = append(args, *storeID)
	}

	query += ` RETURNING ` + orderColumns

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return order, nil
}

func (r *orderRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET is_deleted = TRUE, updated_at = NOW(), updated_at_ist = $1
		WHERE id = $2 AND is_deleted = FALSE
	`

	result, err := r.DB.ExecContext(dbCtx, query, utils.ISTNow(), id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *orderRepository) StoreStats(ctx context.Context, storeID uuid.UUID, filter models.OrderListFilter) (*models.StoreOrderStats, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter.StoreID = &storeID
	where, args := buildOrderFilter(filter)

	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'confirmed'),
			COUNT(*) FILTER (WHERE status = 'shipped'),
			COUNT(*) FILTER (WHERE status = 'delivered'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COALESCE(SUM(grand_total), 0)
		FROM orders ` + where

	stats := &models.StoreOrderStats{}

	err := r.DB.QueryRowContext(dbCtx, query, args...).Scan(
		&stats.Total, &stats.Pending, &stats.Confirmed, &stats.Shipped,
		&stats.Delivered, &stats.Cancelled, &stats.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("querying store stats: %w", err)
	}

	return stats, nil
}

func (r *orderRepository) StoreRevenueSince(ctx context.Context, storeID uuid.UUID, since time.Time) (models.RevenueWindow, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT COUNT(*), COALESCE(SUM(grand_total), 0)
		FROM orders
		WHERE store_id = $1 AND is_deleted = FALSE AND created_at >= $2
	`

	var window models.RevenueWindow

	err := r.DB.QueryRowContext(dbCtx, query, storeID, since).Scan(&window.Count, &window.Revenue)
	if err != nil {
		return models.RevenueWindow{}, fmt.Errorf("querying store revenue: %w", err)
	}

	return window, nil
}

// buildOrderFilter renders the WHERE clause for order listings. Soft
// deleted rows are always excluded.
func buildOrderFilter(filter models.OrderListFilter) (string, []any) {
	clauses := []string{"is_deleted = FALSE"}

	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.UserID != nil {
		clauses = append(clauses, "user_id = "+arg(*filter.UserID))
	}

	if filter.StoreID != nil {
		clauses = append(clauses, "store_id = "+arg(*filter.StoreID))
	} else if filter.Scope == "global" {
		clauses = append(clauses, "store_id IS NULL")
	} else if filter.Scope == "store" {
		clauses = append(clauses, "store_id IS NOT NULL")
	}

	if filter.Status != "" {
		clauses = append(clauses, "status = "+arg(string(filter.Status)))
	}

	if filter.StartDate != nil {
		clauses = append(clauses, "created_at >= "+arg(*filter.StartDate))
	}

	if filter.EndDate != nil {
		clauses = append(clauses, "created_at <= "+arg(*filter.EndDate))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func nullableUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}

	return uuid.NullUUID{UUID: *id, Valid: true}
}

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}

	var (
		storeID     uuid.NullUUID
		itemsJSON   []byte
		addressJSON []byte
		historyJSON []byte
	)

	err := row.Scan(
		&order.ID, &order.UserID, &storeID, &itemsJSON,
		&order.Subtotal, &order.TotalDiscount, &order.GrandTotal,
		&order.Status, &order.PaymentMethod, &order.PaymentStatus,
		&addressJSON, &order.Notes, &historyJSON,
		&order.CreatedAt, &order.UpdatedAt, &order.CreatedAtIST, &order.UpdatedAtIST,
	)
	if err != nil {
		return nil, err
	}

	if storeID.Valid {
		id := storeID.UUID
		order.StoreID = &id
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	if err := json.Unmarshal(addressJSON, &order.ShippingAddress); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipping address: %w", err)
	}

	if len(historyJSON) > 0 {
		if err := json.Unmarshal(historyJSON, &order.StatusHistory); err != nil {
			return nil, fmt.Errorf("failed to unmarshal status history: %w", err)
		}
	}

	return order, nil
}
