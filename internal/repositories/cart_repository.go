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

// ErrVersionConflict means the cart row changed between read and write.
// Callers retry the whole read-modify-write cycle.
var ErrVersionConflict = errors.New("cart was modified concurrently")

type CartRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	Update(ctx context.Context, cart *models.Cart) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, items, version, created_at, updated_at, created_at_ist, updated_at_ist
		FROM carts
		WHERE user_id = $1 AND is_deleted = FALSE
	`

	cart := &models.Cart{}

	var itemsJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(
		&cart.ID, &cart.UserID, &itemsJSON, &cart.Version,
		&cart.CreatedAt, &cart.UpdatedAt, &cart.CreatedAtIST, &cart.UpdatedAtIST,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("querying cart: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) Create(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		INSERT INTO carts (id, user_id, items, version, created_at_ist, updated_at_ist, created_at, updated_at)
		VALUES ($1, $2, $3, 0, $4, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	ist := utils.ISTNow()
	cart.CreatedAtIST = ist
	cart.UpdatedAtIST = ist
	cart.Version = 0

	return r.DB.QueryRowContext(dbCtx, query, cart.ID, cart.UserID, itemsJSON, ist).
		Scan(&cart.CreatedAt, &cart.UpdatedAt)
}

func (r *cartRepository) Update(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := execCartUpdate(dbCtx, r.DB, cart)
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

	cart.Version++

	return nil
}

// execer covers both *sql.DB and *sql.Tx so the checkout transaction can
// reuse the guarded cart write.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func execCartUpdate(ctx context.Context, db execer, cart *models.Cart) (sql.Result, error) {
	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		UPDATE carts
		SET items = $1, version = version + 1, updated_at = NOW(), updated_at_ist = $2
		WHERE id = $3 AND version = $4
	`

	result, err := db.ExecContext(ctx, query, itemsJSON, utils.ISTNow(), cart.ID, cart.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to update the cart: %w", err)
	}

	return result, nil
}
