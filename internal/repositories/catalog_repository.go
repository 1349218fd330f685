package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/nearbasket/nearbasket-api/internal/models"
	"github.com/nearbasket/nearbasket-api/internal/utils"
)

// CatalogRepository is the read-only view of products and stores the cart
// and checkout code consumes. Catalog writes belong to the admin service.
type CatalogRepository interface {
	// FindProduct resolves a product within a store scope: nil storeID
	// matches only global (storeless) products; a set storeID matches only
	// that store's products. Scope mismatch surfaces as sql.ErrNoRows,
	// indistinguishable from absence.
	FindProduct(ctx context.Context, id uuid.UUID, storeID *uuid.UUID) (*models.Product, error)

	// FindProductsByIDs fetches display details without scope or active
	// filters; used to populate cart reads.
	FindProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error)

	FindStore(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

type catalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepo(db *sql.DB) CatalogRepository {
	return &catalogRepository{DB: db}
}

const productColumns = `id, store_id, name, description, images, price, offer_price, stock_quantity, unit, is_active, created_at, updated_at`

func (r *catalogRepository) FindProduct(ctx context.Context, id uuid.UUID, storeID *uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var row *sql.Row

	if storeID == nil {
		query := `
			SELECT ` + productColumns + `
			FROM products
			WHERE id = $1 AND store_id IS NULL AND is_deleted = FALSE AND is_active = TRUE
		`
		row = r.DB.QueryRowContext(dbCtx, query, id)
	} else {
		query := `
			SELECT ` + productColumns + `
			FROM products
			WHERE id = $1 AND store_id = $2 AND is_deleted = FALSE AND is_active = TRUE
		`
		row = r.DB.QueryRowContext(dbCtx, query, id, *storeID)
	}

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("querying product: %w", err)
	}

	return product, nil
}

func (r *catalogRepository) FindProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if len(ids) == 0 {
		return map[uuid.UUID]*models.Product{}, nil
	}

	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = ANY($1::uuid[]) AND is_deleted = FALSE
	`

	rows, err := r.DB.QueryContext(dbCtx, query, pq.Array(idStrings))
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	products := make(map[uuid.UUID]*models.Product, len(ids))

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products[product.ID] = product
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *catalogRepository) FindStore(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, image_url, city, manager_name, manager_phone, is_active, created_at, updated_at
		FROM stores
		WHERE id = $1 AND is_deleted = FALSE AND is_active = TRUE
	`

	store := &models.Store{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&store.ID, &store.Name, &store.ImageURL, &store.City,
		&store.ManagerName, &store.ManagerPhone, &store.IsActive,
		&store.CreatedAt, &store.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("querying store: %w", err)
	}

	return store, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}

	var (
		storeID    uuid.NullUUID
		imagesJSON []byte
		offerPrice sql.NullFloat64
	)

	err := row.Scan(
		&product.ID, &storeID, &product.Name, &product.Description, &imagesJSON,
		&product.Price, &offerPrice, &product.StockQuantity, &product.Unit,
		&product.IsActive, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if storeID.Valid {
		id := storeID.UUID
		product.StoreID = &id
	}

	if offerPrice.Valid {
		price := offerPrice.Float64
		product.OfferPrice = &price
	}

	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &product.Images); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product images: %w", err)
		}
	}

	return product, nil
}
