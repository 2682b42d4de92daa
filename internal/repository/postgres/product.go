package postgres

import (
	"context"
	"database/sql"

	"github.com/minimall/minimall/internal/domain/product"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/postgres"
)

type productRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewProductRepository(db *postgres.DB, logger *logger.Logger) product.Repository {
	return &productRepository{db: db, logger: logger}
}

func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	query := `
		INSERT INTO products (
			id, name, unit_price,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :unit_price,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating product", "product_id", p.ID)

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create product").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *productRepository) Get(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	query := `SELECT * FROM products WHERE id = $1 AND status != $2`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &p, query, id, "deleted")
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("product not found").
				WithHint("Product not found").
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get product").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *productRepository) CreateSKU(ctx context.Context, s *product.SKU) error {
	query := `
		INSERT INTO skus (
			id, product_id, spec, price_override,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :product_id, :spec, :price_override,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create sku").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *productRepository) ListSKUs(ctx context.Context, productID string) ([]*product.SKU, error) {
	var skus []*product.SKU
	query := `SELECT * FROM skus WHERE product_id = $1 AND status != $2 ORDER BY created_at`

	err := r.db.GetQuerier(ctx).SelectContext(ctx, &skus, query, productID, "deleted")
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list skus").
			Mark(ierr.ErrDatabase)
	}
	return skus, nil
}

func (r *productRepository) GetSKU(ctx context.Context, id string) (*product.SKU, error) {
	var s product.SKU
	query := `SELECT * FROM skus WHERE id = $1 AND status != $2`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &s, query, id, "deleted")
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("sku not found").
				WithHint("SKU not found").
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get sku").
			Mark(ierr.ErrDatabase)
	}
	return &s, nil
}
