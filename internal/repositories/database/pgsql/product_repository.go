package pgsql

import (
	"context"
	"fmt"


	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/inventory_ledger/internal/models"
	"github.com/SscSPs/inventory_ledger/internal/utils/mapping"
)

const productColumns = `product_id, name, code, maintaining_qty, critical_qty, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for catalog data.
func newPgxProductRepository(pool DBPool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryFacade
var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func scanProduct(row rowScanner) (domain.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Name,
		&m.Code,
		&m.MaintainingQty,
		&m.CriticalQty,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Product{}, err
	}
	return mapping.ToDomainProduct(m), nil
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	p, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		return nil, mapPgError(err, "product "+productID)
	}
	return &p, nil
}

// FindProductByCode retrieves a product by its external code.
func (r *PgxProductRepository) FindProductByCode(ctx context.Context, code string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1;`
	p, err := scanProduct(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		return nil, mapPgError(err, "product code "+code)
	}
	return &p, nil
}

// ListProducts returns products ordered by name.
func (r *PgxProductRepository) ListProducts(ctx context.Context, activeOnly bool) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ($1 = false OR is_active) ORDER BY name, product_id;`
	rows, err := r.Pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}
	return products, nil
}

// SaveProduct inserts a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.Code,
		m.MaintainingQty,
		m.CriticalQty,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save product "+m.ProductID)
}

// UpdateProduct overwrites the mutable columns of a product.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		UPDATE products
		SET name = $2, code = $3, maintaining_qty = $4, critical_qty = $5, is_active = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE product_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.Code,
		m.MaintainingQty,
		m.CriticalQty,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update product "+m.ProductID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, m.ProductID)
	}
	return nil
}
