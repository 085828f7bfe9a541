package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edvin/tradelink/internal/model"
)

type ProductService struct {
	db DB
}

func NewProductService(db DB) *ProductService {
	return &ProductService{db: db}
}

// Create inserts a new product for the given supplier profile. The product
// always starts as pending_approval regardless of the requested status.
func (s *ProductService) Create(ctx context.Context, supplier *model.Profile, product *model.Product) error {
	if supplier.UserType != model.UserTypeSupplier {
		return ErrNotSupplier
	}
	if len(product.Images) > model.MaxProductImages {
		return ErrTooManyImages
	}

	now := time.Now()
	product.ID = uuid.NewString()
	product.SupplierID = supplier.ID
	product.Status = model.ProductStatusPendingApproval
	product.CreatedAt = now
	product.UpdatedAt = now

	if product.Specifications == nil {
		product.Specifications = json.RawMessage(`{}`)
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO products (id, supplier_id, category_id, name, description, price_range,
		   min_order_quantity, country_of_origin, certification_standards, specifications,
		   tags, images, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		product.ID, product.SupplierID, product.CategoryID, product.Name, product.Description,
		product.PriceRange, product.MinOrderQuantity, product.CountryOfOrigin,
		product.CertificationStandards, product.Specifications, product.Tags,
		product.Images, product.Status, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

const catalogColumns = `p.id, p.supplier_id, p.category_id, p.name, p.description, p.price_range,
	p.min_order_quantity, p.country_of_origin, p.certification_standards, p.specifications,
	p.tags, p.images, p.status, p.created_at, p.updated_at,
	c.name, pr.company_name, pr.is_verified`

func scanCatalogProduct(row pgx.Row) (*model.CatalogProduct, error) {
	var p model.CatalogProduct
	err := row.Scan(&p.ID, &p.SupplierID, &p.CategoryID, &p.Name, &p.Description,
		&p.PriceRange, &p.MinOrderQuantity, &p.CountryOfOrigin,
		&p.CertificationStandards, &p.Specifications, &p.Tags, &p.Images,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName, &p.Supplier.CompanyName, &p.Supplier.IsVerified)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Search runs the catalog query: active products joined with category name
// and supplier, restricted by the filter, then re-matched in memory.
func (s *ProductService) Search(ctx context.Context, f CatalogFilter) ([]model.CatalogProduct, error) {
	query := `SELECT ` + catalogColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		JOIN profiles pr ON pr.id = p.supplier_id
		WHERE p.status = $1`
	args := []any{model.ProductStatusActive}
	argIdx := 2

	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		query += fmt.Sprintf(` AND (p.name ILIKE $%d OR p.description ILIKE $%d OR pr.company_name ILIKE $%d)`,
			argIdx, argIdx, argIdx)
		args = append(args, pattern)
		argIdx++
	}
	if f.Category != "" {
		query += fmt.Sprintf(` AND c.name = $%d`, argIdx)
		args = append(args, f.Category)
		argIdx++
	}
	if f.SupplierRating > 0 {
		query += fmt.Sprintf(` AND pr.rating >= $%d`, argIdx)
		args = append(args, f.SupplierRating)
		argIdx++
	}
	if f.Location != "" {
		pattern := "%" + f.Location + "%"
		query += fmt.Sprintf(` AND (pr.city ILIKE $%d OR pr.state ILIKE $%d OR pr.country ILIKE $%d)`,
			argIdx, argIdx, argIdx)
		args = append(args, pattern)
		argIdx++
	}

	switch f.SortBy {
	case SortPriceAsc:
		// price_range is free text; lexicographic order is deliberately
		// best-effort.
		query += ` ORDER BY p.price_range ASC NULLS LAST`
	case SortPriceDesc:
		query += ` ORDER BY p.price_range DESC NULLS LAST`
	default:
		query += ` ORDER BY p.created_at DESC`
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	var products []model.CatalogProduct
	for rows.Next() {
		p, err := scanCatalogProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if f.Match(p) {
			products = append(products, *p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// GetActive returns a single active product with its category and supplier.
func (s *ProductService) GetActive(ctx context.Context, id string) (*model.CatalogProduct, error) {
	p, err := scanCatalogProduct(s.db.QueryRow(ctx,
		`SELECT `+catalogColumns+`
		 FROM products p
		 LEFT JOIN categories c ON c.id = p.category_id
		 JOIN profiles pr ON pr.id = p.supplier_id
		 WHERE p.id = $1 AND p.status = $2`, id, model.ProductStatusActive))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

// ListBySupplier returns a supplier's active products, newest first.
func (s *ProductService) ListBySupplier(ctx context.Context, supplierID string) ([]model.CatalogProduct, error) {
	return s.listSupplierProducts(ctx,
		`SELECT `+catalogColumns+`
		 FROM products p
		 LEFT JOIN categories c ON c.id = p.category_id
		 JOIN profiles pr ON pr.id = p.supplier_id
		 WHERE p.supplier_id = $1 AND p.status = $2
		 ORDER BY p.created_at DESC`, supplierID, model.ProductStatusActive)
}

// ListOwn returns all of a supplier's products regardless of status, so the
// owner can see pending and inactive entries too.
func (s *ProductService) ListOwn(ctx context.Context, supplierID string) ([]model.CatalogProduct, error) {
	return s.listSupplierProducts(ctx,
		`SELECT `+catalogColumns+`
		 FROM products p
		 LEFT JOIN categories c ON c.id = p.category_id
		 JOIN profiles pr ON pr.id = p.supplier_id
		 WHERE p.supplier_id = $1
		 ORDER BY p.created_at DESC`, supplierID)
}

func (s *ProductService) listSupplierProducts(ctx context.Context, query string, args ...any) ([]model.CatalogProduct, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplier products: %w", err)
	}
	defer rows.Close()

	var products []model.CatalogProduct
	for rows.Next() {
		p, err := scanCatalogProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
