package model

import (
	"encoding/json"
	"time"
)

// MaxProductImages caps the images list on a product. Enforced both by the
// upload batch workflow and at product creation.
const MaxProductImages = 3

type Product struct {
	ID                     string          `json:"id" db:"id"`
	SupplierID             string          `json:"supplier_id" db:"supplier_id"`
	CategoryID             *string         `json:"category_id,omitempty" db:"category_id"`
	Name                   string          `json:"name" db:"name"`
	Description            *string         `json:"description,omitempty" db:"description"`
	PriceRange             *string         `json:"price_range,omitempty" db:"price_range"`
	MinOrderQuantity       *int            `json:"min_order_quantity,omitempty" db:"min_order_quantity"`
	CountryOfOrigin        *string         `json:"country_of_origin,omitempty" db:"country_of_origin"`
	CertificationStandards []string        `json:"certification_standards" db:"certification_standards"`
	Specifications         json.RawMessage `json:"specifications" db:"specifications"`
	Tags                   []string        `json:"tags" db:"tags"`
	Images                 []string        `json:"images" db:"images"`
	Status                 string          `json:"status" db:"status"`
	CreatedAt              time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at" db:"updated_at"`
}

// CatalogProduct is a product joined with its category name and supplier
// reference, the shape returned by catalog queries.
type CatalogProduct struct {
	Product
	CategoryName *string     `json:"category_name,omitempty"`
	Supplier     SupplierRef `json:"supplier"`
}
