package request

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edvin/tradelink/internal/core"
)

func TestParseCatalogFilter_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products", nil)

	f := ParseCatalogFilter(r)

	assert.Empty(t, f.Query)
	assert.Empty(t, f.Category)
	assert.Empty(t, f.Location)
	assert.Equal(t, core.SortNewest, f.SortBy)
	assert.Zero(t, f.SupplierRating)
	assert.Zero(t, f.MaxPrice)
}

func TestParseCatalogFilter_AllParams(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/api/products?query=lathe&category=Machinery&supplierRating=4&location=Delhi&sortBy=price_asc&maxPrice=5000", nil)

	f := ParseCatalogFilter(r)

	assert.Equal(t, "lathe", f.Query)
	assert.Equal(t, "Machinery", f.Category)
	assert.Equal(t, 4.0, f.SupplierRating)
	assert.Equal(t, "Delhi", f.Location)
	assert.Equal(t, core.SortPriceAsc, f.SortBy)
	assert.Equal(t, 5000.0, f.MaxPrice)
}

func TestParseCatalogFilter_UnknownSortFallsBackToNewest(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products?sortBy=alphabetical", nil)
	assert.Equal(t, core.SortNewest, ParseCatalogFilter(r).SortBy)
}

func TestParseCatalogFilter_MalformedNumbersIgnored(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products?supplierRating=lots&maxPrice=cheap", nil)

	f := ParseCatalogFilter(r)
	assert.Zero(t, f.SupplierRating)
	assert.Zero(t, f.MaxPrice)
}

func TestParseCatalogFilter_NegativeNumbersIgnored(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products?supplierRating=-1&maxPrice=-50", nil)

	f := ParseCatalogFilter(r)
	assert.Zero(t, f.SupplierRating)
	assert.Zero(t, f.MaxPrice)
}
