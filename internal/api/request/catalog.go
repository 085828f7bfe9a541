package request

import (
	"net/http"
	"strconv"

	"github.com/edvin/tradelink/internal/core"
)

// ParseCatalogFilter extracts the catalog query parameters. Empty or
// malformed numeric values mean "no filter"; an unknown sort key falls back
// to newest.
func ParseCatalogFilter(r *http.Request) core.CatalogFilter {
	q := r.URL.Query()

	f := core.CatalogFilter{
		Query:    q.Get("query"),
		Category: q.Get("category"),
		Location: q.Get("location"),
		SortBy:   core.SortNewest,
	}

	switch sort := q.Get("sortBy"); sort {
	case core.SortPriceAsc, core.SortPriceDesc:
		f.SortBy = sort
	}

	if v := q.Get("supplierRating"); v != "" {
		if rating, err := strconv.ParseFloat(v, 64); err == nil && rating > 0 {
			f.SupplierRating = rating
		}
	}

	if v := q.Get("maxPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil && price > 0 {
			f.MaxPrice = price
		}
	}

	return f
}
