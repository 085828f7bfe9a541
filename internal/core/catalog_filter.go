package core

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/edvin/tradelink/internal/model"
)

// Sort keys accepted by the catalog query.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// CatalogFilter holds the catalog query inputs. Zero values mean "no filter".
type CatalogFilter struct {
	Query          string
	Category       string
	SupplierRating float64
	Location       string
	SortBy         string
	MaxPrice       float64
}

// Match re-applies the free-text, category, and price-ceiling predicates to a
// fetched product. The same predicates are pushed into SQL where possible;
// this in-memory pass keeps results correct for callers that skip the
// server-side filtering.
func (f CatalogFilter) Match(p *model.CatalogProduct) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		desc := ""
		if p.Description != nil {
			desc = *p.Description
		}
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(desc), q) &&
			!strings.Contains(strings.ToLower(p.Supplier.CompanyName), q) {
			return false
		}
	}

	if f.Category != "" {
		if p.CategoryName == nil || *p.CategoryName != f.Category {
			return false
		}
	}

	if f.MaxPrice > 0 && p.PriceRange != nil {
		// price_range is free text like "$10-50 per unit"; the parsed lower
		// bound is compared best-effort, unparsable prices pass.
		if low, ok := priceLowerBound(*p.PriceRange); ok && low > f.MaxPrice {
			return false
		}
	}

	return true
}

// priceLowerBound extracts the first number from a free-text price range.
func priceLowerBound(s string) (float64, bool) {
	start := -1
	for i, r := range s {
		if unicode.IsDigit(r) {
			start = i
			break
		}
	}
	if start == -1 {
		return 0, false
	}

	end := start
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		if c == ',' {
			// thousands separator
			end++
			continue
		}
		break
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSuffix(s[start:end], "."), ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
