package core

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/tradelink/internal/model"
)

func supplierProfile() *model.Profile {
	return &model.Profile{
		ID:          "prof-1",
		UserID:      "user-1",
		UserType:    model.UserTypeSupplier,
		CompanyName: "Foshan Machining Co",
	}
}

// ---------- Create ----------

func TestProductCreate_ForcesPendingApproval(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	product := &model.Product{
		Name:   "CNC Lathe",
		Status: model.ProductStatusActive, // must be ignored
	}
	err := svc.Create(ctx, supplierProfile(), product)
	require.NoError(t, err)

	assert.Equal(t, model.ProductStatusPendingApproval, product.Status)
	assert.Equal(t, "prof-1", product.SupplierID)
	assert.NotEmpty(t, product.ID)
	db.AssertExpectations(t)
}

func TestProductCreate_RejectsNonSupplier(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)

	buyer := supplierProfile()
	buyer.UserType = model.UserTypeBuyer

	err := svc.Create(context.Background(), buyer, &model.Product{Name: "Lathe"})
	require.ErrorIs(t, err, ErrNotSupplier)
	// Rejected before any insert.
	db.AssertNotCalled(t, "Exec", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductCreate_RejectsTooManyImages(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)

	product := &model.Product{
		Name:   "Lathe",
		Images: []string{"a.png", "b.png", "c.png", "d.png"},
	}
	err := svc.Create(context.Background(), supplierProfile(), product)
	require.ErrorIs(t, err, ErrTooManyImages)
	db.AssertNotCalled(t, "Exec", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductCreate_ThreeImagesAllowed(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	product := &model.Product{
		Name:   "Lathe",
		Images: []string{"a.png", "b.png", "c.png"},
	}
	require.NoError(t, svc.Create(ctx, supplierProfile(), product))
	db.AssertExpectations(t)
}

func TestProductCreate_DBError(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, errors.New("connection refused"))

	err := svc.Create(ctx, supplierProfile(), &model.Product{Name: "Lathe"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create product")
}

// ---------- Search ----------

func catalogScanFunc(p model.CatalogProduct) func(dest ...any) error {
	return func(dest ...any) error {
		*dest[0].(*string) = p.ID
		*dest[1].(*string) = p.SupplierID
		*dest[2].(**string) = p.CategoryID
		*dest[3].(*string) = p.Name
		*dest[4].(**string) = p.Description
		*dest[5].(**string) = p.PriceRange
		*dest[6].(**int) = p.MinOrderQuantity
		*dest[7].(**string) = p.CountryOfOrigin
		*dest[8].(*[]string) = p.CertificationStandards
		*dest[9].(*json.RawMessage) = p.Specifications
		*dest[10].(*[]string) = p.Tags
		*dest[11].(*[]string) = p.Images
		*dest[12].(*string) = p.Status
		*dest[13].(*time.Time) = p.CreatedAt
		*dest[14].(*time.Time) = p.UpdatedAt
		*dest[15].(**string) = p.CategoryName
		*dest[16].(*string) = p.Supplier.CompanyName
		*dest[17].(*bool) = p.Supplier.IsVerified
		return nil
	}
}

func activeCatalogProduct(id, name, company string) model.CatalogProduct {
	var p model.CatalogProduct
	p.ID = id
	p.Name = name
	p.Status = model.ProductStatusActive
	p.Supplier = model.SupplierRef{CompanyName: company}
	return p
}

func TestProductSearch_ReturnsAllRows(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	rows := newMockRows(
		catalogScanFunc(activeCatalogProduct("p1", "CNC Lathe", "Foshan")),
		catalogScanFunc(activeCatalogProduct("p2", "Injection Molder", "Ningbo")),
	)
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	products, err := svc.Search(ctx, CatalogFilter{})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "p2", products[1].ID)
}

func TestProductSearch_ReAppliesFreeTextFilter(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	// The store returns one row that does not match the free-text query;
	// the in-memory pass must drop it.
	rows := newMockRows(
		catalogScanFunc(activeCatalogProduct("p1", "CNC Lathe", "Foshan")),
		catalogScanFunc(activeCatalogProduct("p2", "Injection Molder", "Ningbo")),
	)
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	products, err := svc.Search(ctx, CatalogFilter{Query: "lathe"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestProductSearch_QueryError(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := svc.Search(ctx, CatalogFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search products")
}

func TestProductSearch_EmptyResult(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(newEmptyMockRows(), nil)

	products, err := svc.Search(ctx, CatalogFilter{Query: "nothing"})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductSearch_FilterArgsForwarded(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	var gotSQL string
	var gotArgs []any
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).
		Run(func(args mock.Arguments) {
			gotSQL = args.String(1)
			gotArgs = args.Get(2).([]any)
		}).
		Return(newEmptyMockRows(), nil)

	_, err := svc.Search(ctx, CatalogFilter{
		Query:          "lathe",
		Category:       "Machinery",
		SupplierRating: 4,
		Location:       "Delhi",
		SortBy:         SortPriceAsc,
	})
	require.NoError(t, err)

	assert.Contains(t, gotSQL, "ILIKE")
	assert.Contains(t, gotSQL, "ORDER BY p.price_range ASC")
	assert.Contains(t, gotArgs, model.ProductStatusActive)
	assert.Contains(t, gotArgs, "%lathe%")
	assert.Contains(t, gotArgs, "Machinery")
	assert.Contains(t, gotArgs, float64(4))
	assert.Contains(t, gotArgs, "%Delhi%")
}

// ---------- GetActive ----------

func TestProductGetActive_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFunc: func(dest ...any) error {
			return pgx.ErrNoRows
		}})

	_, err := svc.GetActive(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProductGetActive_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	want := activeCatalogProduct("p1", "CNC Lathe", "Foshan")
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFunc: catalogScanFunc(want)})

	got, err := svc.GetActive(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "CNC Lathe", got.Name)
	assert.Equal(t, "Foshan", got.Supplier.CompanyName)
}

// ---------- ListBySupplier ----------

func TestProductListBySupplier(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	rows := newMockRows(catalogScanFunc(activeCatalogProduct("p1", "CNC Lathe", "Foshan")))
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	products, err := svc.ListBySupplier(ctx, "prof-1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestProductListOwn_IncludesAllStatuses(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	pending := activeCatalogProduct("p2", "Drill Press", "Foshan")
	pending.Status = model.ProductStatusPendingApproval

	var gotSQL string
	rows := newMockRows(catalogScanFunc(pending))
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).
		Run(func(args mock.Arguments) {
			gotSQL = args.String(1)
		}).
		Return(rows, nil)

	products, err := svc.ListOwn(ctx, "prof-1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, model.ProductStatusPendingApproval, products[0].Status)
	assert.NotContains(t, gotSQL, "p.status", "owner view must not filter by status")
}
