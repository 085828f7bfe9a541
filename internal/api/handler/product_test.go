package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newProductHandler() *Product {
	return NewProduct(nil, nil)
}

// --- Get ---

func TestProductGet_EmptyID(t *testing.T) {
	h := newProductHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/api/products/", nil)
	r = withChiURLParam(r, "productID", "")

	h.Get(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "missing required ID")
}

// --- Create ---

func TestProductCreate_Unauthenticated(t *testing.T) {
	h := newProductHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/api/products", map[string]any{
		"name": "Cotton Fabric",
	})

	h.Create(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "missing claims")
}

func TestProductCreate_InvalidJSON(t *testing.T) {
	h := newProductHandler()
	rec := httptest.NewRecorder()
	r := withBuyerClaims(newRequestRaw(http.MethodPost, "/api/products", "{bad"))

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductCreate_MissingName(t *testing.T) {
	h := newProductHandler()
	rec := httptest.NewRecorder()
	r := withBuyerClaims(newRequest(http.MethodPost, "/api/products", map[string]any{
		"description": "no name given",
	}))

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

// --- ListMine ---

func TestProductListMine_Unauthenticated(t *testing.T) {
	h := newProductHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/api/me/products", nil)

	h.ListMine(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
