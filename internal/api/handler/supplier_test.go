package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupplierGet_EmptyID(t *testing.T) {
	h := NewSupplier(nil, nil)
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/api/suppliers/", nil)
	r = withChiURLParam(r, "supplierID", "")

	h.Get(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "missing required ID")
}

func TestSupplierProducts_EmptyID(t *testing.T) {
	h := NewSupplier(nil, nil)
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/api/suppliers//products", nil)
	r = withChiURLParam(r, "supplierID", "")

	h.Products(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
