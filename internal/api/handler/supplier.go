package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/tradelink/internal/api/request"
	"github.com/edvin/tradelink/internal/api/response"
	"github.com/edvin/tradelink/internal/core"
	"github.com/edvin/tradelink/internal/model"
)

type Supplier struct {
	profiles *core.ProfileService
	products *core.ProductService
}

func NewSupplier(profiles *core.ProfileService, products *core.ProductService) *Supplier {
	return &Supplier{profiles: profiles, products: products}
}

// Get returns a supplier profile by ID.
func (h *Supplier) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "supplierID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profiles.GetSupplier(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, profile)
}

// Products returns a supplier's active catalog products.
func (h *Supplier) Products(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "supplierID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.profiles.GetSupplier(r.Context(), id); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	products, err := h.products.ListBySupplier(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	if products == nil {
		products = []model.CatalogProduct{}
	}

	response.WriteJSON(w, http.StatusOK, productListResponse{Products: products})
}
