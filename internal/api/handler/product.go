package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/tradelink/internal/api/middleware"
	"github.com/edvin/tradelink/internal/api/request"
	"github.com/edvin/tradelink/internal/api/response"
	"github.com/edvin/tradelink/internal/core"
	"github.com/edvin/tradelink/internal/model"
)

type Product struct {
	products *core.ProductService
	profiles *core.ProfileService
}

func NewProduct(products *core.ProductService, profiles *core.ProfileService) *Product {
	return &Product{products: products, profiles: profiles}
}

type productListResponse struct {
	Products []model.CatalogProduct `json:"products"`
}

// List returns active catalog products matching the query parameters.
func (h *Product) List(w http.ResponseWriter, r *http.Request) {
	filter := request.ParseCatalogFilter(r)

	products, err := h.products.Search(r.Context(), filter)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	if products == nil {
		products = []model.CatalogProduct{}
	}

	response.WriteJSON(w, http.StatusOK, productListResponse{Products: products})
}

// Get returns a single active product by ID.
func (h *Product) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "productID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.products.GetActive(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, product)
}

type createProductRequest struct {
	Name                   string          `json:"name" validate:"required"`
	CategoryID             *string         `json:"category_id"`
	Description            *string         `json:"description"`
	PriceRange             *string         `json:"price_range"`
	MinOrderQuantity       *int            `json:"min_order_quantity"`
	CountryOfOrigin        *string         `json:"country_of_origin"`
	CertificationStandards []string        `json:"certification_standards"`
	Specifications         json.RawMessage `json:"specifications"`
	Tags                   []string        `json:"tags"`
	Images                 []string        `json:"images"`
}

// Create adds a product for the authenticated supplier. New products always
// start in pending approval.
func (h *Product) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.WriteError(w, http.StatusUnauthorized, "missing claims")
		return
	}

	var req createProductRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profiles.GetByUserID(r.Context(), claims.Sub)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	product := &model.Product{
		Name:                   req.Name,
		CategoryID:             req.CategoryID,
		Description:            req.Description,
		PriceRange:             req.PriceRange,
		MinOrderQuantity:       req.MinOrderQuantity,
		CountryOfOrigin:        req.CountryOfOrigin,
		CertificationStandards: req.CertificationStandards,
		Specifications:         req.Specifications,
		Tags:                   req.Tags,
		Images:                 req.Images,
	}

	if err := h.products.Create(r.Context(), profile, product); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, product)
}

// ListMine returns all of the authenticated supplier's own products,
// regardless of status.
func (h *Product) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.WriteError(w, http.StatusUnauthorized, "missing claims")
		return
	}

	profile, err := h.profiles.GetByUserID(r.Context(), claims.Sub)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	products, err := h.products.ListOwn(r.Context(), profile.ID)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	if products == nil {
		products = []model.CatalogProduct{}
	}

	response.WriteJSON(w, http.StatusOK, productListResponse{Products: products})
}
