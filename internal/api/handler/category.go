package handler

import (
	"net/http"

	"github.com/edvin/tradelink/internal/api/response"
	"github.com/edvin/tradelink/internal/core"
	"github.com/edvin/tradelink/internal/model"
)

type Category struct {
	svc *core.CategoryService
}

func NewCategory(svc *core.CategoryService) *Category {
	return &Category{svc: svc}
}

type categoryListResponse struct {
	Categories []model.Category `json:"categories"`
}

// List returns all active categories ordered by name.
func (h *Category) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListActive(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}

	response.WriteJSON(w, http.StatusOK, categoryListResponse{Categories: categories})
}
