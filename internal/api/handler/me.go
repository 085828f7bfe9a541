package handler

import (
	"net/http"

	"github.com/edvin/tradelink/internal/api/middleware"
	"github.com/edvin/tradelink/internal/api/response"
	"github.com/edvin/tradelink/internal/core"
)

type Me struct {
	profiles *core.ProfileService
}

func NewMe(profiles *core.ProfileService) *Me {
	return &Me{profiles: profiles}
}

// Get returns the authenticated user's profile.
func (h *Me) Get(w http.ResponseWriter, r *http.Request) {
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

	response.WriteJSON(w, http.StatusOK, profile)
}
