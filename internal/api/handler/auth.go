package handler

import (
	"net/http"

	"github.com/edvin/tradelink/internal/api/request"
	"github.com/edvin/tradelink/internal/api/response"
	"github.com/edvin/tradelink/internal/core"
	"github.com/edvin/tradelink/internal/model"
)

type Auth struct {
	svc *core.AuthService
}

func NewAuth(svc *core.AuthService) *Auth {
	return &Auth{svc: svc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Login authenticates with email or phone plus password and returns the user
// and a JWT token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" && req.Phone == "" {
		response.WriteError(w, http.StatusBadRequest, "email or phone is required")
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Phone, req.Password)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, loginResponse{User: user, Token: token})
}

type registerRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Password      string `json:"password" validate:"required,min=8"`
	UserType      string `json:"user_type" validate:"required,oneof=buyer supplier"`
	CompanyName   string `json:"company_name" validate:"required"`
	Industry      string `json:"industry"`
	AnnualRevenue string `json:"annual_revenue"`
	Location      string `json:"location"`
	GSTIN         string `json:"gstin"`
}

type registerResponse struct {
	User *model.User `json:"user"`
}

// Register creates a user account with its profile. The account is not signed
// in; the client must log in afterwards.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.Register(r.Context(), core.RegisterParams{
		Email:         req.Email,
		Phone:         req.Phone,
		Password:      req.Password,
		UserType:      req.UserType,
		CompanyName:   req.CompanyName,
		Industry:      req.Industry,
		AnnualRevenue: req.AnnualRevenue,
		Location:      req.Location,
		GSTIN:         req.GSTIN,
	})
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, registerResponse{User: user})
}
