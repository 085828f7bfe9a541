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

type Inquiry struct {
	inquiries *core.InquiryService
	profiles  *core.ProfileService
}

func NewInquiry(inquiries *core.InquiryService, profiles *core.ProfileService) *Inquiry {
	return &Inquiry{inquiries: inquiries, profiles: profiles}
}

// callerProfile resolves the authenticated user's profile or writes an error.
func (h *Inquiry) callerProfile(w http.ResponseWriter, r *http.Request) (*model.Profile, bool) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.WriteError(w, http.StatusUnauthorized, "missing claims")
		return nil, false
	}

	profile, err := h.profiles.GetByUserID(r.Context(), claims.Sub)
	if err != nil {
		response.WriteServiceError(w, err)
		return nil, false
	}
	return profile, true
}

type createInquiryRequest struct {
	SupplierID       string  `json:"supplier_id" validate:"required"`
	ProductID        *string `json:"product_id"`
	Subject          string  `json:"subject" validate:"required"`
	Message          string  `json:"message" validate:"required"`
	QuantityRequired *int    `json:"quantity_required"`
	TargetPrice      *string `json:"target_price"`
	DeliveryTimeline *string `json:"delivery_timeline"`
}

// Create opens an inquiry from the authenticated buyer to a supplier.
func (h *Inquiry) Create(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.callerProfile(w, r)
	if !ok {
		return
	}

	var req createInquiryRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	inquiry := &model.Inquiry{
		BuyerID:          profile.ID,
		SupplierID:       req.SupplierID,
		ProductID:        req.ProductID,
		Subject:          req.Subject,
		Message:          req.Message,
		QuantityRequired: req.QuantityRequired,
		TargetPrice:      req.TargetPrice,
		DeliveryTimeline: req.DeliveryTimeline,
	}

	if err := h.inquiries.Create(r.Context(), inquiry); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, inquiry)
}

type inquiryListResponse struct {
	Inquiries []model.Inquiry `json:"inquiries"`
}

// List returns the inquiries where the caller is buyer or supplier.
func (h *Inquiry) List(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.callerProfile(w, r)
	if !ok {
		return
	}

	inquiries, err := h.inquiries.ListForProfile(r.Context(), profile.ID)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	if inquiries == nil {
		inquiries = []model.Inquiry{}
	}

	response.WriteJSON(w, http.StatusOK, inquiryListResponse{Inquiries: inquiries})
}

type respondRequest struct {
	Message     string          `json:"message" validate:"required"`
	Attachments json.RawMessage `json:"attachments"`
}

// Respond appends a response to an inquiry thread. Only the buyer or supplier
// on the thread may respond.
func (h *Inquiry) Respond(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.callerProfile(w, r)
	if !ok {
		return
	}

	id, err := request.RequireID(chi.URLParam(r, "inquiryID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req respondRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	inquiry, err := h.inquiries.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	resp := &model.InquiryResponse{
		SenderID:    profile.ID,
		Message:     req.Message,
		Attachments: req.Attachments,
	}
	if err := h.inquiries.AddResponse(r.Context(), inquiry, resp); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, resp)
}

type responseListResponse struct {
	Responses []model.InquiryResponse `json:"responses"`
}

// Responses returns an inquiry's thread. Restricted to participants.
func (h *Inquiry) Responses(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.callerProfile(w, r)
	if !ok {
		return
	}

	id, err := request.RequireID(chi.URLParam(r, "inquiryID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	inquiry, err := h.inquiries.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	if profile.ID != inquiry.BuyerID && profile.ID != inquiry.SupplierID {
		response.WriteServiceError(w, core.ErrNotParticipant)
		return
	}

	responses, err := h.inquiries.ListResponses(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	if responses == nil {
		responses = []model.InquiryResponse{}
	}

	response.WriteJSON(w, http.StatusOK, responseListResponse{Responses: responses})
}
