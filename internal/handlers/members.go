package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"shgledger/internal/middleware"
	"shgledger/internal/services"
	"shgledger/internal/validator"

	"github.com/go-chi/chi/v5"
)

type memberRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Mobile         string `json:"mobile"`
	MonthlyDeposit string `json:"monthly_deposit"`
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validateMemberRequest(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	monthlyDeposit, err := parseAmount(req.MonthlyDeposit)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	memberID, err := h.registry.AddMember(r.Context(), services.AddMemberRequest{
		GroupID:        claims.GroupID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Mobile:         req.Mobile,
		MonthlyDeposit: monthlyDeposit,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to add member")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"member_id": memberID})
}

func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	memberID := chi.URLParam(r, "id")
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validateMemberRequest(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	monthlyDeposit, err := parseAmount(req.MonthlyDeposit)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	err = h.registry.UpdateMember(r.Context(), services.UpdateMemberRequest{
		GroupID:        claims.GroupID,
		MemberID:       memberID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Mobile:         req.Mobile,
		MonthlyDeposit: monthlyDeposit,
	})
	if err != nil {
		respondMemberError(w, err, "failed to update member")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) DeactivateMember(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	memberID := chi.URLParam(r, "id")
	if err := h.registry.DeactivateMember(r.Context(), claims.GroupID, memberID); err != nil {
		respondMemberError(w, err, "failed to deactivate member")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "left"})
}

func (h *Handler) ReactivateMember(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	memberID := chi.URLParam(r, "id")
	if err := h.registry.ReactivateMember(r.Context(), claims.GroupID, memberID); err != nil {
		respondMemberError(w, err, "failed to reactivate member")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "active"})
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	members, err := h.registry.ListMembers(r.Context(), claims.GroupID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"members": members})
}

func validateMemberRequest(req memberRequest) error {
	if err := validator.ValidateName(req.FirstName); err != nil {
		return err
	}
	if err := validator.ValidateName(req.LastName); err != nil {
		return err
	}
	return validator.ValidateMobile(req.Mobile)
}

func respondMemberError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrMemberNotFound), errors.Is(err, services.ErrWrongGroup):
		respondError(w, http.StatusNotFound, "member not found")
	case errors.Is(err, services.ErrInvalidAmount):
		respondError(w, http.StatusBadRequest, "invalid_amount")
	default:
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
