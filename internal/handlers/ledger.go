package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"shgledger/internal/auth"
	"shgledger/internal/middleware"
	"shgledger/internal/services"
	"shgledger/internal/validator"

	"github.com/go-chi/chi/v5"
)

type depositRequest struct {
	MemberID    string `json:"member_id"`
	Amount      string `json:"amount"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	EffectiveOn string `json:"effective_on"`
}

func (h *Handler) AddDeposit(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	if err := validator.ValidateMonth(req.Month); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidateYear(req.Year); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	effectiveOn, err := parseEffectiveOn(req.EffectiveOn)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid effective date")
		return
	}
	result, err := h.ledger.AddDeposit(r.Context(), services.DepositRequest{
		GroupID:     claims.GroupID,
		MemberID:    req.MemberID,
		Amount:      amount,
		Month:       req.Month,
		Year:        req.Year,
		RecordedBy:  auth.RolePresident,
		EffectiveOn: effectiveOn,
	})
	if err != nil {
		respondLedgerError(w, err, "failed to record deposit")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"deposit_id":     result.DepositID,
		"wallet_balance": result.WalletBalance,
	})
}

type issueLoanRequest struct {
	MemberID    string `json:"member_id"`
	Principal   string `json:"principal"`
	Rate        string `json:"interest_rate"`
	Remarks     string `json:"remarks"`
	EffectiveOn string `json:"effective_on"`
}

func (h *Handler) IssueLoan(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req issueLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	principal, err := parseAmount(req.Principal)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	rate, err := parseRate(req.Rate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_rate")
		return
	}
	effectiveOn, err := parseEffectiveOn(req.EffectiveOn)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid effective date")
		return
	}
	result, err := h.ledger.IssueLoan(r.Context(), services.IssueLoanRequest{
		GroupID:     claims.GroupID,
		MemberID:    req.MemberID,
		Principal:   principal,
		Rate:        rate,
		Remarks:     req.Remarks,
		RecordedBy:  auth.RolePresident,
		EffectiveOn: effectiveOn,
	})
	if err != nil {
		respondLedgerError(w, err, "failed to issue loan")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"loan_id":         result.LoanID,
		"monthly_payable": result.MonthlyPayable,
		"wallet_balance":  result.WalletBalance,
	})
}

type repaymentRequest struct {
	Amount      string `json:"amount"`
	Kind        string `json:"kind"`
	EffectiveOn string `json:"effective_on"`
}

func (h *Handler) RecordRepayment(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	loanID := chi.URLParam(r, "id")
	loan, err := h.loans.GetByID(r.Context(), loanID)
	if err != nil {
		respondError(w, http.StatusNotFound, "loan not found")
		return
	}
	if loan.GroupID != claims.GroupID {
		respondError(w, http.StatusNotFound, "loan not found")
		return
	}
	var req repaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	effectiveOn, err := parseEffectiveOn(req.EffectiveOn)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid effective date")
		return
	}
	result, err := h.ledger.RecordRepayment(r.Context(), services.RepaymentRequest{
		LoanID:      loanID,
		Amount:      amount,
		Kind:        req.Kind,
		RecordedBy:  auth.RolePresident,
		EffectiveOn: effectiveOn,
	})
	if err != nil {
		respondLedgerError(w, err, "failed to record payment")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"payment_id":  result.PaymentID,
		"outstanding": result.Outstanding,
		"closed":      result.Closed,
	})
}

func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	activeOnly := r.URL.Query().Get("status") == "active"
	loans, err := h.loans.ListByGroup(r.Context(), claims.GroupID, activeOnly)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list loans")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"loans": loans})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	group, err := h.groups.GetByID(r.Context(), claims.GroupID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load group")
		return
	}
	stats, err := h.ledger.Stats(r.Context(), claims.GroupID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"group": group,
		"stats": stats,
	})
}

// Passbook returns the ledger entries for the caller's scope: presidents see
// the whole group, members only their own rows.
func (h *Handler) Passbook(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	limit, offset := paging(r)
	var entries []map[string]any
	var err error
	if claims.Role == auth.RoleMember {
		entries, err = h.passbook.ListByMember(r.Context(), claims.MemberID, limit, offset)
	} else {
		memberID := r.URL.Query().Get("member_id")
		if memberID != "" {
			entries, err = h.passbook.ListByMember(r.Context(), memberID, limit, offset)
		} else {
			entries, err = h.passbook.ListByGroup(r.Context(), claims.GroupID, limit, offset)
		}
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list passbook")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	limit, offset := paging(r)
	logs, err := h.notifications.ListByGroup(r.Context(), claims.GroupID, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"notifications": logs})
}

func paging(r *http.Request) (int, int) {
	limit := 50
	offset := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}

func respondLedgerError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount):
		respondError(w, http.StatusBadRequest, "invalid_amount")
	case errors.Is(err, services.ErrInvalidRate):
		respondError(w, http.StatusBadRequest, "invalid_rate")
	case errors.Is(err, services.ErrInvalidKind):
		respondError(w, http.StatusBadRequest, "invalid payment kind")
	case errors.Is(err, services.ErrMemberNotFound), errors.Is(err, services.ErrWrongGroup):
		respondError(w, http.StatusNotFound, "member not found")
	case errors.Is(err, services.ErrMemberInactive):
		respondError(w, http.StatusConflict, "member has left the group")
	case errors.Is(err, services.ErrLoanNotFound):
		respondError(w, http.StatusNotFound, "loan not found")
	case errors.Is(err, services.ErrActiveLoanExists):
		respondError(w, http.StatusConflict, "member already has an active loan")
	default:
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
