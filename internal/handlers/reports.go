package handlers

import (
	"net/http"
	"time"

	"shgledger/internal/accounting"
	"shgledger/internal/middleware"
	"shgledger/internal/report"
)

// SummaryReport renders the group report as an XHTML document. The period is
// display-only; totals always cover the full ledger, matching the passbook.
func (h *Handler) SummaryReport(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	periodTo := time.Now()
	periodFrom := periodTo.AddDate(-1, 0, 0)
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid from date")
			return
		}
		periodFrom = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid to date")
			return
		}
		periodTo = parsed
	}
	group, err := h.groups.GetByID(r.Context(), claims.GroupID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load group")
		return
	}
	savings, err := h.ledger.TotalSavings(r.Context(), claims.GroupID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compile report")
		return
	}
	loanGiven, err := h.ledger.TotalLoanGiven(r.Context(), claims.GroupID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compile report")
		return
	}
	memberRows, err := h.reports.MemberRows(r.Context(), claims.GroupID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compile report")
		return
	}
	loanRows, err := h.reports.LoanRows(r.Context(), claims.GroupID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compile report")
		return
	}
	input := report.Input{
		GroupName:  group.Name,
		Village:    group.Village,
		PeriodFrom: periodFrom,
		PeriodTo:   periodTo,
		Summary: report.Summary{
			Savings:   savings,
			LoanGiven: loanGiven,
			Cash:      accounting.WalletBalance(savings, loanGiven),
		},
	}
	for _, row := range memberRows {
		input.MemberRows = append(input.MemberRows, report.MemberRow{
			Name:    row.FirstName + " " + row.LastName,
			Deposit: row.DepositTotal,
			Loan:    row.LoanTotal,
			Repaid:  row.RepaidTotal,
			Balance: accounting.Outstanding(row.LoanTotal, row.RepaidTotal),
		})
	}
	for _, row := range loanRows {
		input.LoanRows = append(input.LoanRows, report.LoanRow{
			Name:         row.FirstName + " " + row.LastName,
			Amount:       row.Principal,
			InterestPaid: row.InterestPaid,
			Status:       row.Status,
		})
	}
	document, err := report.Compile(input)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compile report")
		return
	}
	w.Header().Set("Content-Type", "application/xhtml+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(document)
}
