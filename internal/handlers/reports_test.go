package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shgledger/internal/auth"
	"shgledger/internal/store"
)

func TestSummaryReportRendersDocument(t *testing.T) {
	handler := newTestHandler(stubRegistry{}, stubLedger{
		totalSavingsFn: func(context.Context, string) (int64, error) {
			return 125000, nil
		},
		totalLoanGivenFn: func(context.Context, string) (int64, error) {
			return 40000, nil
		},
	}, stubGroupReader{}, stubLoanReader{}, stubPassbookReader{}, stubReportStore{
		memberRowsFn: func(context.Context, string) ([]store.MemberReportRow, error) {
			return []store.MemberReportRow{
				{FirstName: "Sita", LastName: "Pawar", DepositTotal: 6000, LoanTotal: 10000, RepaidTotal: 4000},
			}, nil
		},
		loanRowsFn: func(context.Context, string) ([]store.LoanReportRow, error) {
			return []store.LoanReportRow{
				{FirstName: "Sita", LastName: "Pawar", Principal: 10000, InterestPaid: 600, Status: "active"},
			}, nil
		},
	}, stubNotificationReader{})

	req := httptest.NewRequest(http.MethodGet, "/reports/summary?from=2023-04-01&to=2024-03-31", nil)
	authorize(req, testToken(t, auth.RolePresident, ""))
	rr := httptest.NewRecorder()
	wrapAuth(handler, handler.SummaryReport).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "application/xhtml+xml" {
		t.Fatalf("unexpected content type: %s", got)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Savitri Mahila Bachat Gat") {
		t.Fatalf("expected group name in report: %s", body)
	}
	if !strings.Contains(body, "Rs 1,25,000") {
		t.Fatalf("expected savings total in report: %s", body)
	}
	if !strings.Contains(body, "Sita Pawar") {
		t.Fatalf("expected member row in report: %s", body)
	}
}

func TestSummaryReportRejectsBadPeriod(t *testing.T) {
	handler := newTestHandler(stubRegistry{}, stubLedger{}, stubGroupReader{}, stubLoanReader{}, stubPassbookReader{}, stubReportStore{}, stubNotificationReader{})

	req := httptest.NewRequest(http.MethodGet, "/reports/summary?from=April-2023", nil)
	authorize(req, testToken(t, auth.RolePresident, ""))
	rr := httptest.NewRecorder()
	wrapAuth(handler, handler.SummaryReport).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
