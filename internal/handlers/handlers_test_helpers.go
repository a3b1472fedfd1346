package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"shgledger/internal/auth"
	"shgledger/internal/config"
	"shgledger/internal/middleware"
	"shgledger/internal/models"
	"shgledger/internal/services"
	"shgledger/internal/store"
	"shgledger/internal/websocket"
)

type stubRegistry struct {
	createGroupFn    func(ctx context.Context, req services.CreateGroupRequest) (string, error)
	authPresidentFn  func(ctx context.Context, shgNumber, username, password string) (models.Group, bool, error)
	authMemberFn     func(ctx context.Context, shgNumber, firstName, lastName, mobile string) (models.Group, string, bool, error)
	changePasswordFn func(ctx context.Context, groupID, oldPassword, newPassword string) error
	addMemberFn      func(ctx context.Context, req services.AddMemberRequest) (string, error)
	updateMemberFn   func(ctx context.Context, req services.UpdateMemberRequest) error
	deactivateFn     func(ctx context.Context, groupID, memberID string) error
	reactivateFn     func(ctx context.Context, groupID, memberID string) error
	listMembersFn    func(ctx context.Context, groupID string) ([]models.Member, error)
}

func (s stubRegistry) CreateGroup(ctx context.Context, req services.CreateGroupRequest) (string, error) {
	if s.createGroupFn == nil {
		return "group-1", nil
	}
	return s.createGroupFn(ctx, req)
}

func (s stubRegistry) AuthenticatePresident(ctx context.Context, shgNumber, username, password string) (models.Group, bool, error) {
	if s.authPresidentFn == nil {
		return models.Group{ID: "group-1", Name: "Savitri Mahila Bachat Gat"}, true, nil
	}
	return s.authPresidentFn(ctx, shgNumber, username, password)
}

func (s stubRegistry) AuthenticateMember(ctx context.Context, shgNumber, firstName, lastName, mobile string) (models.Group, string, bool, error) {
	if s.authMemberFn == nil {
		return models.Group{ID: "group-1"}, "member-1", true, nil
	}
	return s.authMemberFn(ctx, shgNumber, firstName, lastName, mobile)
}

func (s stubRegistry) ChangePresidentPassword(ctx context.Context, groupID, oldPassword, newPassword string) error {
	if s.changePasswordFn == nil {
		return nil
	}
	return s.changePasswordFn(ctx, groupID, oldPassword, newPassword)
}

func (s stubRegistry) AddMember(ctx context.Context, req services.AddMemberRequest) (string, error) {
	if s.addMemberFn == nil {
		return "member-1", nil
	}
	return s.addMemberFn(ctx, req)
}

func (s stubRegistry) UpdateMember(ctx context.Context, req services.UpdateMemberRequest) error {
	if s.updateMemberFn == nil {
		return nil
	}
	return s.updateMemberFn(ctx, req)
}

func (s stubRegistry) DeactivateMember(ctx context.Context, groupID, memberID string) error {
	if s.deactivateFn == nil {
		return nil
	}
	return s.deactivateFn(ctx, groupID, memberID)
}

func (s stubRegistry) ReactivateMember(ctx context.Context, groupID, memberID string) error {
	if s.reactivateFn == nil {
		return nil
	}
	return s.reactivateFn(ctx, groupID, memberID)
}

func (s stubRegistry) ListMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	if s.listMembersFn == nil {
		return nil, nil
	}
	return s.listMembersFn(ctx, groupID)
}

type stubLedger struct {
	addDepositFn      func(ctx context.Context, req services.DepositRequest) (services.DepositResult, error)
	issueLoanFn       func(ctx context.Context, req services.IssueLoanRequest) (services.IssueLoanResult, error)
	recordRepaymentFn func(ctx context.Context, req services.RepaymentRequest) (services.RepaymentResult, error)
	walletBalanceFn   func(ctx context.Context, groupID string) (int64, error)
	totalSavingsFn    func(ctx context.Context, groupID string) (int64, error)
	totalLoanGivenFn  func(ctx context.Context, groupID string) (int64, error)
	statsFn           func(ctx context.Context, groupID string) (services.GroupStats, error)
}

func (s stubLedger) AddDeposit(ctx context.Context, req services.DepositRequest) (services.DepositResult, error) {
	if s.addDepositFn == nil {
		return services.DepositResult{DepositID: "deposit-1", WalletBalance: 500}, nil
	}
	return s.addDepositFn(ctx, req)
}

func (s stubLedger) IssueLoan(ctx context.Context, req services.IssueLoanRequest) (services.IssueLoanResult, error) {
	if s.issueLoanFn == nil {
		return services.IssueLoanResult{LoanID: "loan-1"}, nil
	}
	return s.issueLoanFn(ctx, req)
}

func (s stubLedger) RecordRepayment(ctx context.Context, req services.RepaymentRequest) (services.RepaymentResult, error) {
	if s.recordRepaymentFn == nil {
		return services.RepaymentResult{PaymentID: "payment-1"}, nil
	}
	return s.recordRepaymentFn(ctx, req)
}

func (s stubLedger) WalletBalance(ctx context.Context, groupID string) (int64, error) {
	if s.walletBalanceFn == nil {
		return 0, nil
	}
	return s.walletBalanceFn(ctx, groupID)
}

func (s stubLedger) TotalSavings(ctx context.Context, groupID string) (int64, error) {
	if s.totalSavingsFn == nil {
		return 0, nil
	}
	return s.totalSavingsFn(ctx, groupID)
}

func (s stubLedger) TotalLoanGiven(ctx context.Context, groupID string) (int64, error) {
	if s.totalLoanGivenFn == nil {
		return 0, nil
	}
	return s.totalLoanGivenFn(ctx, groupID)
}

func (s stubLedger) Stats(ctx context.Context, groupID string) (services.GroupStats, error) {
	if s.statsFn == nil {
		return services.GroupStats{}, nil
	}
	return s.statsFn(ctx, groupID)
}

type stubGroupReader struct {
	getByIDFn func(ctx context.Context, groupID string) (models.Group, error)
}

func (s stubGroupReader) GetByID(ctx context.Context, groupID string) (models.Group, error) {
	if s.getByIDFn == nil {
		return models.Group{ID: groupID, Name: "Savitri Mahila Bachat Gat", Village: "Wai"}, nil
	}
	return s.getByIDFn(ctx, groupID)
}

type stubLoanReader struct {
	getByIDFn     func(ctx context.Context, loanID string) (models.Loan, error)
	listByGroupFn func(ctx context.Context, groupID string, activeOnly bool) ([]store.LoanWithMember, error)
}

func (s stubLoanReader) GetByID(ctx context.Context, loanID string) (models.Loan, error) {
	if s.getByIDFn == nil {
		return models.Loan{ID: loanID, GroupID: "group-1", Status: "active"}, nil
	}
	return s.getByIDFn(ctx, loanID)
}

func (s stubLoanReader) ListByGroup(ctx context.Context, groupID string, activeOnly bool) ([]store.LoanWithMember, error) {
	if s.listByGroupFn == nil {
		return nil, nil
	}
	return s.listByGroupFn(ctx, groupID, activeOnly)
}

type stubPassbookReader struct {
	listByGroupFn  func(ctx context.Context, groupID string, limit, offset int) ([]map[string]any, error)
	listByMemberFn func(ctx context.Context, memberID string, limit, offset int) ([]map[string]any, error)
}

func (s stubPassbookReader) ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]map[string]any, error) {
	if s.listByGroupFn == nil {
		return nil, nil
	}
	return s.listByGroupFn(ctx, groupID, limit, offset)
}

func (s stubPassbookReader) ListByMember(ctx context.Context, memberID string, limit, offset int) ([]map[string]any, error) {
	if s.listByMemberFn == nil {
		return nil, nil
	}
	return s.listByMemberFn(ctx, memberID, limit, offset)
}

type stubReportStore struct {
	memberRowsFn func(ctx context.Context, groupID string) ([]store.MemberReportRow, error)
	loanRowsFn   func(ctx context.Context, groupID string) ([]store.LoanReportRow, error)
}

func (s stubReportStore) MemberRows(ctx context.Context, groupID string) ([]store.MemberReportRow, error) {
	if s.memberRowsFn == nil {
		return nil, nil
	}
	return s.memberRowsFn(ctx, groupID)
}

func (s stubReportStore) LoanRows(ctx context.Context, groupID string) ([]store.LoanReportRow, error) {
	if s.loanRowsFn == nil {
		return nil, nil
	}
	return s.loanRowsFn(ctx, groupID)
}

type stubNotificationReader struct {
	listByGroupFn func(ctx context.Context, groupID string, limit, offset int) ([]models.NotificationLog, error)
}

func (s stubNotificationReader) ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]models.NotificationLog, error) {
	if s.listByGroupFn == nil {
		return nil, nil
	}
	return s.listByGroupFn(ctx, groupID, limit, offset)
}

func newTestHandler(registry RegistryService, ledger LedgerService, groups GroupReader, loans LoanReader, passbook PassbookReader, reports ReportStore, notifications NotificationReader) *Handler {
	cfg := config.Config{
		JWTSecret: "secret",
		TokenTTL:  time.Hour,
	}
	return New(cfg, registry, ledger, groups, loans, passbook, reports, notifications, websocket.NewHub())
}

func testToken(t *testing.T, role, memberID string) string {
	t.Helper()
	token, err := auth.GenerateToken("secret", "group-1", role, memberID, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func authorize(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

func wrapAuth(h *Handler, fn http.HandlerFunc) http.Handler {
	return middleware.Auth(h.cfg.JWTSecret)(fn)
}
