package services

import (
	"context"
	"time"

	"shgledger/internal/models"
	"shgledger/internal/store"
	"shgledger/internal/websocket"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	err error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type stubMemberReader struct {
	getByIDFn     func(ctx context.Context, memberID string) (models.Member, error)
	countActiveFn func(ctx context.Context, groupID string) (int64, error)
}

func (s stubMemberReader) GetByID(ctx context.Context, memberID string) (models.Member, error) {
	if s.getByIDFn == nil {
		return models.Member{ID: memberID, GroupID: "g1", Status: "active", MonthlyDeposit: 500}, nil
	}
	return s.getByIDFn(ctx, memberID)
}

func (s stubMemberReader) CountActive(ctx context.Context, groupID string) (int64, error) {
	if s.countActiveFn == nil {
		return 0, nil
	}
	return s.countActiveFn(ctx, groupID)
}

type stubDepositStore struct {
	createFn     func(ctx context.Context, tx store.Execer, input store.DepositInput) error
	sumByGroupFn func(ctx context.Context, groupID string) (int64, error)
}

func (s stubDepositStore) Create(ctx context.Context, tx store.Execer, input store.DepositInput) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, input)
}

func (s stubDepositStore) SumByGroup(ctx context.Context, groupID string) (int64, error) {
	if s.sumByGroupFn == nil {
		return 0, nil
	}
	return s.sumByGroupFn(ctx, groupID)
}

type stubLoanStore struct {
	createFn       func(ctx context.Context, tx store.Execer, input store.LoanInput) error
	getByIDFn      func(ctx context.Context, loanID string) (models.Loan, error)
	getForUpdateFn func(ctx context.Context, tx store.Getter, loanID string) (models.Loan, error)
	hasActiveFn    func(ctx context.Context, tx store.Getter, memberID string) (bool, error)
	sumPrincipalFn func(ctx context.Context, groupID string) (int64, error)
	countActiveFn  func(ctx context.Context, groupID string) (int64, error)
	closeFn        func(ctx context.Context, tx store.Execer, loanID string, closedOn time.Time) error
	listPayableFn  func(ctx context.Context, groupID string) ([]store.PayableRow, error)
}

func (s stubLoanStore) Create(ctx context.Context, tx store.Execer, input store.LoanInput) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, input)
}

func (s stubLoanStore) GetByID(ctx context.Context, loanID string) (models.Loan, error) {
	if s.getByIDFn == nil {
		return models.Loan{}, nil
	}
	return s.getByIDFn(ctx, loanID)
}

func (s stubLoanStore) GetForUpdate(ctx context.Context, tx store.Getter, loanID string) (models.Loan, error) {
	if s.getForUpdateFn == nil {
		return models.Loan{}, nil
	}
	return s.getForUpdateFn(ctx, tx, loanID)
}

func (s stubLoanStore) HasActiveLoan(ctx context.Context, tx store.Getter, memberID string) (bool, error) {
	if s.hasActiveFn == nil {
		return false, nil
	}
	return s.hasActiveFn(ctx, tx, memberID)
}

func (s stubLoanStore) SumPrincipalByGroup(ctx context.Context, groupID string) (int64, error) {
	if s.sumPrincipalFn == nil {
		return 0, nil
	}
	return s.sumPrincipalFn(ctx, groupID)
}

func (s stubLoanStore) CountActive(ctx context.Context, groupID string) (int64, error) {
	if s.countActiveFn == nil {
		return 0, nil
	}
	return s.countActiveFn(ctx, groupID)
}

func (s stubLoanStore) Close(ctx context.Context, tx store.Execer, loanID string, closedOn time.Time) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx, tx, loanID, closedOn)
}

func (s stubLoanStore) ListPayable(ctx context.Context, groupID string) ([]store.PayableRow, error) {
	if s.listPayableFn == nil {
		return nil, nil
	}
	return s.listPayableFn(ctx, groupID)
}

type stubPaymentStore struct {
	createFn    func(ctx context.Context, tx store.Execer, input store.LoanPaymentInput) error
	sumByKindFn func(ctx context.Context, q store.Getter, loanID, kind string) (int64, error)
}

func (s stubPaymentStore) Create(ctx context.Context, tx store.Execer, input store.LoanPaymentInput) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, input)
}

func (s stubPaymentStore) SumByKind(ctx context.Context, q store.Getter, loanID, kind string) (int64, error) {
	if s.sumByKindFn == nil {
		return 0, nil
	}
	return s.sumByKindFn(ctx, q, loanID, kind)
}

type stubPassbookStore struct {
	entries []store.PassbookInput
	err     error
}

func (s *stubPassbookStore) Append(ctx context.Context, tx store.Execer, input store.PassbookInput) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, input)
	return nil
}

type stubNotifier struct {
	deposits []int64
	loans    []int64
	closed   []int64
}

func (s *stubNotifier) DepositRecorded(_ context.Context, _ models.Member, amount, _ int64) {
	s.deposits = append(s.deposits, amount)
}

func (s *stubNotifier) LoanIssued(_ context.Context, _ models.Member, principal int64, _ string, _ int64) {
	s.loans = append(s.loans, principal)
}

func (s *stubNotifier) LoanClosed(_ context.Context, _ models.Member, principal int64) {
	s.closed = append(s.closed, principal)
}

type stubHub struct {
	updates []websocket.WalletUpdate
}

func (s *stubHub) BroadcastWallet(_ string, update websocket.WalletUpdate) {
	s.updates = append(s.updates, update)
}

type stubGroupStore struct {
	createFn         func(ctx context.Context, tx store.Execer, input store.GroupInput) error
	getBySHGNumberFn func(ctx context.Context, shgNumber string) (models.Group, error)
	getByIDFn        func(ctx context.Context, groupID string) (models.Group, error)
	existsFn         func(ctx context.Context, shgNumber string) (bool, error)
	updatePasswordFn func(ctx context.Context, tx store.Execer, groupID, passwordHash string) (int64, error)
}

func (s stubGroupStore) Create(ctx context.Context, tx store.Execer, input store.GroupInput) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, input)
}

func (s stubGroupStore) GetBySHGNumber(ctx context.Context, shgNumber string) (models.Group, error) {
	if s.getBySHGNumberFn == nil {
		return models.Group{}, nil
	}
	return s.getBySHGNumberFn(ctx, shgNumber)
}

func (s stubGroupStore) GetByID(ctx context.Context, groupID string) (models.Group, error) {
	if s.getByIDFn == nil {
		return models.Group{}, nil
	}
	return s.getByIDFn(ctx, groupID)
}

func (s stubGroupStore) Exists(ctx context.Context, shgNumber string) (bool, error) {
	if s.existsFn == nil {
		return false, nil
	}
	return s.existsFn(ctx, shgNumber)
}

func (s stubGroupStore) UpdatePresidentPassword(ctx context.Context, tx store.Execer, groupID, passwordHash string) (int64, error) {
	if s.updatePasswordFn == nil {
		return 1, nil
	}
	return s.updatePasswordFn(ctx, tx, groupID, passwordHash)
}

type stubMemberStore struct {
	createFn        func(ctx context.Context, tx store.Execer, input store.MemberInput) error
	getByIDFn       func(ctx context.Context, memberID string) (models.Member, error)
	findActiveFn    func(ctx context.Context, groupID, firstName, lastName, mobile string) (string, error)
	listActiveFn    func(ctx context.Context, groupID string) ([]models.Member, error)
	updateDetailsFn func(ctx context.Context, tx store.Execer, memberID, firstName, lastName, mobile string, monthlyDeposit int64) (int64, error)
	setStatusFn     func(ctx context.Context, tx store.Execer, memberID, status string) (int64, error)
}

func (s stubMemberStore) Create(ctx context.Context, tx store.Execer, input store.MemberInput) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, input)
}

func (s stubMemberStore) GetByID(ctx context.Context, memberID string) (models.Member, error) {
	if s.getByIDFn == nil {
		return models.Member{ID: memberID, GroupID: "g1", Status: "active"}, nil
	}
	return s.getByIDFn(ctx, memberID)
}

func (s stubMemberStore) FindActive(ctx context.Context, groupID, firstName, lastName, mobile string) (string, error) {
	if s.findActiveFn == nil {
		return "", nil
	}
	return s.findActiveFn(ctx, groupID, firstName, lastName, mobile)
}

func (s stubMemberStore) ListActive(ctx context.Context, groupID string) ([]models.Member, error) {
	if s.listActiveFn == nil {
		return nil, nil
	}
	return s.listActiveFn(ctx, groupID)
}

func (s stubMemberStore) UpdateDetails(ctx context.Context, tx store.Execer, memberID, firstName, lastName, mobile string, monthlyDeposit int64) (int64, error) {
	if s.updateDetailsFn == nil {
		return 1, nil
	}
	return s.updateDetailsFn(ctx, tx, memberID, firstName, lastName, mobile, monthlyDeposit)
}

func (s stubMemberStore) SetStatus(ctx context.Context, tx store.Execer, memberID, status string) (int64, error) {
	if s.setStatusFn == nil {
		return 1, nil
	}
	return s.setStatusFn(ctx, tx, memberID, status)
}
