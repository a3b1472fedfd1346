package services

import (
	"context"
	"errors"
	"time"

	"shgledger/internal/accounting"
	"shgledger/internal/db"
	"shgledger/internal/models"
	"shgledger/internal/store"
	"shgledger/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidRate      = errors.New("invalid interest rate")
	ErrInvalidKind      = errors.New("invalid payment kind")
	ErrMemberNotFound   = errors.New("member not found")
	ErrMemberInactive   = errors.New("member has left the group")
	ErrWrongGroup       = errors.New("member belongs to a different group")
	ErrLoanNotFound     = errors.New("loan not found")
	ErrActiveLoanExists = errors.New("member already has an active loan")
)

const (
	KindDeposit     = "deposit"
	KindLoanGiven   = "loan_given"
	KindLoanPayment = "loan_payment"

	PaymentPrincipal = "principal"
	PaymentInterest  = "interest"
)

type MemberReader interface {
	GetByID(ctx context.Context, memberID string) (models.Member, error)
	CountActive(ctx context.Context, groupID string) (int64, error)
}

type DepositStore interface {
	Create(ctx context.Context, tx store.Execer, input store.DepositInput) error
	SumByGroup(ctx context.Context, groupID string) (int64, error)
}

type LoanStore interface {
	Create(ctx context.Context, tx store.Execer, input store.LoanInput) error
	GetByID(ctx context.Context, loanID string) (models.Loan, error)
	GetForUpdate(ctx context.Context, tx store.Getter, loanID string) (models.Loan, error)
	HasActiveLoan(ctx context.Context, tx store.Getter, memberID string) (bool, error)
	SumPrincipalByGroup(ctx context.Context, groupID string) (int64, error)
	CountActive(ctx context.Context, groupID string) (int64, error)
	Close(ctx context.Context, tx store.Execer, loanID string, closedOn time.Time) error
	ListPayable(ctx context.Context, groupID string) ([]store.PayableRow, error)
}

type LoanPaymentStore interface {
	Create(ctx context.Context, tx store.Execer, input store.LoanPaymentInput) error
	SumByKind(ctx context.Context, q store.Getter, loanID, kind string) (int64, error)
}

type PassbookStore interface {
	Append(ctx context.Context, tx store.Execer, input store.PassbookInput) error
}

// Notifier is fire-and-forget: implementations log outcomes themselves and
// never return errors to the ledger path.
type Notifier interface {
	DepositRecorded(ctx context.Context, member models.Member, amount, walletBalance int64)
	LoanIssued(ctx context.Context, member models.Member, principal int64, rate string, monthlyPayable int64)
	LoanClosed(ctx context.Context, member models.Member, principal int64)
}

type WalletHub interface {
	BroadcastWallet(groupID string, update websocket.WalletUpdate)
}

// LedgerService owns every ledger-mutating operation. Each one runs as a
// single transaction writing the ledger row and its passbook entry together;
// notifications and wallet broadcasts happen only after commit.
type LedgerService struct {
	txRunner db.TxRunner
	members  MemberReader
	deposits DepositStore
	loans    LoanStore
	payments LoanPaymentStore
	passbook PassbookStore
	notifier Notifier
	hub      WalletHub
	log      *zap.Logger
}

func NewLedgerService(txRunner db.TxRunner, members MemberReader, deposits DepositStore, loans LoanStore, payments LoanPaymentStore, passbook PassbookStore, notifier Notifier, hub WalletHub, log *zap.Logger) *LedgerService {
	return &LedgerService{
		txRunner: txRunner,
		members:  members,
		deposits: deposits,
		loans:    loans,
		payments: payments,
		passbook: passbook,
		notifier: notifier,
		hub:      hub,
		log:      log,
	}
}

type DepositRequest struct {
	GroupID     string
	MemberID    string
	Amount      int64
	Month       int
	Year        int
	RecordedBy  string
	EffectiveOn *time.Time // set only by the historical-data-entry path
}

type DepositResult struct {
	DepositID     string
	WalletBalance int64
}

func (s *LedgerService) AddDeposit(ctx context.Context, req DepositRequest) (DepositResult, error) {
	if req.Amount <= 0 {
		return DepositResult{}, ErrInvalidAmount
	}
	member, err := s.activeMember(ctx, req.GroupID, req.MemberID)
	if err != nil {
		return DepositResult{}, err
	}
	depositID := uuid.NewString()
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.deposits.Create(ctx, tx, store.DepositInput{
			ID:       depositID,
			GroupID:  req.GroupID,
			MemberID: req.MemberID,
			Amount:   req.Amount,
			Month:    req.Month,
			Year:     req.Year,
		}); err != nil {
			return err
		}
		return s.passbook.Append(ctx, tx, passbookFor(req.GroupID, req.MemberID, KindDeposit, req.Amount, req.RecordedBy, req.EffectiveOn))
	})
	if err != nil {
		return DepositResult{}, err
	}
	balance, err := s.WalletBalance(ctx, req.GroupID)
	if err != nil {
		// deposit is committed; balance is only for the response
		s.log.Warn("wallet balance read failed after deposit", zap.Error(err))
		balance = 0
	}
	s.hub.BroadcastWallet(req.GroupID, websocket.WalletUpdate{Balance: balance})
	s.notifier.DepositRecorded(ctx, member, req.Amount, balance)
	return DepositResult{DepositID: depositID, WalletBalance: balance}, nil
}

type IssueLoanRequest struct {
	GroupID     string
	MemberID    string
	Principal   int64
	Rate        decimal.Decimal
	Remarks     string
	RecordedBy  string
	EffectiveOn *time.Time
}

type IssueLoanResult struct {
	LoanID         string
	MonthlyPayable int64
	WalletBalance  int64
}

func (s *LedgerService) IssueLoan(ctx context.Context, req IssueLoanRequest) (IssueLoanResult, error) {
	if req.Principal <= 0 {
		return IssueLoanResult{}, ErrInvalidAmount
	}
	if req.Rate.IsNegative() {
		return IssueLoanResult{}, ErrInvalidRate
	}
	member, err := s.activeMember(ctx, req.GroupID, req.MemberID)
	if err != nil {
		return IssueLoanResult{}, err
	}
	loanID := uuid.NewString()
	issuedOn := effectiveDate(req.EffectiveOn)
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		// check-and-insert in one transaction; the partial unique index on
		// active loans is the backstop against concurrent issuance
		hasActive, err := s.loans.HasActiveLoan(ctx, tx, req.MemberID)
		if err != nil {
			return err
		}
		if hasActive {
			return ErrActiveLoanExists
		}
		var remarks *string
		if req.Remarks != "" {
			remarks = &req.Remarks
		}
		if err := s.loans.Create(ctx, tx, store.LoanInput{
			ID:           loanID,
			GroupID:      req.GroupID,
			MemberID:     req.MemberID,
			Principal:    req.Principal,
			InterestRate: req.Rate.String(),
			IssuedOn:     issuedOn,
			Remarks:      remarks,
		}); err != nil {
			return err
		}
		return s.passbook.Append(ctx, tx, passbookFor(req.GroupID, req.MemberID, KindLoanGiven, req.Principal, req.RecordedBy, req.EffectiveOn))
	})
	if err != nil {
		if isUniqueViolation(err) {
			return IssueLoanResult{}, ErrActiveLoanExists
		}
		return IssueLoanResult{}, err
	}
	balance, err := s.WalletBalance(ctx, req.GroupID)
	if err != nil {
		s.log.Warn("wallet balance read failed after loan", zap.Error(err))
		balance = 0
	}
	if balance < 0 {
		s.log.Warn("group wallet went negative after disbursal",
			zap.String("group_id", req.GroupID),
			zap.Int64("wallet_balance", balance))
	}
	payable := accounting.MonthlyPayable(req.Principal, req.Rate, member.MonthlyDeposit)
	s.hub.BroadcastWallet(req.GroupID, websocket.WalletUpdate{Balance: balance})
	s.notifier.LoanIssued(ctx, member, req.Principal, req.Rate.String(), payable)
	return IssueLoanResult{LoanID: loanID, MonthlyPayable: payable, WalletBalance: balance}, nil
}

type RepaymentRequest struct {
	LoanID      string
	Amount      int64
	Kind        string
	RecordedBy  string
	EffectiveOn *time.Time
}

type RepaymentResult struct {
	PaymentID   string
	Outstanding int64
	Closed      bool
}

// RecordRepayment appends the payment and its passbook entry, then
// re-derives closure from full payment history inside the same transaction.
// Status stays a pure function of the ledger; repaying a closed loan is a
// recorded no-op on state.
func (s *LedgerService) RecordRepayment(ctx context.Context, req RepaymentRequest) (RepaymentResult, error) {
	if req.Amount <= 0 {
		return RepaymentResult{}, ErrInvalidAmount
	}
	if req.Kind != PaymentPrincipal && req.Kind != PaymentInterest {
		return RepaymentResult{}, ErrInvalidKind
	}
	paymentID := uuid.NewString()
	var outstanding int64
	var closedNow bool
	var loan models.Loan
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		loan, err = s.loans.GetForUpdate(ctx, tx, req.LoanID)
		if err != nil {
			return err
		}
		if err := s.payments.Create(ctx, tx, store.LoanPaymentInput{
			ID:     paymentID,
			LoanID: req.LoanID,
			Amount: req.Amount,
			Kind:   req.Kind,
			PaidOn: effectiveDate(req.EffectiveOn),
		}); err != nil {
			return err
		}
		if err := s.passbook.Append(ctx, tx, passbookFor(loan.GroupID, loan.MemberID, KindLoanPayment, req.Amount, req.RecordedBy, req.EffectiveOn)); err != nil {
			return err
		}
		repaid, err := s.payments.SumByKind(ctx, tx, req.LoanID, PaymentPrincipal)
		if err != nil {
			return err
		}
		outstanding = accounting.Outstanding(loan.Principal, repaid)
		if accounting.IsFullyPaid(loan.Principal, repaid) && loan.Status == "active" {
			if err := s.loans.Close(ctx, tx, req.LoanID, effectiveDate(req.EffectiveOn)); err != nil {
				return err
			}
			closedNow = true
		}
		return nil
	})
	if err != nil {
		return RepaymentResult{}, err
	}
	if closedNow {
		if member, err := s.members.GetByID(ctx, loan.MemberID); err == nil {
			s.notifier.LoanClosed(ctx, member, loan.Principal)
		} else {
			s.log.Warn("member lookup failed for loan-closed notice", zap.Error(err))
		}
	}
	return RepaymentResult{PaymentID: paymentID, Outstanding: outstanding, Closed: closedNow}, nil
}

func (s *LedgerService) TotalSavings(ctx context.Context, groupID string) (int64, error) {
	return s.deposits.SumByGroup(ctx, groupID)
}

func (s *LedgerService) TotalLoanGiven(ctx context.Context, groupID string) (int64, error) {
	return s.loans.SumPrincipalByGroup(ctx, groupID)
}

func (s *LedgerService) WalletBalance(ctx context.Context, groupID string) (int64, error) {
	savings, err := s.deposits.SumByGroup(ctx, groupID)
	if err != nil {
		return 0, err
	}
	loaned, err := s.loans.SumPrincipalByGroup(ctx, groupID)
	if err != nil {
		return 0, err
	}
	return accounting.WalletBalance(savings, loaned), nil
}

type PayableItem struct {
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	Payable    int64  `json:"payable"`
}

type GroupStats struct {
	TotalSavings   int64         `json:"total_savings"`
	TotalLoanGiven int64         `json:"total_loan_given"`
	WalletBalance  int64         `json:"wallet_balance"`
	ActiveMembers  int64         `json:"active_members"`
	ActiveLoans    int64         `json:"active_loans"`
	Payables       []PayableItem `json:"payables"`
}

// Stats assembles the dashboard numbers. Counts cover active members only;
// the savings and loan totals still include history of members who left.
func (s *LedgerService) Stats(ctx context.Context, groupID string) (GroupStats, error) {
	savings, err := s.deposits.SumByGroup(ctx, groupID)
	if err != nil {
		return GroupStats{}, err
	}
	loaned, err := s.loans.SumPrincipalByGroup(ctx, groupID)
	if err != nil {
		return GroupStats{}, err
	}
	activeMembers, err := s.members.CountActive(ctx, groupID)
	if err != nil {
		return GroupStats{}, err
	}
	activeLoans, err := s.loans.CountActive(ctx, groupID)
	if err != nil {
		return GroupStats{}, err
	}
	rows, err := s.loans.ListPayable(ctx, groupID)
	if err != nil {
		return GroupStats{}, err
	}
	payables := make([]PayableItem, 0, len(rows))
	for _, row := range rows {
		rate, err := decimal.NewFromString(row.InterestRate)
		if err != nil {
			rate = decimal.Zero
		}
		payables = append(payables, PayableItem{
			MemberID:   row.MemberID,
			MemberName: row.FirstName + " " + row.LastName,
			Payable:    accounting.MonthlyPayable(row.Principal, rate, row.MonthlyDeposit),
		})
	}
	return GroupStats{
		TotalSavings:   savings,
		TotalLoanGiven: loaned,
		WalletBalance:  accounting.WalletBalance(savings, loaned),
		ActiveMembers:  activeMembers,
		ActiveLoans:    activeLoans,
		Payables:       payables,
	}, nil
}

func (s *LedgerService) activeMember(ctx context.Context, groupID, memberID string) (models.Member, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return models.Member{}, ErrMemberNotFound
	}
	if member.GroupID != groupID {
		return models.Member{}, ErrWrongGroup
	}
	if member.Status != "active" {
		return models.Member{}, ErrMemberInactive
	}
	return member, nil
}

func passbookFor(groupID, memberID, kind string, amount int64, recordedBy string, effectiveOn *time.Time) store.PassbookInput {
	return store.PassbookInput{
		ID:          uuid.NewString(),
		GroupID:     groupID,
		MemberID:    memberID,
		Kind:        kind,
		Amount:      amount,
		RecordedBy:  recordedBy,
		Legacy:      effectiveOn != nil,
		EffectiveOn: effectiveDate(effectiveOn),
	}
}

func effectiveDate(effectiveOn *time.Time) time.Time {
	if effectiveOn != nil {
		return *effectiveOn
	}
	return time.Now()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505"
}
