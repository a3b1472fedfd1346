package store

import (
	"context"
	"time"

	"shgledger/internal/models"
)

type LoanStore struct {
	db DB
}

func NewLoanStore(db DB) *LoanStore {
	return &LoanStore{db: db}
}

type LoanInput struct {
	ID           string
	GroupID      string
	MemberID     string
	Principal    int64
	InterestRate string
	IssuedOn     time.Time
	Remarks      *string
}

func (s *LoanStore) Create(ctx context.Context, tx Execer, input LoanInput) error {
	query := `
		INSERT INTO loans (id, group_id, member_id, principal, interest_rate, issued_on, remarks, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'active')
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.GroupID, input.MemberID, input.Principal,
		input.InterestRate, input.IssuedOn, input.Remarks,
	)
	return err
}

func (s *LoanStore) GetByID(ctx context.Context, loanID string) (models.Loan, error) {
	var row models.Loan
	err := s.db.GetContext(ctx, &row, `
		SELECT id, group_id, member_id, principal, interest_rate, issued_on, remarks, status, closed_on, created_at
		FROM loans
		WHERE id = $1
	`, loanID)
	if err != nil {
		return models.Loan{}, err
	}
	return row, nil
}

// GetForUpdate locks the loan row for the duration of the surrounding
// transaction so that closure evaluation reads a stable status.
func (s *LoanStore) GetForUpdate(ctx context.Context, tx Getter, loanID string) (models.Loan, error) {
	var row models.Loan
	err := tx.GetContext(ctx, &row, `
		SELECT id, group_id, member_id, principal, interest_rate, issued_on, remarks, status, closed_on, created_at
		FROM loans
		WHERE id = $1
		FOR UPDATE
	`, loanID)
	if err != nil {
		return models.Loan{}, err
	}
	return row, nil
}

func (s *LoanStore) HasActiveLoan(ctx context.Context, tx Getter, memberID string) (bool, error) {
	var exists bool
	err := tx.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM loans WHERE member_id = $1 AND status = 'active')
	`, memberID)
	return exists, err
}

// SumPrincipalByGroup is cumulative principal ever disbursed, closed loans
// included. Wallet balance subtracts this from total savings.
func (s *LoanStore) SumPrincipalByGroup(ctx context.Context, groupID string) (int64, error) {
	var sum int64
	err := s.db.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(principal), 0)
		FROM loans
		WHERE group_id = $1
	`, groupID)
	return sum, err
}

func (s *LoanStore) CountActive(ctx context.Context, groupID string) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM loans
		WHERE group_id = $1 AND status = 'active'
	`, groupID)
	return count, err
}

func (s *LoanStore) Close(ctx context.Context, tx Execer, loanID string, closedOn time.Time) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE loans
		SET status = 'closed', closed_on = $1
		WHERE id = $2 AND status = 'active'
	`, closedOn, loanID)
	return err
}

type LoanWithMember struct {
	ID           string     `db:"id"`
	MemberID     string     `db:"member_id"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Principal    int64      `db:"principal"`
	InterestRate string     `db:"interest_rate"`
	IssuedOn     time.Time  `db:"issued_on"`
	Status       string     `db:"status"`
	ClosedOn     *time.Time `db:"closed_on"`
}

func (s *LoanStore) ListByGroup(ctx context.Context, groupID string, activeOnly bool) ([]LoanWithMember, error) {
	query := `
		SELECT l.id, l.member_id, m.first_name, m.last_name, l.principal, l.interest_rate, l.issued_on, l.status, l.closed_on
		FROM loans l
		JOIN members m ON m.id = l.member_id
		WHERE l.group_id = $1
	`
	if activeOnly {
		query += ` AND l.status = 'active'`
	}
	query += ` ORDER BY l.issued_on DESC, l.created_at DESC`
	var rows []LoanWithMember
	if err := s.db.SelectContext(ctx, &rows, query, groupID); err != nil {
		return nil, err
	}
	return rows, nil
}

// PayableRow feeds the dashboard's "next payable" listing: every active
// member with their active loan, if any.
type PayableRow struct {
	MemberID       string `db:"member_id"`
	FirstName      string `db:"first_name"`
	LastName       string `db:"last_name"`
	MonthlyDeposit int64  `db:"monthly_deposit"`
	Principal      int64  `db:"principal"`
	InterestRate   string `db:"interest_rate"`
}

func (s *LoanStore) ListPayable(ctx context.Context, groupID string) ([]PayableRow, error) {
	var rows []PayableRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT m.id AS member_id,
		       m.first_name,
		       m.last_name,
		       m.monthly_deposit,
		       COALESCE(l.principal, 0) AS principal,
		       COALESCE(l.interest_rate, 0) AS interest_rate
		FROM members m
		LEFT JOIN loans l ON l.member_id = m.id AND l.status = 'active'
		WHERE m.group_id = $1 AND m.status = 'active'
		ORDER BY m.first_name, m.last_name
	`, groupID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
