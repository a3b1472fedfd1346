package store

import (
	"context"
	"time"

	"shgledger/internal/models"
)

type LoanPaymentStore struct {
	db DB
}

func NewLoanPaymentStore(db DB) *LoanPaymentStore {
	return &LoanPaymentStore{db: db}
}

type LoanPaymentInput struct {
	ID     string
	LoanID string
	Amount int64
	Kind   string
	PaidOn time.Time
}

func (s *LoanPaymentStore) Create(ctx context.Context, tx Execer, input LoanPaymentInput) error {
	query := `
		INSERT INTO loan_payments (id, loan_id, amount, kind, paid_on)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.ExecContext(ctx, query, input.ID, input.LoanID, input.Amount, input.Kind, input.PaidOn)
	return err
}

// SumByKind totals a loan's payments of one kind. Principal sums drive
// closure; interest sums are reporting only. Callable with the repayment
// transaction handle so closure sees the payment just written.
func (s *LoanPaymentStore) SumByKind(ctx context.Context, q Getter, loanID, kind string) (int64, error) {
	var sum int64
	err := q.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(amount), 0)
		FROM loan_payments
		WHERE loan_id = $1 AND kind = $2
	`, loanID, kind)
	return sum, err
}

func (s *LoanPaymentStore) ListByLoan(ctx context.Context, loanID string) ([]models.LoanPayment, error) {
	var rows []models.LoanPayment
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, loan_id, amount, kind, paid_on, created_at
		FROM loan_payments
		WHERE loan_id = $1
		ORDER BY paid_on, created_at
	`, loanID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
