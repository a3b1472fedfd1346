package store

import (
	"context"
	"time"
)

// ReportStore holds the read-only aggregate queries behind the group report.
// It computes nothing the ledger does not already contain.
type ReportStore struct {
	db DB
}

func NewReportStore(db DB) *ReportStore {
	return &ReportStore{db: db}
}

type MemberReportRow struct {
	MemberID     string `db:"member_id"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	Status       string `db:"status"`
	DepositTotal int64  `db:"deposit_total"`
	LoanTotal    int64  `db:"loan_total"`
	RepaidTotal  int64  `db:"repaid_total"`
}

func (s *ReportStore) MemberRows(ctx context.Context, groupID string) ([]MemberReportRow, error) {
	var rows []MemberReportRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT m.id AS member_id,
		       m.first_name,
		       m.last_name,
		       m.status,
		       COALESCE(d.total, 0) AS deposit_total,
		       COALESCE(l.total, 0) AS loan_total,
		       COALESCE(p.total, 0) AS repaid_total
		FROM members m
		LEFT JOIN (
			SELECT member_id, SUM(amount) AS total FROM deposits GROUP BY member_id
		) d ON d.member_id = m.id
		LEFT JOIN (
			SELECT member_id, SUM(principal) AS total FROM loans GROUP BY member_id
		) l ON l.member_id = m.id
		LEFT JOIN (
			SELECT lo.member_id, SUM(lp.amount) AS total
			FROM loan_payments lp
			JOIN loans lo ON lo.id = lp.loan_id
			WHERE lp.kind = 'principal'
			GROUP BY lo.member_id
		) p ON p.member_id = m.id
		WHERE m.group_id = $1
		ORDER BY m.first_name, m.last_name
	`, groupID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type LoanReportRow struct {
	LoanID       string     `db:"loan_id"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Principal    int64      `db:"principal"`
	InterestPaid int64      `db:"interest_paid"`
	Status       string     `db:"status"`
	IssuedOn     time.Time  `db:"issued_on"`
	ClosedOn     *time.Time `db:"closed_on"`
}

func (s *ReportStore) LoanRows(ctx context.Context, groupID string) ([]LoanReportRow, error) {
	var rows []LoanReportRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT l.id AS loan_id,
		       m.first_name,
		       m.last_name,
		       l.principal,
		       COALESCE(i.total, 0) AS interest_paid,
		       l.status,
		       l.issued_on,
		       l.closed_on
		FROM loans l
		JOIN members m ON m.id = l.member_id
		LEFT JOIN (
			SELECT loan_id, SUM(amount) AS total
			FROM loan_payments
			WHERE kind = 'interest'
			GROUP BY loan_id
		) i ON i.loan_id = l.id
		WHERE l.group_id = $1
		ORDER BY l.issued_on, l.created_at
	`, groupID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
