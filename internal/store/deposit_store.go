package store

import (
	"context"

	"shgledger/internal/models"
)

type DepositStore struct {
	db DB
}

func NewDepositStore(db DB) *DepositStore {
	return &DepositStore{db: db}
}

type DepositInput struct {
	ID       string
	GroupID  string
	MemberID string
	Amount   int64
	Month    int
	Year     int
}

func (s *DepositStore) Create(ctx context.Context, tx Execer, input DepositInput) error {
	query := `
		INSERT INTO deposits (id, group_id, member_id, amount, deposit_month, deposit_year)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.GroupID, input.MemberID, input.Amount, input.Month, input.Year,
	)
	return err
}

// SumByGroup is the group's total savings: every deposit ever recorded,
// including those of members who have since left.
func (s *DepositStore) SumByGroup(ctx context.Context, groupID string) (int64, error) {
	var sum int64
	err := s.db.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(amount), 0)
		FROM deposits
		WHERE group_id = $1
	`, groupID)
	return sum, err
}

func (s *DepositStore) SumByMember(ctx context.Context, memberID string) (int64, error) {
	var sum int64
	err := s.db.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(amount), 0)
		FROM deposits
		WHERE member_id = $1
	`, memberID)
	return sum, err
}

func (s *DepositStore) ListByMember(ctx context.Context, memberID string, limit, offset int) ([]models.Deposit, error) {
	var rows []models.Deposit
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, group_id, member_id, amount, deposit_month, deposit_year, created_at
		FROM deposits
		WHERE member_id = $1
		ORDER BY deposit_year DESC, deposit_month DESC
		LIMIT $2 OFFSET $3
	`, memberID, limit, offset)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
