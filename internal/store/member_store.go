package store

import (
	"context"

	"shgledger/internal/models"
)

type MemberStore struct {
	db DB
}

func NewMemberStore(db DB) *MemberStore {
	return &MemberStore{db: db}
}

type MemberInput struct {
	ID             string
	GroupID        string
	FirstName      string
	LastName       string
	Mobile         string
	MonthlyDeposit int64
}

func (s *MemberStore) Create(ctx context.Context, tx Execer, input MemberInput) error {
	query := `
		INSERT INTO members (id, group_id, first_name, last_name, mobile, monthly_deposit, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'active')
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.GroupID, input.FirstName, input.LastName, input.Mobile, input.MonthlyDeposit,
	)
	return err
}

func (s *MemberStore) GetByID(ctx context.Context, memberID string) (models.Member, error) {
	var row models.Member
	err := s.db.GetContext(ctx, &row, `
		SELECT id, group_id, first_name, last_name, mobile, monthly_deposit, status, created_at
		FROM members
		WHERE id = $1
	`, memberID)
	if err != nil {
		return models.Member{}, err
	}
	return row, nil
}

// FindActive resolves the member login tuple. Only active members match:
// a member who left keeps their ledger history but can no longer sign in.
func (s *MemberStore) FindActive(ctx context.Context, groupID, firstName, lastName, mobile string) (string, error) {
	var id string
	err := s.db.GetContext(ctx, &id, `
		SELECT id
		FROM members
		WHERE group_id = $1 AND first_name = $2 AND last_name = $3 AND mobile = $4 AND status = 'active'
	`, groupID, firstName, lastName, mobile)
	return id, err
}

func (s *MemberStore) ListActive(ctx context.Context, groupID string) ([]models.Member, error) {
	var rows []models.Member
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, group_id, first_name, last_name, mobile, monthly_deposit, status, created_at
		FROM members
		WHERE group_id = $1 AND status = 'active'
		ORDER BY first_name, last_name
	`, groupID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *MemberStore) CountActive(ctx context.Context, groupID string) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM members
		WHERE group_id = $1 AND status = 'active'
	`, groupID)
	return count, err
}

func (s *MemberStore) UpdateDetails(ctx context.Context, tx Execer, memberID, firstName, lastName, mobile string, monthlyDeposit int64) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE members
		SET first_name = $1, last_name = $2, mobile = $3, monthly_deposit = $4
		WHERE id = $5
	`, firstName, lastName, mobile, monthlyDeposit, memberID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *MemberStore) SetStatus(ctx context.Context, tx Execer, memberID, status string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE members
		SET status = $1
		WHERE id = $2
	`, status, memberID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
