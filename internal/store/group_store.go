package store

import (
	"context"

	"shgledger/internal/models"
)

type GroupStore struct {
	db DB
}

func NewGroupStore(db DB) *GroupStore {
	return &GroupStore{db: db}
}

type GroupInput struct {
	ID                    string
	SHGNumber             string
	Name                  string
	Village               string
	PresidentUsername     string
	PresidentPasswordHash string
}

func (s *GroupStore) Create(ctx context.Context, tx Execer, input GroupInput) error {
	query := `
		INSERT INTO shg_groups (id, shg_number, name, village, president_username, president_password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.SHGNumber, input.Name, input.Village,
		input.PresidentUsername, input.PresidentPasswordHash,
	)
	return err
}

func (s *GroupStore) GetBySHGNumber(ctx context.Context, shgNumber string) (models.Group, error) {
	var row models.Group
	err := s.db.GetContext(ctx, &row, `
		SELECT id, shg_number, name, village, president_username, president_password_hash, is_active, created_at
		FROM shg_groups
		WHERE shg_number = $1 AND is_active = TRUE
	`, shgNumber)
	if err != nil {
		return models.Group{}, err
	}
	return row, nil
}

func (s *GroupStore) GetByID(ctx context.Context, groupID string) (models.Group, error) {
	var row models.Group
	err := s.db.GetContext(ctx, &row, `
		SELECT id, shg_number, name, village, president_username, president_password_hash, is_active, created_at
		FROM shg_groups
		WHERE id = $1
	`, groupID)
	if err != nil {
		return models.Group{}, err
	}
	return row, nil
}

func (s *GroupStore) Exists(ctx context.Context, shgNumber string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM shg_groups WHERE shg_number = $1)
	`, shgNumber)
	return exists, err
}

func (s *GroupStore) UpdatePresidentPassword(ctx context.Context, tx Execer, groupID, passwordHash string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE shg_groups
		SET president_password_hash = $1
		WHERE id = $2
	`, passwordHash, groupID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
