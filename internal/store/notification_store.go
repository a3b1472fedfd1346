package store

import (
	"context"

	"shgledger/internal/models"
)

type NotificationStore struct {
	db DB
}

func NewNotificationStore(db DB) *NotificationStore {
	return &NotificationStore{db: db}
}

// Log records one delivery attempt. Called outside any ledger transaction:
// notification outcomes must never roll back a committed ledger write.
func (s *NotificationStore) Log(ctx context.Context, groupID, memberID, mobile, message, status string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notification_log (id, group_id, member_id, mobile, message, status)
		VALUES (gen_random_uuid()::text, $1, $2, $3, $4, $5)
	`, groupID, memberID, mobile, message, status)
	return err
}

func (s *NotificationStore) ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]models.NotificationLog, error) {
	var rows []models.NotificationLog
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, group_id, member_id, mobile, message, status, created_at
		FROM notification_log
		WHERE group_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, groupID, limit, offset)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
