package store

import (
	"context"
	"time"
)

// PassbookStore writes and reads the append-only audit transaction log.
// Rows are written once, inside the same database transaction as the ledger
// change they record, and never updated.
type PassbookStore struct {
	db DB
}

func NewPassbookStore(db DB) *PassbookStore {
	return &PassbookStore{db: db}
}

type PassbookInput struct {
	ID          string
	GroupID     string
	MemberID    string
	Kind        string
	Amount      int64
	RecordedBy  string
	Legacy      bool
	EffectiveOn time.Time
}

func (s *PassbookStore) Append(ctx context.Context, tx Execer, input PassbookInput) error {
	query := `
		INSERT INTO transactions (id, group_id, member_id, kind, amount, recorded_by, legacy, effective_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.GroupID, input.MemberID, input.Kind, input.Amount,
		input.RecordedBy, input.Legacy, input.EffectiveOn,
	)
	return err
}

type passbookRow struct {
	ID          string    `db:"id"`
	GroupID     string    `db:"group_id"`
	MemberID    string    `db:"member_id"`
	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	Kind        string    `db:"kind"`
	Amount      int64     `db:"amount"`
	RecordedBy  string    `db:"recorded_by"`
	Legacy      bool      `db:"legacy"`
	EffectiveOn time.Time `db:"effective_on"`
	CreatedAt   any       `db:"created_at"`
}

func (s *PassbookStore) ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]map[string]any, error) {
	var rows []passbookRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT t.id, t.group_id, t.member_id, m.first_name, m.last_name,
		       t.kind, t.amount, t.recorded_by, t.legacy, t.effective_on, t.created_at
		FROM transactions t
		JOIN members m ON m.id = t.member_id
		WHERE t.group_id = $1
		ORDER BY t.effective_on DESC, t.created_at DESC
		LIMIT $2 OFFSET $3
	`, groupID, limit, offset)
	if err != nil {
		return nil, err
	}
	return passbookRowsToMaps(rows), nil
}

func (s *PassbookStore) ListByMember(ctx context.Context, memberID string, limit, offset int) ([]map[string]any, error) {
	var rows []passbookRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT t.id, t.group_id, t.member_id, m.first_name, m.last_name,
		       t.kind, t.amount, t.recorded_by, t.legacy, t.effective_on, t.created_at
		FROM transactions t
		JOIN members m ON m.id = t.member_id
		WHERE t.member_id = $1
		ORDER BY t.effective_on DESC, t.created_at DESC
		LIMIT $2 OFFSET $3
	`, memberID, limit, offset)
	if err != nil {
		return nil, err
	}
	return passbookRowsToMaps(rows), nil
}

func passbookRowsToMaps(rows []passbookRow) []map[string]any {
	maps := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		maps = append(maps, map[string]any{
			"id":           row.ID,
			"group_id":     row.GroupID,
			"member_id":    row.MemberID,
			"member_name":  row.FirstName + " " + row.LastName,
			"kind":         row.Kind,
			"amount":       row.Amount,
			"recorded_by":  row.RecordedBy,
			"legacy":       row.Legacy,
			"effective_on": row.EffectiveOn.Format("2006-01-02"),
			"created_at":   row.CreatedAt,
		})
	}
	return maps
}
