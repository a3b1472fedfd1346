package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"
)

func TestGroupStoreCreate(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO shg_groups") {
				t.Fatalf("unexpected query: %s", query)
			}
			if args[1] != "SHG-001" {
				t.Fatalf("unexpected shg_number: %#v", args[1])
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewGroupStore(stubDB{})
	err := store.Create(ctx, execer, GroupInput{
		ID: "g1", SHGNumber: "SHG-001", Name: "Mahila Bachat Gat", Village: "Wai",
		PresidentUsername: "president", PresidentPasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGroupStoreGetBySHGNumberOnlyActive(t *testing.T) {
	ctx := context.Background()
	store := NewGroupStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "is_active = TRUE") {
				t.Fatalf("lookup must be restricted to active groups: %s", query)
			}
			return sql.ErrNoRows
		},
	})
	if _, err := store.GetBySHGNumber(ctx, "SHG-404"); err != sql.ErrNoRows {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestMemberStoreFindActiveMatchesTuple(t *testing.T) {
	ctx := context.Background()
	store := NewMemberStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "status = 'active'") {
				t.Fatalf("member login must only match active members: %s", query)
			}
			if len(args) != 4 {
				t.Fatalf("expected 4 tuple args, got %d", len(args))
			}
			*dest.(*string) = "m1"
			return nil
		},
	})
	id, err := store.FindActive(ctx, "g1", "Sita", "Pawar", "9876543210")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "m1" {
		t.Fatalf("unexpected member id: %s", id)
	}
}

func TestDepositStoreSumByGroup(t *testing.T) {
	ctx := context.Background()
	store := NewDepositStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "COALESCE(SUM(amount), 0)") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*int64) = 25000
			return nil
		},
	})
	sum, err := store.SumByGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum != 25000 {
		t.Fatalf("unexpected sum: %d", sum)
	}
}
