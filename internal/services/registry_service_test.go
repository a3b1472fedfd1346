package services

import (
	"context"
	"database/sql"
	"testing"

	"shgledger/internal/auth"
	"shgledger/internal/models"
	"shgledger/internal/store"
)

func TestCreateGroupDuplicateNumber(t *testing.T) {
	groups := stubGroupStore{
		existsFn: func(context.Context, string) (bool, error) { return true, nil },
		createFn: func(context.Context, store.Execer, store.GroupInput) error {
			t.Fatal("no group row may be written for a duplicate number")
			return nil
		},
	}
	service := NewRegistryService(fakeTxRunner{}, groups, stubMemberStore{})
	_, err := service.CreateGroup(context.Background(), CreateGroupRequest{
		SHGNumber: "SHG-001", Name: "Mahila Bachat Gat", Village: "Wai",
		PresidentUsername: "president", PresidentPassword: "password123",
	})
	if err != ErrDuplicateGroup {
		t.Fatalf("expected ErrDuplicateGroup, got %v", err)
	}
}

func TestCreateGroupHashesPassword(t *testing.T) {
	var created store.GroupInput
	groups := stubGroupStore{
		createFn: func(_ context.Context, _ store.Execer, input store.GroupInput) error {
			created = input
			return nil
		},
	}
	service := NewRegistryService(fakeTxRunner{}, groups, stubMemberStore{})
	groupID, err := service.CreateGroup(context.Background(), CreateGroupRequest{
		SHGNumber: "SHG-001", Name: "Mahila Bachat Gat", Village: "Wai",
		PresidentUsername: "president", PresidentPassword: "password123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if groupID == "" {
		t.Fatal("expected group id")
	}
	if created.PresidentPasswordHash == "password123" || created.PresidentPasswordHash == "" {
		t.Fatal("president password must be stored hashed")
	}
	if !auth.CheckPassword(created.PresidentPasswordHash, "password123") {
		t.Fatal("stored hash does not verify the original password")
	}
}

func TestAuthenticatePresident(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	groups := stubGroupStore{
		getBySHGNumberFn: func(_ context.Context, shgNumber string) (models.Group, error) {
			if shgNumber != "SHG-001" {
				return models.Group{}, sql.ErrNoRows
			}
			return models.Group{ID: "g1", SHGNumber: "SHG-001", PresidentUsername: "president", PresidentPasswordHash: hash}, nil
		},
	}
	service := NewRegistryService(fakeTxRunner{}, groups, stubMemberStore{})

	if _, ok, err := service.AuthenticatePresident(context.Background(), "SHG-001", "president", "password123"); err != nil || !ok {
		t.Fatalf("expected success, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := service.AuthenticatePresident(context.Background(), "SHG-001", "president", "wrong"); err != nil || ok {
		t.Fatalf("wrong password must be a clean negative, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := service.AuthenticatePresident(context.Background(), "SHG-001", "treasurer", "password123"); err != nil || ok {
		t.Fatalf("wrong username must be a clean negative, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := service.AuthenticatePresident(context.Background(), "SHG-404", "president", "password123"); err != nil || ok {
		t.Fatalf("unknown group must be a clean negative, got ok=%v err=%v", ok, err)
	}
}

func TestAuthenticateMemberActiveOnly(t *testing.T) {
	groups := stubGroupStore{
		getBySHGNumberFn: func(context.Context, string) (models.Group, error) {
			return models.Group{ID: "g1", SHGNumber: "SHG-001"}, nil
		},
	}
	members := stubMemberStore{
		findActiveFn: func(_ context.Context, _, firstName, _, _ string) (string, error) {
			if firstName == "Sita" {
				return "m1", nil
			}
			// deactivated or unknown members do not resolve
			return "", sql.ErrNoRows
		},
	}
	service := NewRegistryService(fakeTxRunner{}, groups, members)

	if _, memberID, ok, err := service.AuthenticateMember(context.Background(), "SHG-001", "Sita", "Pawar", "9876543210"); err != nil || !ok || memberID != "m1" {
		t.Fatalf("expected member match, got id=%q ok=%v err=%v", memberID, ok, err)
	}
	if _, _, ok, err := service.AuthenticateMember(context.Background(), "SHG-001", "Left", "Member", "9876500000"); err != nil || ok {
		t.Fatalf("deactivated member must not authenticate, got ok=%v err=%v", ok, err)
	}
}

func TestChangePresidentPasswordRequiresOld(t *testing.T) {
	hash, err := auth.HashPassword("old-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	updateCalled := false
	groups := stubGroupStore{
		getByIDFn: func(context.Context, string) (models.Group, error) {
			return models.Group{ID: "g1", PresidentPasswordHash: hash}, nil
		},
		updatePasswordFn: func(_ context.Context, _ store.Execer, _, newHash string) (int64, error) {
			updateCalled = true
			if !auth.CheckPassword(newHash, "new-password") {
				t.Fatal("new hash does not verify new password")
			}
			return 1, nil
		},
	}
	service := NewRegistryService(fakeTxRunner{}, groups, stubMemberStore{})

	if err := service.ChangePresidentPassword(context.Background(), "g1", "wrong", "new-password"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if updateCalled {
		t.Fatal("password must not change without the old one")
	}
	if err := service.ChangePresidentPassword(context.Background(), "g1", "old-password", "new-password"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updateCalled {
		t.Fatal("expected password update")
	}
}

func TestUpdateMemberWrongGroup(t *testing.T) {
	members := stubMemberStore{
		getByIDFn: func(_ context.Context, memberID string) (models.Member, error) {
			return models.Member{ID: memberID, GroupID: "other-group", Status: "active"}, nil
		},
	}
	service := NewRegistryService(fakeTxRunner{}, stubGroupStore{}, members)
	err := service.UpdateMember(context.Background(), UpdateMemberRequest{
		GroupID: "g1", MemberID: "m1", FirstName: "Sita", LastName: "Pawar",
		Mobile: "9876543210", MonthlyDeposit: 500,
	})
	if err != ErrWrongGroup {
		t.Fatalf("expected ErrWrongGroup, got %v", err)
	}
}

func TestDeactivateAndReactivateMember(t *testing.T) {
	var lastStatus string
	members := stubMemberStore{
		setStatusFn: func(_ context.Context, _ store.Execer, _, status string) (int64, error) {
			lastStatus = status
			return 1, nil
		},
	}
	service := NewRegistryService(fakeTxRunner{}, stubGroupStore{}, members)

	if err := service.DeactivateMember(context.Background(), "g1", "m1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lastStatus != "left" {
		t.Fatalf("expected status left, got %q", lastStatus)
	}
	if err := service.ReactivateMember(context.Background(), "g1", "m1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lastStatus != "active" {
		t.Fatalf("expected status active, got %q", lastStatus)
	}
}
