package services

import (
	"context"
	"database/sql"
	"errors"

	"shgledger/internal/auth"
	"shgledger/internal/db"
	"shgledger/internal/models"
	"shgledger/internal/store"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrDuplicateGroup     = errors.New("shg number already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type GroupStore interface {
	Create(ctx context.Context, tx store.Execer, input store.GroupInput) error
	GetBySHGNumber(ctx context.Context, shgNumber string) (models.Group, error)
	GetByID(ctx context.Context, groupID string) (models.Group, error)
	Exists(ctx context.Context, shgNumber string) (bool, error)
	UpdatePresidentPassword(ctx context.Context, tx store.Execer, groupID, passwordHash string) (int64, error)
}

type MemberStore interface {
	Create(ctx context.Context, tx store.Execer, input store.MemberInput) error
	GetByID(ctx context.Context, memberID string) (models.Member, error)
	FindActive(ctx context.Context, groupID, firstName, lastName, mobile string) (string, error)
	ListActive(ctx context.Context, groupID string) ([]models.Member, error)
	UpdateDetails(ctx context.Context, tx store.Execer, memberID, firstName, lastName, mobile string, monthlyDeposit int64) (int64, error)
	SetStatus(ctx context.Context, tx store.Execer, memberID, status string) (int64, error)
}

// RegistryService owns group and member identity: registration,
// authentication, and the active/left status gate.
type RegistryService struct {
	txRunner db.TxRunner
	groups   GroupStore
	members  MemberStore
}

func NewRegistryService(txRunner db.TxRunner, groups GroupStore, members MemberStore) *RegistryService {
	return &RegistryService{txRunner: txRunner, groups: groups, members: members}
}

type CreateGroupRequest struct {
	SHGNumber         string
	Name              string
	Village           string
	PresidentUsername string
	PresidentPassword string
}

// CreateGroup registers a new SHG. The existence check and insert run in one
// transaction, and the unique constraint on shg_number catches the race two
// concurrent registrations would otherwise win together.
func (s *RegistryService) CreateGroup(ctx context.Context, req CreateGroupRequest) (string, error) {
	passwordHash, err := auth.HashPassword(req.PresidentPassword)
	if err != nil {
		return "", err
	}
	groupID := uuid.NewString()
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		exists, err := s.groups.Exists(ctx, req.SHGNumber)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateGroup
		}
		return s.groups.Create(ctx, tx, store.GroupInput{
			ID:                    groupID,
			SHGNumber:             req.SHGNumber,
			Name:                  req.Name,
			Village:               req.Village,
			PresidentUsername:     req.PresidentUsername,
			PresidentPasswordHash: passwordHash,
		})
	})
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrDuplicateGroup
		}
		return "", err
	}
	return groupID, nil
}

// AuthenticatePresident matches the group's stored admin credentials.
// Absence of a match is a normal negative result, never an error.
func (s *RegistryService) AuthenticatePresident(ctx context.Context, shgNumber, username, password string) (models.Group, bool, error) {
	group, err := s.groups.GetBySHGNumber(ctx, shgNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Group{}, false, nil
		}
		return models.Group{}, false, err
	}
	if group.PresidentUsername != username {
		return models.Group{}, false, nil
	}
	if !auth.CheckPassword(group.PresidentPasswordHash, password) {
		return models.Group{}, false, nil
	}
	return group, true, nil
}

// AuthenticateMember resolves the (group, first name, last name, mobile)
// tuple to an active member. Members who left cannot sign in.
func (s *RegistryService) AuthenticateMember(ctx context.Context, shgNumber, firstName, lastName, mobile string) (models.Group, string, bool, error) {
	group, err := s.groups.GetBySHGNumber(ctx, shgNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Group{}, "", false, nil
		}
		return models.Group{}, "", false, err
	}
	memberID, err := s.members.FindActive(ctx, group.ID, firstName, lastName, mobile)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Group{}, "", false, nil
		}
		return models.Group{}, "", false, err
	}
	return group, memberID, true, nil
}

func (s *RegistryService) ChangePresidentPassword(ctx context.Context, groupID, oldPassword, newPassword string) error {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(group.PresidentPasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}
	newHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		updated, err := s.groups.UpdatePresidentPassword(ctx, tx, groupID, newHash)
		if err != nil {
			return err
		}
		if updated != 1 {
			return ErrInvalidCredentials
		}
		return nil
	})
}

type AddMemberRequest struct {
	GroupID        string
	FirstName      string
	LastName       string
	Mobile         string
	MonthlyDeposit int64
}

func (s *RegistryService) AddMember(ctx context.Context, req AddMemberRequest) (string, error) {
	if req.MonthlyDeposit <= 0 {
		return "", ErrInvalidAmount
	}
	memberID := uuid.NewString()
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.members.Create(ctx, tx, store.MemberInput{
			ID:             memberID,
			GroupID:        req.GroupID,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Mobile:         req.Mobile,
			MonthlyDeposit: req.MonthlyDeposit,
		})
	})
	if err != nil {
		return "", err
	}
	return memberID, nil
}

type UpdateMemberRequest struct {
	GroupID        string
	MemberID       string
	FirstName      string
	LastName       string
	Mobile         string
	MonthlyDeposit int64
}

func (s *RegistryService) UpdateMember(ctx context.Context, req UpdateMemberRequest) error {
	if req.MonthlyDeposit <= 0 {
		return ErrInvalidAmount
	}
	if err := s.memberInGroup(ctx, req.GroupID, req.MemberID); err != nil {
		return err
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		updated, err := s.members.UpdateDetails(ctx, tx, req.MemberID, req.FirstName, req.LastName, req.Mobile, req.MonthlyDeposit)
		if err != nil {
			return err
		}
		if updated != 1 {
			return ErrMemberNotFound
		}
		return nil
	})
}

func (s *RegistryService) DeactivateMember(ctx context.Context, groupID, memberID string) error {
	return s.setMemberStatus(ctx, groupID, memberID, "left")
}

func (s *RegistryService) ReactivateMember(ctx context.Context, groupID, memberID string) error {
	return s.setMemberStatus(ctx, groupID, memberID, "active")
}

func (s *RegistryService) ListMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	return s.members.ListActive(ctx, groupID)
}

func (s *RegistryService) setMemberStatus(ctx context.Context, groupID, memberID, status string) error {
	if err := s.memberInGroup(ctx, groupID, memberID); err != nil {
		return err
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		updated, err := s.members.SetStatus(ctx, tx, memberID, status)
		if err != nil {
			return err
		}
		if updated != 1 {
			return ErrMemberNotFound
		}
		return nil
	})
}

func (s *RegistryService) memberInGroup(ctx context.Context, groupID, memberID string) error {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMemberNotFound
		}
		return err
	}
	if member.GroupID != groupID {
		return ErrWrongGroup
	}
	return nil
}
