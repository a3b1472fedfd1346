package handlers

import (
	"context"

	"shgledger/internal/models"
	"shgledger/internal/services"
	"shgledger/internal/store"
)

type RegistryService interface {
	CreateGroup(ctx context.Context, req services.CreateGroupRequest) (string, error)
	AuthenticatePresident(ctx context.Context, shgNumber, username, password string) (models.Group, bool, error)
	AuthenticateMember(ctx context.Context, shgNumber, firstName, lastName, mobile string) (models.Group, string, bool, error)
	ChangePresidentPassword(ctx context.Context, groupID, oldPassword, newPassword string) error
	AddMember(ctx context.Context, req services.AddMemberRequest) (string, error)
	UpdateMember(ctx context.Context, req services.UpdateMemberRequest) error
	DeactivateMember(ctx context.Context, groupID, memberID string) error
	ReactivateMember(ctx context.Context, groupID, memberID string) error
	ListMembers(ctx context.Context, groupID string) ([]models.Member, error)
}

type LedgerService interface {
	AddDeposit(ctx context.Context, req services.DepositRequest) (services.DepositResult, error)
	IssueLoan(ctx context.Context, req services.IssueLoanRequest) (services.IssueLoanResult, error)
	RecordRepayment(ctx context.Context, req services.RepaymentRequest) (services.RepaymentResult, error)
	WalletBalance(ctx context.Context, groupID string) (int64, error)
	TotalSavings(ctx context.Context, groupID string) (int64, error)
	TotalLoanGiven(ctx context.Context, groupID string) (int64, error)
	Stats(ctx context.Context, groupID string) (services.GroupStats, error)
}

type GroupReader interface {
	GetByID(ctx context.Context, groupID string) (models.Group, error)
}

type LoanReader interface {
	GetByID(ctx context.Context, loanID string) (models.Loan, error)
	ListByGroup(ctx context.Context, groupID string, activeOnly bool) ([]store.LoanWithMember, error)
}

type PassbookReader interface {
	ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]map[string]any, error)
	ListByMember(ctx context.Context, memberID string, limit, offset int) ([]map[string]any, error)
}

type ReportStore interface {
	MemberRows(ctx context.Context, groupID string) ([]store.MemberReportRow, error)
	LoanRows(ctx context.Context, groupID string) ([]store.LoanReportRow, error)
}

type NotificationReader interface {
	ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]models.NotificationLog, error)
}
