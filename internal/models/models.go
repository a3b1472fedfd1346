package models

import "time"

type Group struct {
	ID                    string    `db:"id" json:"id"`
	SHGNumber             string    `db:"shg_number" json:"shg_number"`
	Name                  string    `db:"name" json:"name"`
	Village               string    `db:"village" json:"village"`
	PresidentUsername     string    `db:"president_username" json:"president_username"`
	PresidentPasswordHash string    `db:"president_password_hash" json:"-"`
	IsActive              bool      `db:"is_active" json:"is_active"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
}

type Member struct {
	ID             string    `db:"id" json:"id"`
	GroupID        string    `db:"group_id" json:"group_id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Mobile         string    `db:"mobile" json:"mobile"`
	MonthlyDeposit int64     `db:"monthly_deposit" json:"monthly_deposit"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type Deposit struct {
	ID        string    `db:"id" json:"id"`
	GroupID   string    `db:"group_id" json:"group_id"`
	MemberID  string    `db:"member_id" json:"member_id"`
	Amount    int64     `db:"amount" json:"amount"`
	Month     int       `db:"deposit_month" json:"month"`
	Year      int       `db:"deposit_year" json:"year"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Loan struct {
	ID           string     `db:"id" json:"id"`
	GroupID      string     `db:"group_id" json:"group_id"`
	MemberID     string     `db:"member_id" json:"member_id"`
	Principal    int64      `db:"principal" json:"principal"`
	InterestRate string     `db:"interest_rate" json:"interest_rate"`
	IssuedOn     time.Time  `db:"issued_on" json:"issued_on"`
	Remarks      *string    `db:"remarks" json:"remarks,omitempty"`
	Status       string     `db:"status" json:"status"`
	ClosedOn     *time.Time `db:"closed_on" json:"closed_on,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

type LoanPayment struct {
	ID        string    `db:"id" json:"id"`
	LoanID    string    `db:"loan_id" json:"loan_id"`
	Amount    int64     `db:"amount" json:"amount"`
	Kind      string    `db:"kind" json:"kind"`
	PaidOn    time.Time `db:"paid_on" json:"paid_on"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PassbookEntry is the append-only audit transaction: one row per
// ledger-affecting event, the source of truth for what happened and when.
type PassbookEntry struct {
	ID          string    `db:"id" json:"id"`
	GroupID     string    `db:"group_id" json:"group_id"`
	MemberID    string    `db:"member_id" json:"member_id"`
	Kind        string    `db:"kind" json:"kind"`
	Amount      int64     `db:"amount" json:"amount"`
	RecordedBy  string    `db:"recorded_by" json:"recorded_by"`
	Legacy      bool      `db:"legacy" json:"legacy"`
	EffectiveOn time.Time `db:"effective_on" json:"effective_on"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type NotificationLog struct {
	ID        string    `db:"id" json:"id"`
	GroupID   string    `db:"group_id" json:"group_id"`
	MemberID  string    `db:"member_id" json:"member_id"`
	Mobile    string    `db:"mobile" json:"mobile"`
	Message   string    `db:"message" json:"message"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
