package accounting

import "github.com/shopspring/decimal"

// Derived financial quantities for a group's ledger. Everything here is a
// pure function over append-only ledger data; nothing is cached or stored.

var hundred = decimal.NewFromInt(100)

// MonthlyInterest is simple interest per period, truncated to a whole rupee:
// floor(principal * rate / 100). Rates may be fractional (e.g. 2.5%).
func MonthlyInterest(principal int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(principal).Mul(rate).Div(hundred).Floor().IntPart()
}

// MonthlyPayable is what a borrowing member owes each month: the recurring
// deposit plus interest on the active loan.
func MonthlyPayable(principal int64, rate decimal.Decimal, monthlyDeposit int64) int64 {
	return monthlyDeposit + MonthlyInterest(principal, rate)
}

// WalletBalance is the group's cash on hand. It may go negative when loans
// exceed deposits; callers surface that rather than block on it.
func WalletBalance(totalSavings, totalLoanGiven int64) int64 {
	return totalSavings - totalLoanGiven
}

// Outstanding is the principal still owed, ignoring interest. Negative means
// overpaid, which counts as fully paid.
func Outstanding(principal, repaidPrincipal int64) int64 {
	return principal - repaidPrincipal
}

func IsFullyPaid(principal, repaidPrincipal int64) bool {
	return Outstanding(principal, repaidPrincipal) <= 0
}
