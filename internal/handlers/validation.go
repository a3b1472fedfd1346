package handlers

import (
	"errors"
	"time"

	"shgledger/internal/money"

	"github.com/shopspring/decimal"
)

var errInvalidAmount = errors.New("invalid amount")
var errInvalidRate = errors.New("invalid rate")
var errInvalidDate = errors.New("invalid date")

func parseAmount(raw string) (int64, error) {
	amount, err := money.ParseAmount(raw)
	if err != nil || amount <= 0 {
		return 0, errInvalidAmount
	}
	return amount, nil
}

func parseRate(raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() {
		return decimal.Zero, errInvalidRate
	}
	if rate.Exponent() < -4 {
		return decimal.Zero, errInvalidRate
	}
	return rate, nil
}

// parseEffectiveOn turns an optional YYYY-MM-DD string into the backdated
// entry date. Empty means the entry is live and dated now.
func parseEffectiveOn(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errInvalidDate
	}
	if day.After(time.Now()) {
		return nil, errInvalidDate
	}
	return &day, nil
}
