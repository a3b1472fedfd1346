package money

import (
	"errors"
	"strconv"
	"strings"
)

// The SHG ledger keeps no paise: every amount is a whole number of rupees,
// stored as int64. Parsing rejects fractional input instead of rounding it.

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrFractional    = errors.New("amount must be a whole number of rupees")
)

func ParseAmount(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, ErrInvalidAmount
	}
	sign := int64(1)
	switch trimmed[0] {
	case '-':
		sign = -1
		trimmed = trimmed[1:]
	case '+':
		trimmed = trimmed[1:]
	}
	if strings.Contains(trimmed, ".") {
		whole, frac, _ := strings.Cut(trimmed, ".")
		if strings.Trim(frac, "0") != "" {
			return 0, ErrFractional
		}
		trimmed = whole
	}
	trimmed = strings.ReplaceAll(trimmed, ",", "")
	if trimmed == "" || !isDigits(trimmed) {
		return 0, ErrInvalidAmount
	}
	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return sign * value, nil
}

// Format renders an amount with Indian digit grouping: 123456 -> "1,23,456".
func Format(value int64) string {
	negative := value < 0
	if negative {
		value = -value
	}
	digits := strconv.FormatInt(value, 10)
	if len(digits) > 3 {
		head := digits[:len(digits)-3]
		tail := digits[len(digits)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		digits = strings.Join(append(groups, tail), ",")
	}
	if negative {
		return "-" + digits
	}
	return digits
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
