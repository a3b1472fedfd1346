package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidSHGNumber = errors.New("invalid shg number")
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidMobile    = errors.New("invalid mobile")
	ErrInvalidUsername  = errors.New("invalid username")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidYear      = errors.New("invalid year")
)

var (
	shgNumberRegex = regexp.MustCompile(`^[A-Za-z0-9-]{3,20}$`)
	mobileRegex    = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	usernameRegex  = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
)

func ValidateSHGNumber(number string) error {
	if !shgNumberRegex.MatchString(number) {
		return ErrInvalidSHGNumber
	}
	return nil
}

func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || len(trimmed) > 60 {
		return ErrInvalidName
	}
	return nil
}

// ValidateMobile accepts ten-digit Indian mobile numbers.
func ValidateMobile(mobile string) error {
	if !mobileRegex.MatchString(mobile) {
		return ErrInvalidMobile
	}
	return nil
}

func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrInvalidPassword
	}
	return nil
}

func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

func ValidateYear(year int) error {
	if year < 2000 || year > 2100 {
		return ErrInvalidYear
	}
	return nil
}
