// Package validate holds the form-boundary checks that run before a
// request ever reaches a store.
package validate

import (
	"errors"
	"strings"
	"unicode"
)

// The signup form's symbol set.
const passwordSymbols = "@$!%*#?&"

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordNoUpper  = errors.New("password must include an uppercase letter")
	ErrPasswordNoLower  = errors.New("password must include a lowercase letter")
	ErrPasswordNoDigit  = errors.New("password must include a number")
	ErrPasswordNoSymbol = errors.New("password must include a special character (" + passwordSymbols + ")")
)

// Password checks the registration password policy. All violations are
// reported together via errors.Join.
func Password(password string) error {
	var errs []error

	if len(password) < 8 {
		errs = append(errs, ErrPasswordTooShort)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasUpper {
		errs = append(errs, ErrPasswordNoUpper)
	}
	if !hasLower {
		errs = append(errs, ErrPasswordNoLower)
	}
	if !hasDigit {
		errs = append(errs, ErrPasswordNoDigit)
	}
	if !hasSymbol {
		errs = append(errs, ErrPasswordNoSymbol)
	}

	return errors.Join(errs...)
}
