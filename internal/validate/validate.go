// Package validate holds the form input checks used by the ledger and account
// services. Every function is pure.
package validate

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotInteger is returned when a share count contains anything but ASCII digits.
	ErrNotInteger = errors.New("share count is not an integer")
	// ErrBelowMinimum is returned when a share count parses to less than one.
	ErrBelowMinimum = errors.New("share count is below one")
	// ErrInvalidAmount is returned for amounts outside the digit/period rule.
	ErrInvalidAmount = errors.New("invalid amount")
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// specialCharacters mirrors the character class [@_!#$%^&*()<>?/\|}'{~:].
// Inside the class the backslash only escapes the pipe.
const specialCharacters = "@_!#$%^&*()<>?/|}'{~:"

// ShareCount parses a whole, positive number of shares.
func ShareCount(input string) (int64, error) {
	if !isDigits(input) {
		return 0, ErrNotInteger
	}
	n, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return 0, ErrNotInteger
	}
	if n < 1 {
		return 0, ErrBelowMinimum
	}
	return n, nil
}

// Amount accepts digits with at most one period. The character rule runs
// first; a string passing it that still is not a number (".") is rejected too.
func Amount(input string) (decimal.Decimal, error) {
	periods := 0
	for _, r := range input {
		if r == '.' {
			periods++
			continue
		}
		if r < '0' || r > '9' {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	if periods > 1 {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Checksum returns the Luhn sum of a digit string, walking from the least
// significant digit and doubling every second one.
func Checksum(card string) int {
	sum := 0
	for i := 0; i < len(card); i++ {
		digit := int(card[len(card)-1-i] - '0')
		if (i+1)%2 == 0 {
			digit *= 2
		}
		if digit >= 10 {
			sum += digit%10 + 1
		} else {
			sum += digit
		}
	}
	return sum
}

// ValidCard reports whether card is all digits and passes the Luhn check.
func ValidCard(card string) bool {
	return card != "" && isDigits(card) && Checksum(card)%10 == 0
}

// ValidSecurityCode reports whether code is three or four digits.
func ValidSecurityCode(code string) bool {
	return isDigits(code) && (len(code) == 3 || len(code) == 4)
}

// PasswordMeetsRequirements reports whether password is long enough and has at
// least one letter, one digit and one special character.
func PasswordMeetsRequirements(password string) bool {
	return LongEnough(password) && HasRequiredCharacters(password)
}

// LongEnough counts characters, not bytes.
func LongEnough(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}

// HasRequiredCharacters checks the character classes without the length rule.
func HasRequiredCharacters(password string) bool {
	var letter, digit, special bool
	for _, r := range password {
		if unicode.IsLetter(r) {
			letter = true
		}
		if unicode.IsDigit(r) {
			digit = true
		}
		if strings.ContainsRune(specialCharacters, r) {
			special = true
		}
	}
	return letter && digit && special
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
