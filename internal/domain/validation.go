package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Validation errors. Each wraps ErrInvalidInput or ErrInvalidAmount so
// callers can match the family with errors.Is.
var (
	ErrInvalidID          = fmt.Errorf("%w: malformed id", ErrInvalidInput)
	ErrInvalidAccountName = fmt.Errorf("%w: account name", ErrInvalidInput)
	ErrInvalidCurrency    = fmt.Errorf("%w: currency code", ErrInvalidInput)
	ErrInvalidDate        = fmt.Errorf("%w: date", ErrInvalidInput)
	ErrInvalidComment     = fmt.Errorf("%w: comment", ErrInvalidInput)
	ErrAmountTooLarge     = fmt.Errorf("%w: exceeds maximum allowed", ErrInvalidAmount)
)

// Validation constants
const (
	MaxAccountNameLength  = 100
	MaxCategoryNameLength = 500
	MaxCommentLength      = 1000
	MaxUsernameLength     = 150
	// NUMERIC(20,2): 18 integer digits.
	MaxAmount = "999999999999999999.99"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02.01.2006 15:04",
	"02.01.2006",
	"02/01/2006",
}

var maxAmount = decimal.RequireFromString(MaxAmount)

// ParseID parses a digit-only identifier.
func ParseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidID)
	}

	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}

	return id, nil
}

// ParseAmount parses a positive amount written with digits and a single
// '.' or ',' decimal separator.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	separators := 0
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' || r == ',':
			separators++
		default:
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
		}
	}
	if separators > 1 {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}

	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}

	return amount, nil
}

// ParseSignedAmount parses an optionally signed amount such as an admin
// adjustment. An empty string and "0" yield zero.
func ParseSignedAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	negative := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "-"), "+")

	if raw == "" || strings.Trim(raw, "0.,") == "" {
		if strings.ContainsAny(raw, ".,") && strings.Count(raw, ".")+strings.Count(raw, ",") > 1 {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
		}
		return decimal.Zero, nil
	}

	amount, err := ParseAmount(raw)
	if err != nil {
		return decimal.Zero, err
	}

	if negative {
		return amount.Neg(), nil
	}
	return amount, nil
}

// ValidateAmount rejects amounts the ledger cannot store exactly.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !amount.Equal(amount.Truncate(AmountScale)) {
		return fmt.Errorf("%w: at most %d decimal places", ErrInvalidAmount, AmountScale)
	}

	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// ParseDate parses one of the accepted date layouts. An empty string
// yields the zero time.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// SanitizeComment trims a comment and rejects characters outside letters,
// digits, spaces and ,.#+_-()
func SanitizeComment(raw string) (string, error) {
	comment := strings.TrimSpace(raw)

	if len([]rune(comment)) > MaxCommentLength {
		return "", fmt.Errorf("%w: exceeds %d characters", ErrInvalidComment, MaxCommentLength)
	}

	for _, r := range comment {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			continue
		}
		if !strings.ContainsRune(",.#+_-()", r) {
			return "", fmt.Errorf("%w: character %q is not allowed", ErrInvalidComment, r)
		}
	}

	return comment, nil
}

// ValidateAccountName validates account name
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len([]rune(name)) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateName checks a category, subcategory or user name.
func ValidateName(name string, maxLen int) error {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxLen {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, maxLen)
	}
	return nil
}

// ValidateCurrency validates currency code
func ValidateCurrency(currency string) error {
	if !IsSupportedCurrency(currency) {
		return fmt.Errorf("%w: %s", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
