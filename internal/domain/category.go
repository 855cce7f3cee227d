package domain

import "strings"

// RelatedTo tells which entry kind a category classifies.
type RelatedTo string

const (
	RelatedToExpense RelatedTo = "Expense"
	RelatedToIncome  RelatedTo = "Income"
)

// ParseRelatedTo accepts the two known values case-insensitively.
func ParseRelatedTo(s string) (RelatedTo, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense":
		return RelatedToExpense, nil
	case "income":
		return RelatedToIncome, nil
	default:
		return "", ErrInvalidInput
	}
}

// Category is a top-level classification for expenses or incomes.
type Category struct {
	ID        int64
	Name      string
	RelatedTo RelatedTo
}

// Subcategory is a second-level classification. It is not tied to a
// parent category.
type Subcategory struct {
	ID        int64
	Name      string
	RelatedTo RelatedTo
}
