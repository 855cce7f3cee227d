package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when neither the request nor the account names one.
const DefaultCurrency = "UZS"

// AmountScale is the number of fractional digits a stored amount may carry.
const AmountScale = 2

var supportedCurrencies = map[string]bool{
	"EURO": true,
	"RUB":  true,
	"USD":  true,
	"UZS":  true,
}

// Money is an amount together with its currency code. The currency is
// carried as metadata only: no conversion happens anywhere in the ledger.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// NewMoney builds a Money value, falling back to DefaultCurrency.
func NewMoney(amount decimal.Decimal, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: amount, Currency: currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(AmountScale), m.Currency)
}

// NormalizeCurrency upper-cases and trims a currency code.
func NormalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

// IsSupportedCurrency reports whether the code is one the ledger accepts.
func IsSupportedCurrency(currency string) bool {
	return supportedCurrencies[NormalizeCurrency(currency)]
}
