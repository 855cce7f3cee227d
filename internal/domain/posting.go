package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Posting is the signed effect of an entry on one account.
// A positive amount credits the account, a negative amount debits it.
type Posting struct {
	AccountID int64
	Amount    decimal.Decimal
}

// IsCredit reports whether the posting increases the account balance.
func (p Posting) IsCredit() bool {
	return p.Amount.IsPositive()
}

// Reverse returns postings that undo the given ones, in the same order.
func Reverse(postings []Posting) []Posting {
	out := make([]Posting, len(postings))
	for i, p := range postings {
		out[i] = Posting{AccountID: p.AccountID, Amount: p.Amount.Neg()}
	}
	return out
}

// AccountIDs returns the distinct account ids touched by the posting sets,
// sorted ascending. Locking accounts in this order prevents deadlocks.
func AccountIDs(sets ...[]Posting) []int64 {
	seen := make(map[int64]bool)

	var ids []int64
	for _, set := range sets {
		for _, p := range set {
			if !seen[p.AccountID] {
				seen[p.AccountID] = true
				ids = append(ids, p.AccountID)
			}
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// NetEffect sums postings per account.
func NetEffect(sets ...[]Posting) map[int64]decimal.Decimal {
	net := make(map[int64]decimal.Decimal)
	for _, set := range sets {
		for _, p := range set {
			net[p.AccountID] = net[p.AccountID].Add(p.Amount)
		}
	}
	return net
}
