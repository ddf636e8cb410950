package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySource records how a journal entry came into existence.
type EntrySource string

const (
	SourceManual   EntrySource = "manual"
	SourceInferred EntrySource = "inferred"
)

// BalanceTolerance is the permitted difference between an entry's total
// debits and total credits, in currency units.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// JournalEntry is the header of one atomic accounting event. An entry is
// created exactly once and never mutated; corrections are new entries.
type JournalEntry struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"-"`
	Date        string       `json:"date"` // ISO-8601 calendar date
	Description string       `json:"description"`
	Source      EntrySource  `json:"source"`
	CreatedAt   time.Time    `json:"created_at"`
	Lines       []LedgerLine `json:"lines,omitempty"`
}

// LedgerLine is one side (debit or credit) of one account within one
// journal entry. Exactly one of Debit and Credit is strictly positive.
type LedgerLine struct {
	ID             string          `json:"id,omitempty"`
	JournalEntryID string          `json:"-"`
	OwnerID        string          `json:"-"`
	AccountID      string          `json:"accountId"`
	AccountName    string          `json:"accountName,omitempty"`
	AccountCode    string          `json:"accountCode,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
}

// Exclusive reports whether the line carries exactly one positive side and
// no negative values. Zero-zero and both-sided lines are invalid.
func (l LedgerLine) Exclusive() bool {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return false
	}
	return l.Debit.IsPositive() != l.Credit.IsPositive()
}

// LineTotals sums the debit and credit columns of a set of lines.
func LineTotals(lines []LedgerLine) (debit, credit decimal.Decimal) {
	for _, line := range lines {
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	return debit, credit
}

// Balanced reports whether debit and credit totals agree within
// BalanceTolerance.
func Balanced(debit, credit decimal.Decimal) bool {
	return debit.Sub(credit).Abs().Cmp(BalanceTolerance) <= 0
}
