package models

import "github.com/shopspring/decimal"

// TrialBalanceRow is the aggregated activity of a single account. It is
// derived on demand and never persisted.
type TrialBalanceRow struct {
	AccountID   string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Type        AccountType     `json:"type"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	NetBalance  decimal.Decimal `json:"net_balance"`
}

// Totals is the grand debit/credit sum across a trial balance.
type Totals struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// TrialBalance is the full report: one row per owned account (zero-activity
// accounts included), rows ordered by account code.
type TrialBalance struct {
	IsBalanced bool              `json:"isBalanced"`
	Totals     Totals            `json:"totals"`
	Rows       []TrialBalanceRow `json:"data"`
}
