package models

import "github.com/shopspring/decimal"

// CandidateLine is one proposed side of an inferred entry. It carries the
// account name so a client can render the suggestion without a second
// registry lookup.
type CandidateLine struct {
	AccountID   string          `json:"accountId"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CandidateEntry is the inference engine's output: a balanced journal entry
// proposal. It has not been persisted; the caller must post it through the
// posting engine, which remains the single place the balance invariant is
// authoritatively enforced.
type CandidateEntry struct {
	Description string          `json:"description"`
	Lines       []CandidateLine `json:"lines"`
}
