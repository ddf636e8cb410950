package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryPosted is emitted after a journal entry has been durably committed.
// Consumers must treat the ledger, not this event, as the source of truth.
type EntryPosted struct {
	EntryID     string          `json:"entry_id"`
	OwnerID     string          `json:"owner_id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Source      string          `json:"source"`
	LineCount   int             `json:"line_count"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
