package interfaces

import (
	"context"

	"github.com/accora-hq/ledger-service/internal/models"
)

// LedgerStore is the persistence boundary of the ledger core. Every method
// is scoped by owner: a store implementation must make cross-tenant reads
// and writes impossible at the query level.
type LedgerStore interface {
	// CreateAccount adds an account to the owner's chart of accounts.
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)

	// ListAccounts returns the owner's accounts ordered by code.
	ListAccounts(ctx context.Context, ownerID string) ([]models.Account, error)

	// CreateEntry atomically persists a journal entry header and all of its
	// lines. On any failure nothing is persisted and no partial entry is
	// ever observable to concurrent readers. A line referencing an account
	// that does not belong to the entry's owner fails the whole transaction
	// with apperr.KindInvalidReference.
	CreateEntry(ctx context.Context, entry models.JournalEntry, lines []models.LedgerLine) (models.JournalEntry, error)

	// ListEntries returns the owner's entries with their lines, newest first.
	ListEntries(ctx context.Context, ownerID string) ([]models.JournalEntry, error)

	// ListLines returns every ledger line belonging to the owner, for
	// aggregation.
	ListLines(ctx context.Context, ownerID string) ([]models.LedgerLine, error)
}
