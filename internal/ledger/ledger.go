// Package ledger implements the double-entry posting and aggregation core.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/accora-hq/ledger-service/internal/apperr"
	"github.com/accora-hq/ledger-service/internal/interfaces"
	"github.com/accora-hq/ledger-service/internal/models"
	"github.com/accora-hq/ledger-service/internal/models/events"
)

// Ledger validates proposed journal entries and commits them through the
// store. It holds no locks of its own: every entry is a self-contained
// insert set and correctness relies entirely on the store's transactional
// atomicity.
type Ledger struct {
	store     interfaces.LedgerStore
	publisher interfaces.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewLedger wires a Ledger over the given store and publisher. The
// publisher may be a no-op implementation when no broker is configured.
func NewLedger(store interfaces.LedgerStore, publisher interfaces.EventPublisher, logger *zap.Logger) *Ledger {
	return &Ledger{
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// LineInput is one proposed line of an entry to post.
type LineInput struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// Post validates a proposed entry and commits it atomically. Validation
// runs entirely before the store is touched; a rejected entry leaves no
// trace. On success the durable entry is returned and an EntryPosted event
// is published best-effort.
func (l *Ledger) Post(ctx context.Context, ownerID, date, description string, source models.EntrySource, inputs []LineInput) (models.JournalEntry, error) {
	if len(inputs) < 2 {
		return models.JournalEntry{}, apperr.Newf(apperr.KindInsufficientLines,
			"an entry needs at least 2 lines, got %d", len(inputs))
	}

	lines := make([]models.LedgerLine, 0, len(inputs))
	for i, in := range inputs {
		line := models.LedgerLine{
			AccountID: in.AccountID,
			OwnerID:   ownerID,
			Debit:     in.Debit,
			Credit:    in.Credit,
		}
		if !line.Exclusive() {
			return models.JournalEntry{}, apperr.Newf(apperr.KindInvalidLine,
				"line %d must carry exactly one positive side, got debit %s credit %s", i+1, in.Debit, in.Credit)
		}
		lines = append(lines, line)
	}

	totalDebit, totalCredit := models.LineTotals(lines)
	if !models.Balanced(totalDebit, totalCredit) {
		return models.JournalEntry{}, apperr.Unbalanced(totalDebit, totalCredit)
	}

	entry := models.JournalEntry{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Date:        date,
		Description: description,
		Source:      source,
		CreatedAt:   l.now().UTC(),
	}

	created, err := l.store.CreateEntry(ctx, entry, lines)
	if err != nil {
		return models.JournalEntry{}, err
	}

	l.publish(ctx, created, len(lines), totalDebit)
	return created, nil
}

// publish emits the EntryPosted event. The committed entry is
// authoritative, so a broker failure is logged and swallowed.
func (l *Ledger) publish(ctx context.Context, entry models.JournalEntry, lineCount int, totalDebit decimal.Decimal) {
	event := events.EntryPosted{
		EntryID:     entry.ID,
		OwnerID:     entry.OwnerID,
		Date:        entry.Date,
		Description: entry.Description,
		Source:      string(entry.Source),
		LineCount:   lineCount,
		TotalDebit:  totalDebit,
		OccurredAt:  entry.CreatedAt,
	}
	if err := l.publisher.Publish(ctx, event); err != nil {
		l.logger.Warn("entry posted event not published",
			zap.String("entry_id", entry.ID),
			zap.Error(err))
	}
}

// Entries returns the owner's journal entries with their lines, newest
// first.
func (l *Ledger) Entries(ctx context.Context, ownerID string) ([]models.JournalEntry, error) {
	return l.store.ListEntries(ctx, ownerID)
}

// Accounts returns the owner's chart of accounts ordered by code.
func (l *Ledger) Accounts(ctx context.Context, ownerID string) ([]models.Account, error) {
	return l.store.ListAccounts(ctx, ownerID)
}

// CreateAccount registers a new account for the owner.
func (l *Ledger) CreateAccount(ctx context.Context, ownerID, name, code string, accType models.AccountType, description string) (models.Account, error) {
	account := models.Account{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Code:        code,
		Name:        name,
		Type:        accType,
		Description: description,
	}
	return l.store.CreateAccount(ctx, account)
}
