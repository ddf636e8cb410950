// Package memory implements the ledger store in process memory. It backs
// unit tests and broker-less development runs while keeping the same
// atomicity contract as the PostgreSQL store: an entry is visible fully
// committed or not at all.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/accora-hq/ledger-service/internal/apperr"
	"github.com/accora-hq/ledger-service/internal/interfaces"
	"github.com/accora-hq/ledger-service/internal/models"
)

// Store is a mutex-guarded in-memory LedgerStore.
type Store struct {
	mu       sync.Mutex
	accounts map[string]models.Account // keyed by account id
	entries  []models.JournalEntry
	lines    []models.LedgerLine
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]models.Account),
	}
}

// CreateAccount adds an account, enforcing code uniqueness per owner.
func (s *Store) CreateAccount(_ context.Context, account models.Account) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.OwnerID == account.OwnerID && existing.Code == account.Code {
			return models.Account{}, apperr.Newf(apperr.KindDuplicateCode,
				"account code %q already exists", account.Code)
		}
	}
	s.accounts[account.ID] = account
	return account, nil
}

// ListAccounts returns the owner's accounts ordered by code.
func (s *Store) ListAccounts(_ context.Context, ownerID string) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var accounts []models.Account
	for _, acc := range s.accounts {
		if acc.OwnerID == ownerID {
			accounts = append(accounts, acc)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, nil
}

// CreateEntry validates every account reference up front and only then
// appends the header and lines, so a failure leaves the store untouched.
func (s *Store) CreateEntry(_ context.Context, entry models.JournalEntry, lines []models.LedgerLine) (models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range lines {
		acc, ok := s.accounts[line.AccountID]
		if !ok || acc.OwnerID != entry.OwnerID {
			return models.JournalEntry{}, apperr.Newf(apperr.KindInvalidReference,
				"account %s does not exist or is not yours", line.AccountID)
		}
	}

	stored := make([]models.LedgerLine, len(lines))
	for i, line := range lines {
		line.ID = uuid.New().String()
		line.JournalEntryID = entry.ID
		acc := s.accounts[line.AccountID]
		line.AccountName = acc.Name
		line.AccountCode = acc.Code
		stored[i] = line
	}

	s.entries = append(s.entries, entry)
	s.lines = append(s.lines, stored...)

	entry.Lines = stored
	return entry, nil
}

// ListEntries returns the owner's entries with their lines, newest first.
func (s *Store) ListEntries(_ context.Context, ownerID string) ([]models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []models.JournalEntry
	for _, e := range s.entries {
		if e.OwnerID != ownerID {
			continue
		}
		for _, l := range s.lines {
			if l.JournalEntryID == e.ID {
				e.Lines = append(e.Lines, l)
			}
		}
		// Debits first, the standard journal presentation.
		sort.SliceStable(e.Lines, func(i, j int) bool {
			return e.Lines[i].Debit.GreaterThan(e.Lines[j].Debit)
		})
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// ListLines returns a copy of every line belonging to the owner.
func (s *Store) ListLines(_ context.Context, ownerID string) ([]models.LedgerLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lines []models.LedgerLine
	for _, l := range s.lines {
		if l.OwnerID == ownerID {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

var _ interfaces.LedgerStore = (*Store)(nil)
