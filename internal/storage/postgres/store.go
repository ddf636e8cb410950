// Package postgres implements the ledger store over PostgreSQL using
// database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/accora-hq/ledger-service/internal/apperr"
	"github.com/accora-hq/ledger-service/internal/interfaces"
	"github.com/accora-hq/ledger-service/internal/models"
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// Store is a PostgreSQL-backed LedgerStore.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return apperr.Store(err)
	}
	return nil
}

// CreateAccount inserts one chart-of-accounts row. A duplicate code for the
// same owner maps to apperr.KindDuplicateCode.
func (s *Store) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	const query = `INSERT INTO accounts (id, owner_id, code, name, type, description)
	VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		account.ID, account.OwnerID, account.Code, account.Name, account.Type, account.Description)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return models.Account{}, apperr.Newf(apperr.KindDuplicateCode,
				"account code %q already exists", account.Code)
		}
		return models.Account{}, apperr.Store(err)
	}
	return account, nil
}

// ListAccounts returns the owner's accounts ordered by code.
func (s *Store) ListAccounts(ctx context.Context, ownerID string) ([]models.Account, error) {
	const query = `SELECT id, owner_id, code, name, type, description
	FROM accounts WHERE owner_id = $1 ORDER BY code ASC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var acc models.Account
		if err := rows.Scan(&acc.ID, &acc.OwnerID, &acc.Code, &acc.Name, &acc.Type, &acc.Description); err != nil {
			return nil, apperr.Store(err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store(err)
	}
	return accounts, nil
}

// CreateEntry persists the entry header and all lines in one transaction.
// The transaction is rolled back on every failure path, so concurrent
// readers see either the complete entry or none of it.
func (s *Store) CreateEntry(ctx context.Context, entry models.JournalEntry, lines []models.LedgerLine) (models.JournalEntry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.JournalEntry{}, apperr.Store(err)
	}
	defer tx.Rollback()

	const insertEntry = `INSERT INTO journal_entries (id, owner_id, date, description, source_type, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := tx.ExecContext(ctx, insertEntry,
		entry.ID, entry.OwnerID, entry.Date, entry.Description, entry.Source, entry.CreatedAt); err != nil {
		return models.JournalEntry{}, apperr.Store(err)
	}

	const insertLine = `INSERT INTO ledger_lines (id, journal_entry_id, owner_id, account_id, debit, credit)
	VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range lines {
		lines[i].ID = uuid.New().String()
		lines[i].JournalEntryID = entry.ID
		_, err := tx.ExecContext(ctx, insertLine,
			lines[i].ID, entry.ID, entry.OwnerID, lines[i].AccountID, lines[i].Debit, lines[i].Credit)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && string(pqErr.Code) == pqForeignKeyViolation {
				return models.JournalEntry{}, apperr.Newf(apperr.KindInvalidReference,
					"account %s does not exist or is not yours", lines[i].AccountID)
			}
			return models.JournalEntry{}, apperr.Store(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.JournalEntry{}, apperr.Store(err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries returns the owner's entries with their lines, newest first.
// Lines carry the account name and code, debits before credits, matching
// the standard journal presentation.
func (s *Store) ListEntries(ctx context.Context, ownerID string) ([]models.JournalEntry, error) {
	const entriesQuery = `SELECT id, owner_id, date, description, source_type, created_at
	FROM journal_entries WHERE owner_id = $1
	ORDER BY date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, entriesQuery, ownerID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	defer rows.Close()

	var entries []models.JournalEntry
	index := make(map[string]int)
	for rows.Next() {
		var e models.JournalEntry
		var date time.Time // DATE columns scan as time.Time under lib/pq
		if err := rows.Scan(&e.ID, &e.OwnerID, &date, &e.Description, &e.Source, &e.CreatedAt); err != nil {
			return nil, apperr.Store(err)
		}
		e.Date = date.Format("2006-01-02")
		index[e.ID] = len(entries)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store(err)
	}

	const linesQuery = `SELECT ll.id, ll.journal_entry_id, ll.owner_id, ll.account_id, a.name, a.code, ll.debit, ll.credit
	FROM ledger_lines ll
	JOIN accounts a ON a.id = ll.account_id
	WHERE ll.owner_id = $1
	ORDER BY ll.debit DESC`

	lineRows, err := s.db.QueryContext(ctx, linesQuery, ownerID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var l models.LedgerLine
		if err := lineRows.Scan(&l.ID, &l.JournalEntryID, &l.OwnerID, &l.AccountID, &l.AccountName, &l.AccountCode, &l.Debit, &l.Credit); err != nil {
			return nil, apperr.Store(err)
		}
		if i, ok := index[l.JournalEntryID]; ok {
			entries[i].Lines = append(entries[i].Lines, l)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, apperr.Store(err)
	}
	return entries, nil
}

// ListLines returns every line belonging to the owner.
func (s *Store) ListLines(ctx context.Context, ownerID string) ([]models.LedgerLine, error) {
	const query = `SELECT id, journal_entry_id, owner_id, account_id, debit, credit
	FROM ledger_lines WHERE owner_id = $1`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	defer rows.Close()

	var lines []models.LedgerLine
	for rows.Next() {
		var l models.LedgerLine
		if err := rows.Scan(&l.ID, &l.JournalEntryID, &l.OwnerID, &l.AccountID, &l.Debit, &l.Credit); err != nil {
			return nil, apperr.Store(err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store(err)
	}
	return lines, nil
}

var _ interfaces.LedgerStore = (*Store)(nil)
