package ledger

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/accora-hq/ledger-service/internal/models"
)

// TrialBalance aggregates the owner's ledger into one row per account,
// zero-activity accounts included. It is a pure read: no locks are taken,
// and a post in flight is seen either fully committed or not at all.
//
// The aggregation is a two-pass fold over raw lines rather than a SQL
// grouping, so it behaves identically over every store implementation.
func (l *Ledger) TrialBalance(ctx context.Context, ownerID string) (models.TrialBalance, error) {
	accounts, err := l.store.ListAccounts(ctx, ownerID)
	if err != nil {
		return models.TrialBalance{}, err
	}
	lines, err := l.store.ListLines(ctx, ownerID)
	if err != nil {
		return models.TrialBalance{}, err
	}

	// First pass: group line totals by account.
	type bucket struct {
		debit  decimal.Decimal
		credit decimal.Decimal
	}
	buckets := make(map[string]bucket, len(accounts))
	for _, line := range lines {
		b := buckets[line.AccountID]
		b.debit = b.debit.Add(line.Debit)
		b.credit = b.credit.Add(line.Credit)
		buckets[line.AccountID] = b
	}

	// Second pass: apply the sign convention per account type.
	report := models.TrialBalance{Rows: make([]models.TrialBalanceRow, 0, len(accounts))}
	for _, account := range accounts {
		b := buckets[account.ID]
		net := b.credit.Sub(b.debit)
		if account.Type.DebitNormal() {
			net = b.debit.Sub(b.credit)
		}
		report.Rows = append(report.Rows, models.TrialBalanceRow{
			AccountID:   account.ID,
			Code:        account.Code,
			Name:        account.Name,
			Type:        account.Type,
			TotalDebit:  b.debit,
			TotalCredit: b.credit,
			NetBalance:  net,
		})
		report.Totals.Debit = report.Totals.Debit.Add(b.debit)
		report.Totals.Credit = report.Totals.Credit.Add(b.credit)
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].Code < report.Rows[j].Code
	})

	report.IsBalanced = models.Balanced(report.Totals.Debit, report.Totals.Credit)
	if !report.IsBalanced {
		// Every committed entry is individually balanced, so an unbalanced
		// ledger means store tampering or a posting bug. Alert, but still
		// return the report as evidence.
		l.logger.Warn("trial balance does not balance",
			zap.String("owner_id", ownerID),
			zap.String("total_debit", report.Totals.Debit.String()),
			zap.String("total_credit", report.Totals.Credit.String()))
	}
	return report, nil
}
