// Package infer converts a free-text transaction description into a
// candidate balanced journal entry by matching intent keywords and account
// names. The engine is a pure function of its inputs: it never touches the
// store, and its output must still pass through the posting engine to be
// persisted.
package infer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/accora-hq/ledger-service/internal/apperr"
	"github.com/accora-hq/ledger-service/internal/models"
)

// intent is the classified direction of money flow in the described
// transaction.
type intent int

const (
	intentAmbiguous intent = iota
	intentSpending
	intentEarning
)

// amountPattern matches the first decimal numeral, optionally preceded by a
// currency marker, with optional thousands separators and up to two decimal
// places.
var amountPattern = regexp.MustCompile(`(?i)(?:\$|€|£|₹|rs\.?|inr|usd)?\s*(\d+(?:,\d{3})*(?:\.\d{1,2})?)`)

// Engine runs the inference pipeline over a configured set of word tables.
type Engine struct {
	keywords  Keywords
	resolvers []categoryResolver
}

// NewEngine builds an Engine. The category resolvers are tried in order;
// precedence is fixed: domain keyword tables, then account-name mentions,
// then the generic per-type fallback.
func NewEngine(keywords Keywords) *Engine {
	e := &Engine{keywords: keywords}
	e.resolvers = []categoryResolver{
		e.resolveByDomain,
		e.resolveByName,
		e.resolveByType,
	}
	return e
}

// Infer analyzes text against the owner's accounts and proposes a balanced
// two-line entry. The candidate debits and credits the same extracted
// amount, so it satisfies the posting engine's balance invariant by
// construction.
func (e *Engine) Infer(text string, accounts []models.Account) (models.CandidateEntry, error) {
	lower := strings.ToLower(text)

	amount, ok := extractAmount(text)
	if !ok {
		return models.CandidateEntry{}, apperr.New(apperr.KindNoAmount,
			"please include an amount (e.g. 100)")
	}

	verb := e.classify(lower)

	var category *models.Account
	for _, resolve := range e.resolvers {
		if acc, ok := resolve(lower, accounts, verb); ok {
			category = &acc
			break
		}
	}
	if category == nil {
		return models.CandidateEntry{}, apperr.New(apperr.KindNoCategoryMatch,
			"could not identify a category account from the description")
	}

	payment, ok := e.resolvePayment(accounts, category.ID)
	if !ok {
		return models.CandidateEntry{}, apperr.New(apperr.KindNoPaymentAccount,
			"could not identify a payment account; try mentioning 'Cash' or 'Bank'")
	}

	candidate := models.CandidateEntry{
		Description: strings.TrimSpace(text),
		Lines:       buildLines(verb, *category, payment, amount),
	}
	candidate.Lines = dedupeLines(candidate.Lines)
	return candidate, nil
}

// classify matches the text against the spending and earning verb tables.
// Spending wins when both match, mirroring the resolver precedence.
func (e *Engine) classify(lower string) intent {
	for _, word := range e.keywords.Spending {
		if strings.Contains(lower, word) {
			return intentSpending
		}
	}
	for _, word := range e.keywords.Earning {
		if strings.Contains(lower, word) {
			return intentEarning
		}
	}
	return intentAmbiguous
}

// extractAmount scans text for the first decimal numeral and parses it.
func extractAmount(text string) (decimal.Decimal, bool) {
	match := amountPattern.FindStringSubmatch(text)
	if match == nil {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(match[1], ",", ""))
	if err != nil || !amount.IsPositive() {
		return decimal.Decimal{}, false
	}
	return amount, true
}

// buildLines applies the debit/credit sign convention: spending debits the
// category and credits the payment account, earning debits the payment
// account and credits the category. Ambiguous intent is treated as
// spending.
func buildLines(verb intent, category, payment models.Account, amount decimal.Decimal) []models.CandidateLine {
	categoryLine := models.CandidateLine{AccountID: category.ID, AccountName: category.Name}
	paymentLine := models.CandidateLine{AccountID: payment.ID, AccountName: payment.Name}
	if verb == intentEarning {
		paymentLine.Debit = amount
		categoryLine.Credit = amount
		return []models.CandidateLine{paymentLine, categoryLine}
	}
	categoryLine.Debit = amount
	paymentLine.Credit = amount
	return []models.CandidateLine{categoryLine, paymentLine}
}

// dedupeLines drops lines whose account id was already seen, keeping the
// first occurrence.
func dedupeLines(lines []models.CandidateLine) []models.CandidateLine {
	seen := make(map[string]bool, len(lines))
	out := lines[:0]
	for _, line := range lines {
		if seen[line.AccountID] {
			continue
		}
		seen[line.AccountID] = true
		out = append(out, line)
	}
	return out
}
