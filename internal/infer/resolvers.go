package infer

import (
	"strings"

	"github.com/accora-hq/ledger-service/internal/models"
)

// categoryResolver is one strategy for picking the category side of the
// entry. Resolvers are tried in order; the first hit wins.
type categoryResolver func(lower string, accounts []models.Account, verb intent) (models.Account, bool)

// resolveByDomain consults the domain word tables: if the text mentions a
// trigger word, pick the first account whose name contains one of the
// rule's name fragments.
func (e *Engine) resolveByDomain(lower string, accounts []models.Account, _ intent) (models.Account, bool) {
	for _, rule := range e.keywords.Domains {
		if !containsAny(lower, rule.Keywords) {
			continue
		}
		for _, acc := range accounts {
			if containsAny(strings.ToLower(acc.Name), rule.Accounts) {
				return acc, true
			}
		}
	}
	return models.Account{}, false
}

// resolveByName picks the first account mentioned in the text, either by
// its full name or by any word of the name longer than three characters.
func (e *Engine) resolveByName(lower string, accounts []models.Account, _ intent) (models.Account, bool) {
	for _, acc := range accounts {
		name := strings.ToLower(acc.Name)
		if strings.Contains(lower, name) {
			return acc, true
		}
		for _, word := range strings.Fields(name) {
			if len(word) > 3 && strings.Contains(lower, word) {
				return acc, true
			}
		}
	}
	return models.Account{}, false
}

// resolveByType is the generic fallback: the first Expense account for
// spending (and for ambiguous intent), the first Revenue account for
// earning. Cost-of-goods accounts are excluded so a commonly seeded COGS
// account does not swallow every unmatched description.
func (e *Engine) resolveByType(_ string, accounts []models.Account, verb intent) (models.Account, bool) {
	want := models.AccountTypeExpense
	if verb == intentEarning {
		want = models.AccountTypeRevenue
	}
	for _, acc := range accounts {
		if acc.Type != want {
			continue
		}
		if containsAny(strings.ToLower(acc.Name), e.keywords.Excluded) {
			continue
		}
		return acc, true
	}
	return models.Account{}, false
}

// resolvePayment picks the first account whose name matches the payment
// word table (cash, bank, card, wallet). The account already chosen as
// category is skipped: a candidate whose two lines collapse to one under
// de-duplication would be unpostable.
func (e *Engine) resolvePayment(accounts []models.Account, categoryID string) (models.Account, bool) {
	for _, acc := range accounts {
		if acc.ID == categoryID {
			continue
		}
		if containsAny(strings.ToLower(acc.Name), e.keywords.Payment) {
			return acc, true
		}
	}
	return models.Account{}, false
}

func containsAny(s string, words []string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}
