package infer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DomainRule maps trigger words found in a transaction description to
// fragments of account names that identify the matching category account.
type DomainRule struct {
	Keywords []string `yaml:"keywords"`
	Accounts []string `yaml:"accounts"`
}

// Keywords holds every word table the inference engine matches against.
// The zero value is unusable; start from DefaultKeywords or LoadKeywords.
type Keywords struct {
	Spending []string     `yaml:"spending"`
	Earning  []string     `yaml:"earning"`
	Domains  []DomainRule `yaml:"domains"`
	Payment  []string     `yaml:"payment"`
	Excluded []string     `yaml:"excluded"` // name fragments barred from the generic fallback
}

// DefaultKeywords returns the compiled-in word tables.
func DefaultKeywords() Keywords {
	return Keywords{
		Spending: []string{"paid", "spent", "bought", "purchase", "expense", "bill", "gave", "payment"},
		Earning:  []string{"received", "sold", "earned", "income", "revenue", "deposit", "sale"},
		Domains: []DomainRule{
			{
				Keywords: []string{"electricity", "water", "internet", "broadband", "wifi", "phone", "utility", "power"},
				Accounts: []string{"utilities", "internet"},
			},
			{
				Keywords: []string{"inventory", "stock", "goods", "merchandise"},
				Accounts: []string{"inventory"},
			},
			{
				Keywords: []string{"salary", "salaries", "wages", "payroll", "staff"},
				Accounts: []string{"salary", "wages"},
			},
		},
		Payment:  []string{"bank", "cash", "card", "wallet"},
		Excluded: []string{"cost of goods", "cogs"},
	}
}

// LoadKeywords reads word tables from a YAML file, falling back to the
// defaults for any table the file leaves empty.
func LoadKeywords(path string) (Keywords, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Keywords{}, fmt.Errorf("read keywords file: %w", err)
	}
	var kw Keywords
	if err := yaml.Unmarshal(raw, &kw); err != nil {
		return Keywords{}, fmt.Errorf("parse keywords file %s: %w", path, err)
	}
	defaults := DefaultKeywords()
	if len(kw.Spending) == 0 {
		kw.Spending = defaults.Spending
	}
	if len(kw.Earning) == 0 {
		kw.Earning = defaults.Earning
	}
	if len(kw.Domains) == 0 {
		kw.Domains = defaults.Domains
	}
	if len(kw.Payment) == 0 {
		kw.Payment = defaults.Payment
	}
	if len(kw.Excluded) == 0 {
		kw.Excluded = defaults.Excluded
	}
	return kw, nil
}
