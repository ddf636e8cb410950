package infer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accora-hq/ledger-service/internal/infer"
	"github.com/accora-hq/ledger-service/internal/models"
)

func TestLoadKeywordsOverridesAndFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	content := `
spending: [splurged]
domains:
  - keywords: [hosting, server]
    accounts: [cloud]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	kw, err := infer.LoadKeywords(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"splurged"}, kw.Spending)
	require.Len(t, kw.Domains, 1)
	assert.Equal(t, []string{"cloud"}, kw.Domains[0].Accounts)
	// Tables the file leaves out keep their defaults.
	assert.Equal(t, infer.DefaultKeywords().Earning, kw.Earning)
	assert.Equal(t, infer.DefaultKeywords().Payment, kw.Payment)
}

func TestLoadKeywordsMissingFile(t *testing.T) {
	_, err := infer.LoadKeywords(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestCustomKeywordsDriveTheEngine(t *testing.T) {
	kw := infer.DefaultKeywords()
	kw.Domains = append(kw.Domains, infer.DomainRule{
		Keywords: []string{"hosting"},
		Accounts: []string{"cloud"},
	})
	engine := infer.NewEngine(kw)

	accounts := []models.Account{
		{ID: "cloud", Name: "Cloud Services", Code: "5005", Type: models.AccountTypeExpense},
		{ID: "bank", Name: "Bank Account", Code: "1001", Type: models.AccountTypeAsset},
	}
	candidate, err := engine.Infer("Paid 40 for hosting", accounts)
	require.NoError(t, err)
	require.Len(t, candidate.Lines, 2)
	assert.Equal(t, "Cloud Services", candidate.Lines[0].AccountName)
}
