package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/accora-hq/ledger-service/internal/api"
	"github.com/accora-hq/ledger-service/internal/events/noop"
	"github.com/accora-hq/ledger-service/internal/infer"
	"github.com/accora-hq/ledger-service/internal/ledger"
	"github.com/accora-hq/ledger-service/internal/models"
	"github.com/accora-hq/ledger-service/internal/storage/memory"
)

func newTestServer(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	l := ledger.NewLedger(store, noop.NewPublisher(), zap.NewNop())
	server := api.NewServer(l, infer.NewEngine(infer.DefaultKeywords()), zap.NewNop())
	return server.Router(), store
}

func seedAccounts(t *testing.T, store *memory.Store) {
	t.Helper()
	accounts := []models.Account{
		{ID: "bank", OwnerID: "u1", Code: "1001", Name: "Bank Account", Type: models.AccountTypeAsset},
		{ID: "rent", OwnerID: "u1", Code: "5001", Name: "Rent Expense", Type: models.AccountTypeExpense},
	}
	for _, acc := range accounts {
		_, err := store.CreateAccount(context.Background(), acc)
		require.NoError(t, err)
	}
}

func doJSON(t *testing.T, handler http.Handler, method, path, owner string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if owner != "" {
		req.Header.Set("X-Owner-ID", owner)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMissingOwnerIsUnauthorized(t *testing.T) {
	handler, _ := newTestServer(t)
	rec := doJSON(t, handler, http.MethodGet, "/api/accounts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealth(t *testing.T) {
	handler, _ := newTestServer(t)
	rec := doJSON(t, handler, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateEntry(t *testing.T) {
	handler, store := newTestServer(t)
	seedAccounts(t, store)

	rec := doJSON(t, handler, http.MethodPost, "/api/journals", "u1", map[string]any{
		"date":        "2024-01-01",
		"description": "Rent",
		"lines": []map[string]any{
			{"accountId": "rent", "debit": 500, "credit": 0},
			{"accountId": "bank", "debit": 0, "credit": 500},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Success bool                `json:"success"`
		Entry   models.JournalEntry `json:"entry"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Entry.ID)
	assert.Len(t, resp.Entry.Lines, 2)
}

func TestCreateEntryUnbalanced(t *testing.T) {
	handler, store := newTestServer(t)
	seedAccounts(t, store)

	rec := doJSON(t, handler, http.MethodPost, "/api/journals", "u1", map[string]any{
		"date":        "2024-01-01",
		"description": "off",
		"lines": []map[string]any{
			{"accountId": "rent", "debit": 100, "credit": 0},
			{"accountId": "bank", "debit": 0, "credit": 90},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error struct {
			Kind   string `json:"kind"`
			Totals *struct {
				Debit  string `json:"debit"`
				Credit string `json:"credit"`
			} `json:"totals"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "unbalanced", resp.Error.Kind)
	require.NotNil(t, resp.Error.Totals)
	assert.Equal(t, "100", resp.Error.Totals.Debit)
	assert.Equal(t, "90", resp.Error.Totals.Credit)
}

func TestCreateEntryRejectsBadDate(t *testing.T) {
	handler, store := newTestServer(t)
	seedAccounts(t, store)

	rec := doJSON(t, handler, http.MethodPost, "/api/journals", "u1", map[string]any{
		"date":        "01/02/2024",
		"description": "Rent",
		"lines":       []map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrialBalanceEndpoint(t *testing.T) {
	handler, store := newTestServer(t)
	seedAccounts(t, store)

	rec := doJSON(t, handler, http.MethodPost, "/api/journals", "u1", map[string]any{
		"date":        "2024-01-01",
		"description": "Rent",
		"lines": []map[string]any{
			{"accountId": "rent", "debit": 500, "credit": 0},
			{"accountId": "bank", "debit": 0, "credit": 500},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/reports/trial-balance", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		IsBalanced bool `json:"isBalanced"`
		Totals     struct {
			Debit  string `json:"debit"`
			Credit string `json:"credit"`
		} `json:"totals"`
		Data []struct {
			Code       string `json:"code"`
			NetBalance string `json:"net_balance"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsBalanced)
	assert.Equal(t, "500", resp.Totals.Debit)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "1001", resp.Data[0].Code)
	assert.Equal(t, "-500", resp.Data[0].NetBalance)
	assert.Equal(t, "500", resp.Data[1].NetBalance)
}

func TestAnalyzeEndpoint(t *testing.T) {
	handler, store := newTestServer(t)
	seedAccounts(t, store)

	rec := doJSON(t, handler, http.MethodPost, "/api/ai/analyze", "u1", map[string]any{
		"text": "Paid 50 for Rent",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Suggestion struct {
			Description string `json:"description"`
			Lines       []struct {
				AccountName string `json:"accountName"`
				Debit       string `json:"debit"`
				Credit      string `json:"credit"`
			} `json:"lines"`
		} `json:"suggestion"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Suggestion.Lines, 2)
	assert.Equal(t, "Rent Expense", resp.Suggestion.Lines[0].AccountName)
	assert.Equal(t, "50", resp.Suggestion.Lines[0].Debit)
	assert.Equal(t, "Bank Account", resp.Suggestion.Lines[1].AccountName)
	assert.Equal(t, "50", resp.Suggestion.Lines[1].Credit)
}

func TestAnalyzeNoAmount(t *testing.T) {
	handler, store := newTestServer(t)
	seedAccounts(t, store)

	rec := doJSON(t, handler, http.MethodPost, "/api/ai/analyze", "u1", map[string]any{
		"text": "blah blah",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error struct {
			Kind string `json:"kind"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "no_amount", resp.Error.Kind)
}

func TestCreateAccountEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/accounts", "u1", map[string]any{
		"name": "Bank Account", "code": "1001", "type": "Asset",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate code conflicts.
	rec = doJSON(t, handler, http.MethodPost, "/api/accounts", "u1", map[string]any{
		"name": "Other Bank", "code": "1001", "type": "Asset",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Unknown type is rejected at the boundary.
	rec = doJSON(t, handler, http.MethodPost, "/api/accounts", "u1", map[string]any{
		"name": "Weird", "code": "9999", "type": "Imaginary",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEntriesEndpoint(t *testing.T) {
	handler, store := newTestServer(t)
	seedAccounts(t, store)

	rec := doJSON(t, handler, http.MethodPost, "/api/journals", "u1", map[string]any{
		"date":        "2024-01-01",
		"description": "Rent",
		"lines": []map[string]any{
			{"accountId": "rent", "debit": 500, "credit": 0},
			{"accountId": "bank", "debit": 0, "credit": 500},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/journals", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count   int `json:"count"`
		Entries []struct {
			Description string `json:"description"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Entries, 1)

	// Another tenant sees nothing.
	rec = doJSON(t, handler, http.MethodGet, "/api/journals", "u2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
}
