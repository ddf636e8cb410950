// Package api exposes the ledger core over HTTP. Request bodies are
// strongly typed and validated at this boundary; the core never sees a raw
// request.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/accora-hq/ledger-service/internal/apperr"
	"github.com/accora-hq/ledger-service/internal/infer"
	"github.com/accora-hq/ledger-service/internal/ledger"
	"github.com/accora-hq/ledger-service/internal/models"
)

// Server holds the handlers' dependencies.
type Server struct {
	ledger *ledger.Ledger
	infer  *infer.Engine
	logger *zap.Logger
}

// NewServer builds the API server over the ledger core.
func NewServer(l *ledger.Ledger, engine *infer.Engine, logger *zap.Logger) *Server {
	return &Server{ledger: l, infer: engine, logger: logger}
}

// Router assembles all routes. Everything under /api requires a resolved
// owner identity.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestLogger(s.logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(RequireOwner)
		r.Post("/journals", s.handleCreateEntry)
		r.Get("/journals", s.handleListEntries)
		r.Get("/reports/trial-balance", s.handleTrialBalance)
		r.Post("/ai/analyze", s.handleAnalyze)
		r.Get("/accounts", s.handleListAccounts)
		r.Post("/accounts", s.handleCreateAccount)
	})
	return r
}

type lineRequest struct {
	AccountID string          `json:"accountId"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

type createEntryRequest struct {
	Date        string        `json:"date"`
	Description string        `json:"description"`
	Lines       []lineRequest `json:"lines"`
	Source      string        `json:"source,omitempty"`
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	owner, _ := OwnerFromContext(r.Context())

	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Date == "" || req.Description == "" {
		writeBadRequest(w, "date and description are required")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		writeBadRequest(w, "date must be an ISO-8601 calendar date (YYYY-MM-DD)")
		return
	}

	source := models.SourceManual
	if req.Source == string(models.SourceInferred) {
		source = models.SourceInferred
	}

	inputs := make([]ledger.LineInput, len(req.Lines))
	for i, l := range req.Lines {
		inputs[i] = ledger.LineInput{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit}
	}

	entry, err := s.ledger.Post(r.Context(), owner, req.Date, req.Description, source, inputs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "entry": entry})
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	owner, _ := OwnerFromContext(r.Context())

	entries, err := s.ledger.Entries(r.Context(), owner)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(entries),
		"entries": entries,
	})
}

func (s *Server) handleTrialBalance(w http.ResponseWriter, r *http.Request) {
	owner, _ := OwnerFromContext(r.Context())

	report, err := s.ledger.TrialBalance(r.Context(), owner)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"isBalanced": report.IsBalanced,
		"totals":     report.Totals,
		"data":       report.Rows,
	})
}

type analyzeRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	owner, _ := OwnerFromContext(r.Context())

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Text == "" {
		writeBadRequest(w, "text is required")
		return
	}

	accounts, err := s.ledger.Accounts(r.Context(), owner)
	if err != nil {
		s.writeError(w, err)
		return
	}
	suggestion, err := s.infer.Infer(req.Text, accounts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "suggestion": suggestion})
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	owner, _ := OwnerFromContext(r.Context())

	accounts, err := s.ledger.Accounts(r.Context(), owner)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"count":    len(accounts),
		"accounts": accounts,
	})
}

type createAccountRequest struct {
	Name        string             `json:"name"`
	Code        string             `json:"code"`
	Type        models.AccountType `json:"type"`
	Description string             `json:"description"`
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	owner, _ := OwnerFromContext(r.Context())

	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" || req.Code == "" || req.Type == "" {
		writeBadRequest(w, "name, code and type are required")
		return
	}
	if !req.Type.Valid() {
		writeBadRequest(w, "type must be one of Asset, Liability, Equity, Revenue, Expense")
		return
	}

	account, err := s.ledger.CreateAccount(r.Context(), owner, req.Name, req.Code, req.Type, req.Description)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "account": account})
}

type errorBody struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Totals  *apperr.Totals `json:"totals,omitempty"`
}

type errorResponse struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

// writeError maps a core error to its HTTP status: client faults are 400
// (409 for a duplicate account code), store faults 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	appErr, ok := apperr.As(err)
	if !ok || appErr.Kind == apperr.KindStoreFailure {
		s.logger.Error("store failure", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorBody{Kind: string(apperr.KindStoreFailure), Message: "internal error"},
		})
		return
	}

	status := http.StatusBadRequest
	if appErr.Kind == apperr.KindDuplicateCode {
		status = http.StatusConflict
	}
	writeJSON(w, status, errorResponse{
		Error: errorBody{Kind: string(appErr.Kind), Message: appErr.Message, Totals: appErr.Totals},
	})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error: errorBody{Kind: "invalid_request", Message: message},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
