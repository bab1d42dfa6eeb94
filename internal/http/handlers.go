package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/core"
)

type createTransactionRequest struct {
	UserID      int64   `json:"user_id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Amount      string  `json:"amount"`
	Type        string  `json:"type"`
	TaxWithheld bool    `json:"tax_withheld"`
	TaxRate     float64 `json:"tax_rate"`
}

type transactionResponse struct {
	ID             int64   `json:"id"`
	Date           string  `json:"date"`
	Category       string  `json:"category"`
	Subcategory    string  `json:"subcategory,omitempty"`
	AmountCents    int64   `json:"amount_cents"`
	NetAmountCents int64   `json:"net_amount_cents"`
	Type           string  `json:"type"`
	TaxWithheld    bool    `json:"tax_withheld,omitempty"`
	TaxRate        float64 `json:"tax_rate,omitempty"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:             t.ID,
		Date:           t.Date.Key(),
		Category:       t.Category,
		Subcategory:    t.Subcategory,
		AmountCents:    t.Amount.Cents,
		NetAmountCents: t.NetAmount().Cents,
		Type:           string(t.Type),
		TaxWithheld:    t.TaxWithheld,
		TaxRate:        t.TaxRate,
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid amount: %v", err))
		return
	}

	t := core.Transaction{
		Date:        date,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Amount:      core.Money{Cents: cents},
		Type:        core.TransactionType(req.Type),
		TaxWithheld: req.TaxWithheld,
		TaxRate:     req.TaxRate,
	}
	if err := t.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := req.UserID
	if userID == 0 {
		userID = defaultUserID
	}

	session, err := s.sessions.Session(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load session", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "session load failed")
		return
	}

	id, err := session.Add(r.Context(), t)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create transaction", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "create failed")
		return
	}
	s.bumpGeneration(userID)

	t.ID = id
	writeJSON(w, http.StatusCreated, map[string]any{
		"transaction":   toTransactionResponse(t),
		"balance_cents": session.Balance().Cents,
	})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}
	userID := queryUserID(r)

	session, err := s.sessions.Session(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load session", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "session load failed")
		return
	}

	removed, err := session.Remove(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete transaction", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	s.bumpGeneration(userID)

	writeJSON(w, http.StatusOK, map[string]any{
		"deleted":       true,
		"balance_cents": session.Balance().Cents,
	})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := queryUserID(r)

	session, err := s.sessions.Session(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load session", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "session load failed")
		return
	}

	all := session.Transactions()
	out := make([]transactionResponse, 0, len(all))
	for _, t := range all {
		out = append(out, toTransactionResponse(t))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"transactions":  out,
		"balance_cents": session.Balance().Cents,
	})
}

type chartResponse struct {
	Points []chartPoint `json:"points"`
	Start  string       `json:"start"`
	End    string       `json:"end"`
	Ticks  int          `json:"ticks"`
	YMax   int64        `json:"y_max"`
}

type chartPoint struct {
	Date       string `json:"date"`
	TotalCents int64  `json:"total_cents"`
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	userID := queryUserID(r)
	criteria, err := parseCriteria(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := s.viewCacheKey(userID, criteria)
	series, hit := s.chartCache.Get(key)
	if !hit {
		session, err := s.sessions.Session(r.Context(), userID)
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to load session", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "session load failed")
			return
		}
		series = session.ChartSeries(criteria, time.Now())
		// The empty-series sentinel window is anchored to the current day;
		// caching it could serve yesterday's window across midnight.
		if len(series.Points) > 0 {
			s.chartCache.Set(key, series)
		}
	}

	resp := chartResponse{
		Points: make([]chartPoint, 0, len(series.Points)),
		Start:  series.Start.Key(),
		End:    series.End.Key(),
		Ticks:  series.Ticks,
		YMax:   series.YMax,
	}
	for _, p := range series.Points {
		resp.Points = append(resp.Points, chartPoint{Date: p.Date.Key(), TotalCents: p.Total.Cents})
	}
	writeJSON(w, http.StatusOK, resp)
}

type statementResponse struct {
	Rows        []statementRow `json:"rows"`
	WithBalance bool           `json:"with_balance"`
}

type statementRow struct {
	Date         string `json:"date,omitempty"`
	Category     string `json:"category,omitempty"`
	Subcategory  string `json:"subcategory,omitempty"`
	AmountCents  int64  `json:"amount_cents"`
	BalanceCents *int64 `json:"balance_cents,omitempty"`
	Total        bool   `json:"total,omitempty"`
}

func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	userID := queryUserID(r)
	criteria, err := parseCriteria(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := s.viewCacheKey(userID, criteria)
	statement, hit := s.statementCache.Get(key)
	if !hit {
		session, err := s.sessions.Session(r.Context(), userID)
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to load session", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "session load failed")
			return
		}
		statement = session.Statement(criteria)
		s.statementCache.Set(key, statement)
	}

	resp := statementResponse{
		Rows:        make([]statementRow, 0, len(statement.Rows)),
		WithBalance: statement.WithBalance,
	}
	for _, row := range statement.Rows {
		out := statementRow{
			Subcategory: row.Subcategory,
			AmountCents: row.Amount.Cents,
			Total:       row.Total,
		}
		if !row.Total {
			out.Date = row.Date.Key()
		}
		if statement.WithBalance {
			out.Category = row.Category
			balance := row.Balance.Cents
			out.BalanceCents = &balance
		}
		resp.Rows = append(resp.Rows, out)
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
