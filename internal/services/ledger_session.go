package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fintrack/internal/core"
)

// LedgerSession holds one user's in-memory ledger, kept in step with the
// store on every mutation. View methods recompute from the current ledger
// contents, so they always reflect the latest Add/Remove.
type LedgerSession struct {
	mu     sync.Mutex
	userID int64
	ledger *core.Ledger
	svc    *TransactionService
}

func NewLedgerSession(userID int64, svc *TransactionService) *LedgerSession {
	return &LedgerSession{
		userID: userID,
		ledger: core.NewLedger(),
		svc:    svc,
	}
}

// Reload replaces the ledger contents with the stored transactions,
// preserving the store's date-then-insertion order.
func (s *LedgerSession) Reload(ctx context.Context) error {
	transactions, err := s.svc.ListTransactions(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("reload ledger for user %d: %w", s.userID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Clear()
	for _, t := range transactions {
		s.ledger.Add(t)
	}
	return nil
}

// Add persists the transaction and appends it to the ledger.
func (s *LedgerSession) Add(ctx context.Context, t core.Transaction) (int64, error) {
	t.UserID = s.userID
	id, err := s.svc.CreateTransaction(ctx, t)
	if err != nil {
		return 0, err
	}
	t.ID = id

	s.mu.Lock()
	s.ledger.Add(t)
	s.mu.Unlock()
	return id, nil
}

// Remove deletes the transaction from the store and the ledger. Returns
// false when the id is unknown; the ledger is left untouched in that case.
func (s *LedgerSession) Remove(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.svc.DeleteTransaction(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	s.mu.Lock()
	s.ledger.Remove(id)
	s.mu.Unlock()
	return true, nil
}

// Balance returns the ledger's cached gross balance.
func (s *LedgerSession) Balance() core.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Balance()
}

// Transactions returns the ledger contents in insertion order.
func (s *LedgerSession) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.All()
}

// Filtered returns the transactions matching the criteria.
func (s *LedgerSession) Filtered(c core.Criteria) []core.Transaction {
	return c.Apply(s.Transactions())
}

// ChartSeries aggregates the filtered transactions into a daily series.
func (s *LedgerSession) ChartSeries(c core.Criteria, now time.Time) core.DailySeries {
	return core.AggregateDaily(s.Filtered(c), now)
}

// Statement builds the running-balance table for the filtered view.
func (s *LedgerSession) Statement(c core.Criteria) core.Statement {
	return core.BuildStatement(s.Filtered(c), c.Narrowed())
}

// SessionManager hands out one LedgerSession per user, loading the ledger
// from the store on first use.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[int64]*LedgerSession
	svc      *TransactionService
}

func NewSessionManager(svc *TransactionService) *SessionManager {
	return &SessionManager{
		sessions: make(map[int64]*LedgerSession),
		svc:      svc,
	}
}

// Session returns the user's session, creating and loading it if needed.
func (m *SessionManager) Session(ctx context.Context, userID int64) (*LedgerSession, error) {
	m.mu.Lock()
	session, ok := m.sessions[userID]
	if !ok {
		session = NewLedgerSession(userID, m.svc)
		m.sessions[userID] = session
	}
	m.mu.Unlock()

	if !ok {
		if err := session.Reload(ctx); err != nil {
			m.mu.Lock()
			delete(m.sessions, userID)
			m.mu.Unlock()
			return nil, err
		}
	}
	return session, nil
}

// Invalidate drops the user's session so the next access reloads it.
func (m *SessionManager) Invalidate(userID int64) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
}
