package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"fintrack/internal/core"
)

// defaultUserID backs requests that carry no user selector. The API has no
// login surface; callers identify themselves explicitly.
const defaultUserID int64 = 1

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func queryUserID(r *http.Request) int64 {
	raw := r.URL.Query().Get("user")
	if raw == "" {
		return defaultUserID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return defaultUserID
	}
	return id
}

// parseCriteria reads the view filter from query parameters. The type is
// mandatory: every filtered view selects exactly one transaction side.
func parseCriteria(r *http.Request) (core.Criteria, error) {
	q := r.URL.Query()

	typ := core.TransactionType(q.Get("type"))
	if !typ.Valid() {
		return core.Criteria{}, errors.New("type must be Income or Expense")
	}

	return core.Criteria{
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
		Type:        typ,
	}, nil
}

// Per-user cache generations. Bumping the generation on a mutation orphans
// every cached view for that user; the LRU evicts the stale entries.
type generations struct {
	mu   sync.Mutex
	byID map[int64]uint64
}

func (s *Server) viewCacheKey(userID int64, c core.Criteria) string {
	s.gens.mu.Lock()
	gen := s.gens.byID[userID]
	s.gens.mu.Unlock()
	return fmt.Sprintf("%d|%d|%s|%s|%s", userID, gen, c.Category, c.Subcategory, c.Type)
}

func (s *Server) bumpGeneration(userID int64) {
	s.gens.mu.Lock()
	s.gens.byID[userID]++
	s.gens.mu.Unlock()
}
