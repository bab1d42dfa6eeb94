// Package http exposes the ledger as a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
)

type Server struct {
	http.Server
	sessions    *services.SessionManager
	rateLimiter *ratelimit.Limiter

	// Computed views are cached per user and criteria; mutations invalidate.
	chartCache     *cache.LRUCache[core.DailySeries]
	statementCache *cache.LRUCache[core.Statement]
	cacheManager   *cache.Manager
	gens           generations

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, sessions *services.SessionManager) *Server {
	mux := http.NewServeMux()

	chartCache := cache.NewLRU[core.DailySeries](200, 5*time.Minute)
	statementCache := cache.NewLRU[core.Statement](200, 5*time.Minute)
	manager := cache.NewManager()
	manager.Register(chartCache)
	manager.Register(statementCache)
	manager.StartCleanup(10 * time.Minute)

	s := &Server{
		sessions:       sessions,
		rateLimiter:    ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		chartCache:     chartCache,
		statementCache: statementCache,
		cacheManager:   manager,
		gens:           generations{byID: make(map[int64]uint64)},
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	mux.HandleFunc("POST /transactions", s.handleCreateTransaction)
	mux.HandleFunc("DELETE /transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("GET /transactions", s.handleListTransactions)
	mux.HandleFunc("GET /views/chart", s.handleChart)
	mux.HandleFunc("GET /views/statement", s.handleStatement)

	var handler http.Handler = mux
	handler = s.withRateLimit(handler)
	handler = security.Headers(security.DefaultHeadersConfig(), handler)
	handler = trace.Middleware(clientAddr, handler)

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}
	return s
}

// Shutdown stops the HTTP server and the cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// withRateLimit throttles mutating requests per client address.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if mutating(r.Method) {
			clientIP := clientAddr(r)
			if !s.rateLimiter.Allow(clientIP) {
				slog.WarnContext(r.Context(), "Rate limit exceeded",
					"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func mutating(method string) bool {
	return method == http.MethodPost || method == http.MethodDelete
}

func clientAddr(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
