package server

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/hemahemapathi/health-management-client/users"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// ContextKeyUserID stores the authenticated user ID.
	ContextKeyUserID ContextKey = "user_id"
	// ContextKeyRole stores the authenticated user's role.
	ContextKeyRole ContextKey = "role"
)

// UserIDFromContext returns the authenticated user ID set by requireAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextKeyUserID).(string)
	return id, ok
}

// RoleFromContext returns the authenticated role set by requireAuth.
func RoleFromContext(ctx context.Context) (users.RoleType, bool) {
	role, ok := ctx.Value(ContextKeyRole).(users.RoleType)
	return role, ok
}

// requireAuth validates the bearer token and stashes the caller's identity
// in the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeFailure(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		userID, role, err := s.tokens.verify(strings.TrimSpace(header[7:]))
		if err != nil {
			writeFailure(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUserID, userID)
		ctx = context.WithValue(ctx, ContextKeyRole, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole guards a subtree to one role. Must sit inside requireAuth.
func (s *Server) requireRole(allowed users.RoleType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok || role != allowed {
				writeFailure(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// authRateLimiter throttles credential endpoints per client IP.
type authRateLimiter struct {
	rpm      int
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newAuthRateLimiter(rpm int) *authRateLimiter {
	return &authRateLimiter{rpm: rpm, limiters: make(map[string]*rate.Limiter)}
}

func (l *authRateLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(float64(l.rpm)/60.0), l.rpm)
		l.limiters[ip] = limiter
	}
	return limiter
}

func (l *authRateLimiter) handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.limiterFor(clientIP(r)).Allow() {
			w.Header().Set("Retry-After", "60")
			writeFailure(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// requestLogger logs each request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
