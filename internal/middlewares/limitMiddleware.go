package middlewares

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"petlove/internal/utils"
)

const (
	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per authenticated user and per client IP.
type RateLimiter struct {
	rps       rate.Limit
	burst     int
	jwtSecret string

	mu           sync.Mutex
	ipVisitors   map[string]*visitor
	userVisitors map[string]*visitor
}

// NewRateLimiter builds a limiter. Requests carrying a bearer token signed
// with jwtSecret are limited per user instead of per IP.
func NewRateLimiter(rps float64, burst int, jwtSecret string) *RateLimiter {
	return &RateLimiter{
		rps:          rate.Limit(rps),
		burst:        burst,
		jwtSecret:    jwtSecret,
		ipVisitors:   make(map[string]*visitor),
		userVisitors: make(map[string]*visitor),
	}
}

func (rl *RateLimiter) getLimiter(key string, isUser bool) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	visitors := rl.ipVisitors
	if isUser {
		visitors = rl.userVisitors
	}

	v, exists := visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		visitors[key] = v
	}
	v.lastSeen = time.Now()

	return v.limiter
}

func (rl *RateLimiter) evict(olderThan time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, v := range rl.ipVisitors {
		if time.Since(v.lastSeen) > olderThan {
			delete(rl.ipVisitors, ip)
		}
	}
	for userID, v := range rl.userVisitors {
		if time.Since(v.lastSeen) > olderThan {
			delete(rl.userVisitors, userID)
		}
	}
}

// CleanupVisitors drops idle visitors every minute until ctx is done.
func (rl *RateLimiter) CleanupVisitors(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evict(visitorTTL)
		}
	}
}

func (rl *RateLimiter) userKey(r *http.Request) (string, bool) {
	if userID, ok := utils.UserIDFromContext(r.Context()); ok {
		return userID.Hex(), true
	}
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || rl.jwtSecret == "" {
		return "", false
	}
	userID, err := utils.ParseJWT(strings.TrimSpace(token), rl.jwtSecret)
	if err != nil {
		return "", false
	}
	return userID.Hex(), true
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var limiter *rate.Limiter

		if userID, ok := rl.userKey(r); ok {
			limiter = rl.getLimiter(userID, true)
		} else {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			limiter = rl.getLimiter(ip, false)
		}

		if !limiter.Allow() {
			utils.RateLimitedRequestsTotal.Inc()
			log.Warn().Str("remote_addr", r.RemoteAddr).Str("path", r.URL.Path).Msg("Rate limit exceeded")
			utils.SendJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
