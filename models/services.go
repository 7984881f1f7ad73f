// fightclub/models/services.go
package models

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// --- Stateful Services ---

type RateLimiter struct {
	Mu       sync.RWMutex
	Limiters map[string]*rate.Limiter
	LastSeen map[string]time.Time

	every  time.Duration
	burst  int
	expire time.Duration
}

// NewRateLimiter creates a per-IP rate limiter and starts its pruning loop.
func NewRateLimiter(every time.Duration, burst int, prune, expire time.Duration) *RateLimiter {
	rl := &RateLimiter{
		Limiters: make(map[string]*rate.Limiter),
		LastSeen: make(map[string]time.Time),
		every:    every,
		burst:    burst,
		expire:   expire,
	}
	go rl.cleanup(prune)
	return rl
}

// GetLimiter retrieves or creates a rate limiter for a given IP address.
func (rl *RateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.Mu.Lock()
	defer rl.Mu.Unlock()
	limiter, exists := rl.Limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(rl.every), rl.burst)
		rl.Limiters[ip] = limiter
	}
	rl.LastSeen[ip] = time.Now()
	return limiter
}

// cleanup periodically removes stale entries from the limiter maps.
func (rl *RateLimiter) cleanup(prune time.Duration) {
	for range time.Tick(prune) {
		rl.Mu.Lock()
		cutoff := time.Now().Add(-rl.expire)
		for ip, lastSeen := range rl.LastSeen {
			if lastSeen.Before(cutoff) {
				delete(rl.Limiters, ip)
				delete(rl.LastSeen, ip)
			}
		}
		rl.Mu.Unlock()
	}
}

// TokenDenylist revokes tokens before their natural expiry. Verification is
// otherwise stateless, so logout records the token id here until the token
// would have expired anyway.
type TokenDenylist struct {
	Mu      sync.RWMutex
	Revoked map[string]time.Time
}

func NewTokenDenylist() *TokenDenylist {
	return &TokenDenylist{Revoked: make(map[string]time.Time)}
}

// Revoke marks a token id as invalid until its expiry time.
func (dl *TokenDenylist) Revoke(tokenID string, expiresAt time.Time) {
	if tokenID == "" {
		return
	}
	dl.Mu.Lock()
	dl.Revoked[tokenID] = expiresAt
	dl.Mu.Unlock()

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	time.AfterFunc(ttl, func() {
		dl.Mu.Lock()
		delete(dl.Revoked, tokenID)
		dl.Mu.Unlock()
	})
}

// IsRevoked reports whether a token id has been revoked and is still inside
// its original lifetime.
func (dl *TokenDenylist) IsRevoked(tokenID string) bool {
	dl.Mu.RLock()
	expiresAt, exists := dl.Revoked[tokenID]
	dl.Mu.RUnlock()
	return exists && time.Now().Before(expiresAt)
}
