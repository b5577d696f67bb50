package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket is a per-client token bucket
type TokenBucket struct {
	mu         sync.Mutex
	capacity   int
	tokens     int
	refillRate int // tokens por segundo
	lastRefill time.Time
	lastSeen   time.Time
	now        func() time.Time
}

// NewTokenBucket starts with a full bucket
func NewTokenBucket(capacity, refillRate int) *TokenBucket {
	return newTokenBucket(capacity, refillRate, time.Now)
}

func newTokenBucket(capacity, refillRate int, now func() time.Time) *TokenBucket {
	t := now()
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: t,
		lastSeen:   t,
		now:        now,
	}
}

// Allow consumes one token if available
func (tb *TokenBucket) Allow() bool {
	return tb.AllowN(1)
}

// AllowN consumes n tokens only if all of them are available
func (tb *TokenBucket) AllowN(n int) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	tb.lastSeen = tb.now()
	if tb.tokens >= n {
		tb.tokens -= n
		return true
	}
	return false
}

func (tb *TokenBucket) Tokens() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	return tb.tokens
}

// idleSince reports whether the bucket is full and unused since cutoff
func (tb *TokenBucket) idleSince(cutoff time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	return tb.tokens == tb.capacity && tb.lastSeen.Before(cutoff)
}

// refill must be called with lock held. lastRefill only advances by whole
// tokens so fractional progress is not lost between calls.
func (tb *TokenBucket) refill() {
	if tb.refillRate <= 0 {
		return
	}
	now := tb.now()
	elapsed := now.Sub(tb.lastRefill)
	tokensToAdd := int(elapsed.Seconds() * float64(tb.refillRate))
	if tokensToAdd <= 0 {
		return
	}

	tb.tokens += tokensToAdd
	if tb.tokens >= tb.capacity {
		tb.tokens = tb.capacity
		tb.lastRefill = now
		return
	}
	tb.lastRefill = tb.lastRefill.Add(time.Duration(tokensToAdd) * time.Second / time.Duration(tb.refillRate))
}

// RateLimiterCollection keeps one bucket per client id
type RateLimiterCollection struct {
	mu         sync.RWMutex
	buckets    map[string]*TokenBucket
	capacity   int
	refillRate int
	now        func() time.Time

	lastCleanup     time.Time
	cleanupInterval time.Duration
	idleTTL         time.Duration
}

func NewRateLimiterCollection(capacity, refillRate int) *RateLimiterCollection {
	return newRateLimiterCollection(capacity, refillRate, time.Now)
}

func newRateLimiterCollection(capacity, refillRate int, now func() time.Time) *RateLimiterCollection {
	return &RateLimiterCollection{
		buckets:         make(map[string]*TokenBucket),
		capacity:        capacity,
		refillRate:      refillRate,
		now:             now,
		lastCleanup:     now(),
		cleanupInterval: 10 * time.Minute,
		idleTTL:         30 * time.Minute,
	}
}

// Allow returns whether the client may proceed and the tokens left afterwards
func (rlc *RateLimiterCollection) Allow(clientID string) (bool, int) {
	bucket := rlc.getBucket(clientID)
	allowed := bucket.Allow()
	return allowed, bucket.Tokens()
}

func (rlc *RateLimiterCollection) Tokens(clientID string) int {
	return rlc.getBucket(clientID).Tokens()
}

// Clients returns the number of tracked clients
func (rlc *RateLimiterCollection) Clients() int {
	rlc.mu.RLock()
	defer rlc.mu.RUnlock()
	return len(rlc.buckets)
}

func (rlc *RateLimiterCollection) getBucket(clientID string) *TokenBucket {
	rlc.mu.RLock()
	bucket, exists := rlc.buckets[clientID]
	rlc.mu.RUnlock()
	if exists {
		return bucket
	}

	rlc.mu.Lock()
	defer rlc.mu.Unlock()

	// double-check
	if bucket, exists := rlc.buckets[clientID]; exists {
		return bucket
	}

	bucket = newTokenBucket(rlc.capacity, rlc.refillRate, rlc.now)
	rlc.buckets[clientID] = bucket
	rlc.maybeCleanup()
	return bucket
}

// maybeCleanup drops idle buckets. Must be called with write lock held.
func (rlc *RateLimiterCollection) maybeCleanup() {
	now := rlc.now()
	if now.Sub(rlc.lastCleanup) < rlc.cleanupInterval {
		return
	}

	cutoff := now.Add(-rlc.idleTTL)
	for clientID, bucket := range rlc.buckets {
		if bucket.idleSince(cutoff) {
			delete(rlc.buckets, clientID)
		}
	}
	rlc.lastCleanup = now
}

func (rlc *RateLimiterCollection) Stats() map[string]interface{} {
	rlc.mu.RLock()
	defer rlc.mu.RUnlock()

	return map[string]interface{}{
		"total_clients": len(rlc.buckets),
		"capacity":      rlc.capacity,
		"refill_rate":   rlc.refillRate,
	}
}
