package jwt

import (
	"sync"
	"time"
)

// RevocationRegistry tracks logged-out tokens until they would have expired
// anyway. It is read on every authenticated request and written on logout,
// concurrently from all request-handling goroutines.
type RevocationRegistry struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // token -> expiresAt
}

func NewRevocationRegistry() *RevocationRegistry {
	return &RevocationRegistry{
		revoked: make(map[string]time.Time),
	}
}

// Revoke records a token as logged out. expiresAt bounds how long the entry
// is kept; after that moment the token fails verification on its own.
func (r *RevocationRegistry) Revoke(token string, expiresAt time.Time) {
	r.mu.Lock()
	r.revoked[token] = expiresAt
	r.mu.Unlock()
}

// IsRevoked reports whether the token was revoked and has not yet expired.
func (r *RevocationRegistry) IsRevoked(token string) bool {
	r.mu.RLock()
	expiresAt, ok := r.revoked[token]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if time.Now().After(expiresAt) {
		// The token is past its own expiry; drop the stale entry lazily.
		r.mu.Lock()
		delete(r.revoked, token)
		r.mu.Unlock()
		return false
	}
	return true
}

// Prune evicts entries whose tokens expired before now. Called periodically
// so the registry stays bounded by one token lifetime of revocations.
func (r *RevocationRegistry) Prune(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for token, expiresAt := range r.revoked {
		if now.After(expiresAt) {
			delete(r.revoked, token)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked revocations.
func (r *RevocationRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.revoked)
}
