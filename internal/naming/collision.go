package naming

import (
	"sync"
)

// CollisionResolver tracks destination paths claimed by source files within
// a single run. The first source to claim a destination owns it; later
// claimants are refused so an earlier output is never overwritten. All
// methods are goroutine-safe.
type CollisionResolver struct {
	mu     sync.Mutex
	owners map[string]string // destination path → source path that owns it
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{owners: make(map[string]string)}
}

// Claim registers src as the owner of dest. It returns the current owner and
// true when src now owns dest (or already did); otherwise it returns the
// other owner and false.
func (cr *CollisionResolver) Claim(src, dest string) (string, bool) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	owner, exists := cr.owners[dest]
	if !exists || owner == src {
		cr.owners[dest] = src
		return src, true
	}
	return owner, false
}

// Reset forgets every claim.
func (cr *CollisionResolver) Reset() {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.owners = make(map[string]string)
}
