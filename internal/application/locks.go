package application

import (
	"codeberg.org/gruf/go-mutexes"
)

// OwnerLocks serializes mutations of one owner's blog graph so that duplicate
// slug checks and the following write are not interleaved. Blog and article
// services must share one instance.
type OwnerLocks struct {
	mm *mutexes.MutexMap
}

func NewOwnerLocks() *OwnerLocks {
	return &OwnerLocks{mm: &mutexes.MutexMap{}}
}

// Lock blocks until the owner's graph is free and returns the unlock func.
func (l *OwnerLocks) Lock(userID string) func() {
	return l.mm.Lock("owner:" + userID)
}
