package ingest

import "sync/atomic"

// Lock lets at most one ingest run at a time without blocking callers
type Lock struct {
	held atomic.Bool
}

// TryAcquire takes the lock and reports whether it succeeded
func (l *Lock) TryAcquire() bool {
	return l.held.CompareAndSwap(false, true)
}

// Release frees the lock. Only the holder may call it.
func (l *Lock) Release() {
	l.held.Store(false)
}
