package async

import "sync/atomic"

// Slot is a completion slot which can be consumed only once. It's used to
// guarantee that a foreign callback is called exactly once even when several
// code paths race to complete the same request.
type Slot[R any] struct {
	done atomic.Bool
	fn   func(R)
}

func NewSlot[R any](fn func(R)) *Slot[R] {
	return &Slot[R]{fn: fn}
}

// Complete calls the slot's function with r if the slot is not yet consumed.
// It reports whether this call consumed the slot.
func (s *Slot[R]) Complete(r R) bool {
	if !s.done.CompareAndSwap(false, true) {
		return false
	}
	s.fn(r)
	return true
}

// Done tells if the slot is consumed.
func (s *Slot[R]) Done() bool {
	return s.done.Load()
}
