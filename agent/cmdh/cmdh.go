// Package cmdh allocates command handles. A command handle correlates one
// asynchronous request with its single completion. It carries no object
// identity.
package cmdh

import "sync/atomic"

// Handle is a command handle.
type Handle = uint32

// Allocator issues distinct command handles. The zero value is ready to use.
type Allocator struct {
	last atomic.Uint32
}

// Next returns a handle no other call of the same Allocator returns until the
// 32-bit counter wraps. Zero is never returned.
func (a *Allocator) Next() Handle {
	for {
		if h := a.last.Add(1); h != 0 {
			return h
		}
	}
}

var std Allocator

// Next returns the next handle of the process default allocator.
func Next() Handle {
	return std.Next()
}
