/*
Package registry implements the object registries which map opaque 32-bit
handles to live domain objects. There is one registry per object kind. Foreign
callers only ever hold the handles, the registry owns the objects.

Objects are stored in an arena of slots. A handle encodes the slot index and the
slot's generation, which means that a released handle cannot address a reused
slot. When a slot's generation is used up the slot is retired for good, so the
same handle value is never issued twice in the process lifetime.
*/
package registry

import (
	"fmt"
	"sync"

	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/golang/glog"
)

// Handle is an opaque object handle. Zero is never a valid handle.
type Handle = uint32

const (
	indexBits = 20
	indexMask = 1<<indexBits - 1
	maxGen    = 1<<(32-indexBits) - 1
)

// Releaser is implemented by objects which own resources outside the registry.
// ReleaseAll calls it for every entry.
type Releaser interface {
	Release() error
}

type slot[T any] struct {
	gen  uint32
	live bool
	obj  T
}

// Registry is a concurrency safe handle to object mapping.
type Registry[T any] struct {
	kind    errcode.Domain
	invalid errcode.Code

	l       sync.RWMutex
	slots   []slot[T]
	free    []uint32
	live    int
	retired int
}

// New creates an empty registry for the object kind. Lookups of unknown handles
// fail with the invalid code.
func New[T any](kind errcode.Domain, invalid errcode.Code) *Registry[T] {
	return &Registry[T]{kind: kind, invalid: invalid}
}

// Insert stores the object and returns its new handle. It panics only if the
// arena of the kind is full, i.e. 2^20-1 objects are live at the same time.
func (r *Registry[T]) Insert(obj T) Handle {
	r.l.Lock()
	defer r.l.Unlock()

	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		if len(r.slots) >= indexMask {
			panic(fmt.Sprintf("%s registry is full", r.kind))
		}
		r.slots = append(r.slots, slot[T]{})
		idx = uint32(len(r.slots) - 1)
	}
	s := &r.slots[idx]
	s.gen++
	s.live = true
	s.obj = obj
	r.live++

	return s.gen<<indexBits | (idx + 1)
}

// Get returns the object of the handle. A handle which is not issued or which is
// already released gives the kind's invalid handle error.
func (r *Registry[T]) Get(h Handle) (obj T, err error) {
	r.l.RLock()
	defer r.l.RUnlock()

	s := r.lookup(h)
	if s == nil {
		return obj, r.invalidHandle(h)
	}
	return s.obj, nil
}

// Release removes the object. Releasing the same handle again fails.
func (r *Registry[T]) Release(h Handle) error {
	_, err := r.take(h)
	return err
}

func (r *Registry[T]) take(h Handle) (obj T, err error) {
	r.l.Lock()
	defer r.l.Unlock()

	s := r.lookup(h)
	if s == nil {
		return obj, r.invalidHandle(h)
	}
	obj = s.obj
	var zero T
	s.obj = zero
	s.live = false
	r.live--

	idx := h&indexMask - 1
	if s.gen == maxGen {
		r.retired++
	} else {
		r.free = append(r.free, idx)
	}
	return obj, nil
}

func (r *Registry[T]) lookup(h Handle) *slot[T] {
	idx := h & indexMask
	if idx == 0 || int(idx) > len(r.slots) {
		return nil
	}
	s := &r.slots[idx-1]
	if !s.live || s.gen != h>>indexBits {
		return nil
	}
	return s
}

func (r *Registry[T]) invalidHandle(h Handle) *errcode.Error {
	return r.kind.New(r.invalid, "handle %d", h)
}

// Len returns the count of live objects.
func (r *Registry[T]) Len() int {
	r.l.RLock()
	defer r.l.RUnlock()
	return r.live
}

// Handles returns a snapshot of the live handles.
func (r *Registry[T]) Handles() []Handle {
	r.l.RLock()
	defer r.l.RUnlock()

	hs := make([]Handle, 0, r.live)
	for i := range r.slots {
		s := &r.slots[i]
		if s.live {
			hs = append(hs, s.gen<<indexBits|uint32(i+1))
		}
	}
	return hs
}

// ReleaseAllError is returned by ReleaseAll. It carries the first failure and
// the number of failed entries.
type ReleaseAllError struct {
	Kind   errcode.Domain
	First  error
	Failed int
}

func (e *ReleaseAllError) Error() string {
	return fmt.Sprintf("release all %s: %d failed, first: %v", e.Kind, e.Failed, e.First)
}

func (e *ReleaseAllError) Unwrap() error {
	return e.First
}

// ReleaseAll empties the registry. It doesn't stop to the first error but tries
// to release every entry. Objects implementing Releaser are released after they
// are removed from the registry.
func (r *Registry[T]) ReleaseAll() error {
	var rErr *ReleaseAllError
	for _, h := range r.Handles() {
		obj, err := r.take(h)
		if err != nil {
			continue // released meanwhile
		}
		if rel, ok := any(obj).(Releaser); ok {
			err = rel.Release()
		}
		if err != nil {
			if rErr == nil {
				rErr = &ReleaseAllError{Kind: r.kind, First: err}
			} else {
				glog.Warningln("release all", r.kind, "handle", h, "error:", err)
			}
			rErr.Failed++
		}
	}
	if rErr != nil {
		return rErr
	}
	return nil
}
