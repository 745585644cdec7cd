// Package lockless provides the low-level pointer plumbing shared by the
// hazardlist core: a generic node type, a GC-safe atomic pointer for
// same-type links, and a type-erased hazard cell for hazard pointers
// shared across lists of different element types.
package lockless

import (
	"sync/atomic"
	"unsafe"
)

// Ptr is an atomic pointer-or-nil to a T, built on atomic.Pointer[T] so
// the garbage collector keeps tracing — and therefore keeps alive — the
// node it points to for as long as it is reachable through this field.
// A uintptr cannot do this: the runtime only traces words it recognizes
// as pointers, and a node reachable solely through a packed uintptr is
// free to be collected out from under a concurrent hazard pointer or
// reader.
//
// Ptr also carries a reserved mark bit for a future Harris-style
// marked-pointer upgrade, kept in a side-channel atomic.Bool rather than
// packed into the address. Stealing the pointer's low bit, the way the
// original C implementation's atomic_uintptr_t does, would hand the
// collector a corrupted address instead.
type Ptr[T any] struct {
	p    atomic.Pointer[T]
	mark atomic.Bool
}

// Load reads the pointer with acquire semantics.
func (p *Ptr[T]) Load() *T { return p.p.Load() }

// Store writes the pointer with release semantics.
func (p *Ptr[T]) Store(v *T) { p.p.Store(v) }

// CompareAndSwap atomically swaps old for new.
func (p *Ptr[T]) CompareAndSwap(old, new *T) bool { //nolint:predeclared
	return p.p.CompareAndSwap(old, new)
}

// Marked reports the reserved mark bit's current value. Always false:
// nothing in this package sets it.
func (p *Ptr[T]) Marked() bool { return p.mark.Load() }

// Hazard is a single published hazard-pointer cell. Unlike Ptr, it must
// be type-erased — one Domain's hazard cells are shared by lists of
// possibly different element types — so it cannot be an
// atomic.Pointer[T] for a fixed T. It is backed directly by
// unsafe.Pointer and the classic atomic.StorePointer/LoadPointer pair,
// the same idiom the retrieved corpus uses for its own type-erased
// atomic fields (e.g. pingcap's badger, shard.go's
// shardingChangeFiles.levels, stored as []unsafe.Pointer and accessed
// through atomic.StorePointer/LoadPointer) rather than a uintptr: the
// field's static type keeps the collector aware it is a live pointer for
// exactly as long as it is hazarded.
type Hazard struct {
	addr unsafe.Pointer
}

// Acquire publishes p into h with release ordering — the "announce a
// candidate" half of the hazard-pointer protocol.
func (h *Hazard) Acquire(p unsafe.Pointer) {
	atomic.StorePointer(&h.addr, p)
}

// Release clears h with release ordering.
func (h *Hazard) Release() {
	atomic.StorePointer(&h.addr, nil)
}

// Load reads h's currently published address with acquire ordering.
func (h *Hazard) Load() unsafe.Pointer {
	return atomic.LoadPointer(&h.addr)
}

// Addr returns the type-erased, GC-traced address of p, for comparing
// against a Hazard cell or for storing in a retired-list entry shared
// across lists of different element types.
func Addr[T any](p *T) unsafe.Pointer {
	return unsafe.Pointer(p)
}
