package hazardlist

import (
	"unsafe"

	"github.com/sulabhM/concurrent-ll/lockless"
)

// acquireHazard publishes p into h's hazard cell at slot, with release
// ordering — the canonical "load a candidate, then announce it" half of
// the hazard-pointer protocol. Any code path that reads a node beyond its
// Next pointer must have called this, and validated the result (see
// below), first.
func acquireHazard[T any](h *Handle, slot int, p *lockless.Node[T]) {
	h.state.hazard[slot].Acquire(unsafe.Pointer(p))
}

// releaseHazard clears h's hazard cell at slot.
func releaseHazard(h *Handle, slot int) {
	h.state.hazard[slot].Release()
}

// releaseAllHazards clears every hazard cell h owns.
func releaseAllHazards(h *Handle) {
	for i := range h.state.hazard {
		h.state.hazard[i].Release()
	}
}

// anyHPEquals scans every thread slot in the domain for a hazard cell
// equal to addr. The scan is racy with concurrent acquires by design: if
// it returns false, no thread could subsequently acquire addr validly,
// because the reclaimer only calls this after addr is already unreachable
// from every list head it could have been published from.
func (d *Domain) anyHPEquals(addr unsafe.Pointer) bool {
	if addr == nil {
		return false
	}
	found := false
	d.forEachThread(func(st *threadState) {
		if found {
			return
		}
		for i := range st.hazard {
			if st.hazard[i].Load() == addr {
				found = true
				return
			}
		}
	})
	return found
}

// minActiveSnapshot returns the minimum non-zero active_snapshot value
// across the domain, or math.MaxUint64 if no thread has an active
// snapshot. Reclaim must not unlink a logically-removed node whose
// removed_txn is not strictly below this value.
func (d *Domain) minActiveSnapshot() uint64 {
	const maxUint64 = ^uint64(0)
	min := maxUint64
	d.forEachThread(func(st *threadState) {
		if v := st.activeSnapshot.Load(); v != 0 && v < min {
			min = v
		}
	})
	return min
}
