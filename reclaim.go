package hazardlist

import "github.com/sulabhM/concurrent-ll/lockless"

// Reclaim runs the list's two-phase safe-memory-reclamation sweep. Phase
// one walks the list once, CAS-unlinking every logically removed node
// whose removed_txn is older than every thread's active snapshot, and
// pushes each onto the calling thread's retired stack. Phase two drains
// that stack, freeing whatever no thread's hazard cell still points at
// and leaving the rest for a later call.
//
// Reclaim may be called by any registered thread at any time; it never
// blocks on another thread's progress beyond the ordinary hazard-scan and
// CAS retries below. A nil list, or a handle not registered with the
// list's domain, makes Reclaim a no-op — there is nothing to report back
// (no return value), matching IsEmpty/Contains/Count's precedent for
// operations that have no failure mode worth surfacing to the caller.
func (l *List[T]) Reclaim(h *Handle, destructor func(T)) {
	if l == nil || !h.boundTo(l.domain) {
		return
	}

	l.unlinkReclaimable(h, destructor)
	l.freeRetired(h)
}

// unlinkReclaimable walks the list once from head, CAS-unlinking every
// node whose removed_txn is non-zero and strictly below the domain's
// current minimum active snapshot (the version gate), and pushing each
// onto h's retired stack. Losing an unlink CAS means some other thread
// mutated this same link first; unlinkReclaimable re-reads the successor
// and continues rather than retrying the same node.
func (l *List[T]) unlinkReclaimable(h *Handle, destructor func(T)) {
	minActive := l.domain.minActiveSnapshot()

	var prev *lockless.Node[T]
	curr := l.head.Load()

	for curr != nil {
		acquireHazard(h, 0, curr)
		removedTxn := curr.RemovedTxn.Load()
		next := curr.Next.Load()

		if removedTxn == 0 || removedTxn >= minActive {
			releaseHazard(h, 0)
			prev = curr
			curr = next
			continue
		}

		var unlinked bool
		if prev == nil {
			unlinked = l.head.CompareAndSwap(curr, next)
		} else {
			unlinked = prev.Next.CompareAndSwap(curr, next)
		}
		releaseHazard(h, 0)

		if unlinked {
			l.retire(h, curr, destructor)
		}

		if prev == nil {
			curr = l.head.Load()
		} else {
			curr = prev.Next.Load()
		}
	}
}

// retire pushes node onto h's thread-local retired stack as a type-erased
// entry: its address, for the pointer-gate scan in freeRetired, and a
// closure over its element and destructor, so the entry can be freed by
// code that no longer knows T. Retiring bumps the retired-pending gauge
// for l's name; freeRetired decrements it once the entry is freed.
func (l *List[T]) retire(h *Handle, node *lockless.Node[T], destructor func(T)) {
	elm := node.Elm
	entry := &retiredEntry{
		addr:     lockless.Addr(node),
		listName: l.name,
		free: func() {
			if destructor != nil {
				destructor(elm)
			}
		},
	}
	entry.next = h.state.retired
	h.state.retired = entry
	l.domain.metrics.retiredPending.WithLabelValues(l.name).Inc()
}

// freeRetired drains h's retired stack, freeing every entry whose address
// no thread's hazard cell still equals (the pointer gate), and re-pushing
// the rest for a later Reclaim call. An entry retired from a sibling list
// sharing the same domain is freed using its own captured destructor, not
// l's — only its metrics label is resolved through l.domain, since the
// domain, not the list, owns the retired stack's metrics.
func (l *List[T]) freeRetired(h *Handle) {
	var stillHeld *retiredEntry
	entry := h.state.retired
	h.state.retired = nil

	for entry != nil {
		next := entry.next
		if l.domain.anyHPEquals(entry.addr) {
			entry.next = stillHeld
			stillHeld = entry
			entry = next
			continue
		}

		entry.free()
		l.domain.metrics.retiredPending.WithLabelValues(entry.listName).Dec()
		l.domain.metrics.reclaimed.WithLabelValues(entry.listName).Inc()
		entry = next
	}

	h.state.retired = stillHeld
}
