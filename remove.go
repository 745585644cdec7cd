package hazardlist

import "github.com/sulabhM/concurrent-ll/lockless"

// Remove logically removes the first node, not already logically removed,
// whose element matches elm under eq. The node stays linked; txn is stamped into its removed field via a
// release-store so concurrent readers holding an older snapshot keep
// seeing it. Physical unlinking happens later, in Reclaim.
//
// Validation here is a coarse O(n) re-scan from head: after publishing
// curr to the hazard cell, re-walk from head to confirm curr is still
// reachable before trusting anything read from it. This is simpler to
// prove correct than a per-step CAS-based validation, and adequate
// because Remove is not on the read-hot path.
func (l *List[T]) Remove(h *Handle, elm T, eq func(a, b T) bool) error {
	if l == nil || eq == nil {
		return ErrInvalid
	}
	if !h.boundTo(l.domain) {
		return ErrNoThread
	}

	txn := l.commit.Add(1) - 1
	curr := l.head.Load()

	for curr != nil {
		acquireHazard(h, 0, curr)

		if !l.reachableFromHead(curr) {
			releaseHazard(h, 0)
			curr = l.head.Load()
			continue
		}

		if eq(curr.Elm, elm) && curr.RemovedTxn.CompareAndSwap(0, txn) {
			releaseHazard(h, 0)
			l.domain.metrics.removes.WithLabelValues(l.name).Inc()
			return nil
		}

		next := curr.Next.Load()
		releaseHazard(h, 0)
		curr = next
	}

	return ErrNotFound
}

// reachableFromHead reports whether target is still on the chain rooted
// at the list's current head. Used to validate a hazarded pointer after
// the fact, since the chain may have mutated between the load that
// produced target and the hazard publish.
func (l *List[T]) reachableFromHead(target *lockless.Node[T]) bool {
	scan := l.head.Load()
	for scan != nil {
		if scan == target {
			return true
		}
		scan = scan.Next.Load()
	}
	return false
}
