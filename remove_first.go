package hazardlist

import "github.com/sulabhM/concurrent-ll/lockless"

// RemoveFirst physically unlinks and frees the first visible node,
// returning its element. Unlike Remove, this consumes a version
// observation (a snapshot taken at entry) rather than bumping the commit
// counter — it does not create a new version, only observes existing
// ones.
func (l *List[T]) RemoveFirst(h *Handle) (T, error) {
	var zero T
	if l == nil {
		return zero, ErrInvalid
	}
	if !h.boundTo(l.domain) {
		return zero, ErrNoThread
	}

	snap := l.commit.Load()

	for {
		headVal := l.head.Load()
		if headVal == nil {
			return zero, ErrNotFound
		}

		acquireHazard(h, 0, headVal)
		if l.head.Load() != headVal {
			releaseHazard(h, 0)
			continue
		}

		if headVal.VisibleAt(snap) {
			next := headVal.Next.Load()
			if l.head.CompareAndSwap(headVal, next) {
				elm := headVal.Elm
				releaseHazard(h, 0)
				l.domain.metrics.removeFirsts.WithLabelValues(l.name).Inc()
				return elm, nil
			}
			releaseHazard(h, 0)
			continue
		}

		elm, found, casFailed := l.removeFirstVisibleAfter(h, headVal, snap)
		releaseAllHazards(h)
		if casFailed {
			continue
		}
		if !found {
			return zero, ErrNotFound
		}
		l.domain.metrics.removeFirsts.WithLabelValues(l.name).Inc()
		return elm, nil
	}
}

// removeFirstVisibleAfter walks forward from prev (already known not
// visible at snap), hazarding curr in slot 1 while keeping prev hazarded
// in slot 0, looking for the first node visible at snap. On success it
// CASes prev.Next from curr to curr.Next and returns the removed element.
func (l *List[T]) removeFirstVisibleAfter(h *Handle, prev *lockless.Node[T], snap uint64) (elm T, found, casFailed bool) {
	curr := prev.Next.Load()

	for curr != nil {
		acquireHazard(h, 1, curr)

		if curr.VisibleAt(snap) {
			next := curr.Next.Load()
			if prev.Next.CompareAndSwap(curr, next) {
				return curr.Elm, true, false
			}
			return elm, false, true
		}

		prev = curr
		acquireHazard(h, 0, prev)
		curr = curr.Next.Load()
	}

	return elm, false, false
}
