package hazardlist

import "github.com/sulabhM/concurrent-ll/lockless"

// Iterator provides a snapshot-consistent traversal of a List. It is
// single-threaded with respect to itself: only the goroutine that called
// Begin may call Next or End. Construct with List.Begin.
type Iterator[T any] struct {
	list    *List[T]
	handle  *Handle
	snap    uint64
	current *lockless.Node[T]
}

// Begin samples the list's commit counter and registers that snapshot as
// h's active snapshot, which blocks Reclaim from unlinking any node
// logically removed at or after this snapshot until End is called.
func (l *List[T]) Begin(h *Handle) (*Iterator[T], error) {
	if l == nil {
		return nil, ErrInvalid
	}
	if !h.boundTo(l.domain) {
		return nil, ErrNoThread
	}

	snap := l.commit.Load()
	h.state.activeSnapshot.Store(snap)
	return &Iterator[T]{list: l, handle: h, snap: snap}, nil
}

// Next returns the next element visible at the iterator's snapshot, and
// true, or the zero value and false once the traversal is exhausted.
func (it *Iterator[T]) Next() (T, bool) {
	var zero T
	if it == nil || it.list == nil {
		return zero, false
	}

	var curr *lockless.Node[T]
	if it.current == nil {
		curr = it.list.head.Load()
	} else {
		curr = it.current.Next.Load()
	}

	for curr != nil {
		acquireHazard(it.handle, 0, curr)

		if curr.VisibleAt(it.snap) {
			it.current = curr
			releaseHazard(it.handle, 0)
			return curr.Elm, true
		}

		next := curr.Next.Load()
		releaseHazard(it.handle, 0)
		curr = next
	}

	it.current = nil
	return zero, false
}

// End releases the iterator's active snapshot, allowing Reclaim to unlink
// nodes this iterator could otherwise still observe, and clears the
// iterator. Calling End more than once, or on one already ended, is safe.
func (it *Iterator[T]) End() {
	if it == nil {
		return
	}
	if it.handle != nil {
		it.handle.state.activeSnapshot.Store(0)
	}
	it.list = nil
	it.handle = nil
	it.current = nil
	it.snap = 0
}

// Snapshot returns the commit value this iterator captured at Begin, or
// 0 for a nil iterator.
func (it *Iterator[T]) Snapshot() uint64 {
	if it == nil {
		return 0
	}
	return it.snap
}
