package hazardlist

import "github.com/sulabhM/concurrent-ll/lockless"

// InsertHead allocates a node for elm and links it at the head of the
// list. The commit counter is bumped only after allocation succeeds: a
// failed allocation never opens a gap in the version sequence. No hazard
// pointer is needed here — the node is unreachable until the head CAS
// succeeds, so no other thread can observe it first.
func (l *List[T]) InsertHead(h *Handle, elm T) error {
	if l == nil {
		return ErrInvalid
	}
	if !h.boundTo(l.domain) {
		return ErrNoThread
	}

	node := lockless.NewNode[T](elm, 0)
	node.InsertTxn = l.commit.Add(1) - 1

	for {
		old := l.head.Load()
		node.Next.Store(old)
		if l.head.CompareAndSwap(old, node) {
			l.domain.metrics.inserts.WithLabelValues(l.name).Inc()
			return nil
		}
	}
}
