package hazardlist

import (
	"sync/atomic"

	"github.com/sulabhM/concurrent-ll/lockless"
)

// List is one head pointer plus a monotonic commit counter, bound to
// exactly one Domain. Lists sharing a domain share its reclamation
// guarantees but never their head pointers. The zero value is not usable;
// construct with NewList.
type List[T any] struct {
	head   lockless.Ptr[lockless.Node[T]]
	commit atomic.Uint64
	domain *Domain
	name   string
}

// ListOption configures a List at construction.
type ListOption func(*listConfig)

type listConfig struct {
	name string
}

// WithListName labels this list's Prometheus metrics (see metrics.go).
// Lists sharing a domain should use distinct names; the default is "list".
func WithListName(name string) ListOption {
	return func(c *listConfig) { c.name = name }
}

// NewList initializes a list bound to domain. The commit counter starts
// at 1, so the zero value of a snapshot is never mistaken for one
// actually taken.
func NewList[T any](domain *Domain, opts ...ListOption) (*List[T], error) {
	if domain == nil {
		return nil, ErrInvalid
	}
	cfg := listConfig{name: "list"}
	for _, opt := range opts {
		opt(&cfg)
	}
	l := &List[T]{domain: domain, name: cfg.name}
	l.commit.Store(1)
	return l, nil
}

// Destroy frees every remaining node, visible or not, invoking destructor
// on each one's element if destructor is non-nil. The list must be
// quiescent: no concurrent operation may be in flight.
func (l *List[T]) Destroy(destructor func(T)) {
	curr := l.head.Load()
	for curr != nil {
		next := curr.Next.Load()
		if destructor != nil {
			destructor(curr.Elm)
		}
		curr = next
	}
	l.head.Store(nil)
}
