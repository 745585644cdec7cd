package hazardlist

import (
	"log/slog"
	"sync/atomic"
	"unsafe"

	"github.com/google/uuid"

	"github.com/sulabhM/concurrent-ll/lockless"
)

const (
	defaultDomainCapacity = 16
	hazardSlotsPerThread  = 2
)

// retiredEntry is one unlinked-but-not-yet-freed node. It is type-erased
// (addr + a closure) so a single domain's per-thread retired stack can
// hold entries unlinked from lists of different element types. addr is
// an ordinary unsafe.Pointer field, not a uintptr: the garbage collector
// traces it like any other pointer, so the node it names is kept alive
// for as long as this entry (reachable from the thread's retired stack)
// exists, exactly as long as the pointer-gate scan in freeRetired needs
// it to be.
type retiredEntry struct {
	addr     unsafe.Pointer
	free     func() // frees the node and invokes its destructor, exactly once
	listName string // label for the metrics this entry was retired under
	next     *retiredEntry
}

// threadState is one domain slot: two hazard cells (prev/curr during a
// two-step traversal), an active-snapshot gate for iterators, a
// thread-local retired stack, and an in-use flag for slot reuse.
//
// retired is mutated only by the handle that owns this slot; everything
// else here is read by any thread doing a hazard scan or a min-snapshot
// pass, so those fields are atomic. hazard cells use lockless.Hazard, not
// a raw uintptr, so the collector keeps tracing whatever node is
// currently hazarded.
type threadState struct {
	hazard         [hazardSlotsPerThread]lockless.Hazard
	activeSnapshot atomic.Uint64
	retired        *retiredEntry
	inUse          atomic.Bool
}

// domainSlots is the domain's growable thread-state table. A domain only
// ever replaces this with a strictly larger one (see Domain.grow); a
// goroutine that has loaded a *domainSlots may keep using it for any
// index below its own len.
type domainSlots struct {
	cells []atomic.Pointer[threadState]
}

// Handle is the caller's explicit binding to a Domain, returned by
// Domain.Register. Goroutines have no safe thread-local storage, so every
// operation that needs per-caller reclamation state takes a Handle
// explicitly instead of looking one up implicitly — see DESIGN.md. A
// Handle must not be used concurrently from more than one goroutine.
type Handle struct {
	domain *Domain
	state  *threadState
}

// boundTo reports whether h is a live, non-nil handle registered with d.
func (h *Handle) boundTo(d *Domain) bool {
	return h != nil && h.domain == d && h.state != nil
}

// Domain is a process-scoped registry of per-thread reclamation state,
// shared by any number of Lists. Create one with NewDomain.
type Domain struct {
	id      uuid.UUID
	log     *slog.Logger
	metrics *domainMetrics

	slots    atomic.Pointer[domainSlots]
	count    atomic.Uint64 // next slot index to hand out via fetch-add
	resizing atomic.Bool   // spin test-and-set latch guarding grow
}

// DomainOption configures a Domain at construction.
type DomainOption func(*Domain, *domainConfig)

type domainConfig struct {
	initialCapacity int
}

// WithInitialCapacity sets the domain's initial thread-table capacity.
// Values below 1 fall back to the default of 16.
func WithInitialCapacity(n int) DomainOption {
	return func(_ *Domain, c *domainConfig) { c.initialCapacity = n }
}

// WithLogger sets the *slog.Logger used for domain diagnostics (thread
// registration failures, table growth). Defaults to slog.Default().
func WithLogger(l *slog.Logger) DomainOption {
	return func(d *Domain, _ *domainConfig) { d.log = l }
}

// WithMetrics enables Prometheus metrics for this domain, registered
// under the given registerer. A nil registerer (the default) disables
// metrics entirely; no operation's behavior depends on whether metrics
// are enabled.
func WithMetrics(reg prometheusRegisterer) DomainOption {
	return func(d *Domain, _ *domainConfig) { d.metrics = newDomainMetrics(reg) }
}

// NewDomain creates a domain with a thread table of at least 16 slots
// (or WithInitialCapacity's value). It never fails on argument grounds,
// and in this implementation it cannot fail at all: Go's runtime panics
// rather than returning an error when a slice allocation cannot be
// satisfied, so there is no allocation-failure path for NewDomain or
// grow to surface as ErrNoMem the way spec.md's create()/grow() do. The
// error return is kept — and Register/grow still have one to return —
// so the signature matches spec.md's create() → domain | NOMEM and
// leaves room for a future bounded allocator that can fail without a
// panic.
func NewDomain(opts ...DomainOption) (*Domain, error) {
	cfg := domainConfig{initialCapacity: defaultDomainCapacity}
	d := &Domain{id: uuid.New(), log: slog.Default()}
	for _, opt := range opts {
		opt(d, &cfg)
	}
	if cfg.initialCapacity < 1 {
		cfg.initialCapacity = defaultDomainCapacity
	}
	if d.metrics == nil {
		d.metrics = newDomainMetrics(nil)
	}

	slots := &domainSlots{cells: make([]atomic.Pointer[threadState], cfg.initialCapacity)}
	d.slots.Store(slots)

	d.log.Debug("domain created", "domain", d.id, "capacity", cfg.initialCapacity)
	return d, nil
}

// ID returns the domain's debug-correlation identifier. Never consulted
// by any operation's control flow.
func (d *Domain) ID() uuid.UUID { return d.id }

func (d *Domain) String() string { return "domain(" + d.id.String() + ")" }

// Close drains every thread slot's retired entries, invoking each one's
// captured destructor exactly once.
//
// Close is the caller's obligation to call only once every list sharing
// this domain has been destroyed and every thread has unregistered; Close
// does not check this.
func (d *Domain) Close() {
	slots := d.slots.Load()
	if slots == nil {
		return
	}
	for i := range slots.cells {
		st := slots.cells[i].Load()
		if st == nil {
			continue
		}
		for e := st.retired; e != nil; {
			next := e.next
			e.free()
			e = next
		}
		st.retired = nil
	}
}

// Register binds the calling goroutine to the domain, returning a Handle
// that must be passed to every subsequent operation that requires one.
// It first scans existing slots for one whose in-use flag is clear and
// claims it via compare-and-swap; failing that, it reserves a fresh
// index with fetch-add and grows the table if needed.
func (d *Domain) Register() (*Handle, error) {
	if d == nil {
		return nil, ErrInvalid
	}

	slots := d.slots.Load()
	for i := range slots.cells {
		st := slots.cells[i].Load()
		if st == nil {
			continue
		}
		if st.inUse.CompareAndSwap(false, true) {
			d.metrics.threadsRegistered.Inc()
			return &Handle{domain: d, state: st}, nil
		}
	}

	idx := d.count.Add(1) - 1
	if idx >= uint64(len(slots.cells)) {
		if err := d.grow(idx + 1); err != nil {
			d.count.Add(^uint64(0)) // undo the fetch-add
			d.log.Debug("domain register failed", "domain", d.id, "err", err)
			return nil, err
		}
		slots = d.slots.Load()
	}

	st := &threadState{}
	st.inUse.Store(true)
	slots.cells[idx].Store(st)
	d.metrics.threadsRegistered.Inc()
	return &Handle{domain: d, state: st}, nil
}

// Unregister clears h's hazard cells and active snapshot, frees its slot
// for reuse, and detaches h from the domain. It is idempotent: calling it
// again, or on a nil/already-unregistered handle, is a no-op. h's retired
// list is left attached to the slot — the next thread to claim this slot
// inherits it, and a subsequent Reclaim sweeps it; Unregister does not
// drain it.
func (d *Domain) Unregister(h *Handle) {
	if !h.boundTo(d) {
		return
	}
	for i := range h.state.hazard {
		h.state.hazard[i].Release()
	}
	h.state.activeSnapshot.Store(0)
	h.state.inUse.Store(false)
	d.metrics.threadsRegistered.Dec()
	h.domain = nil
	h.state = nil
}

// grow replaces the domain's thread table with one at least twice as
// large as the current one, and at least large enough for needed slots.
// Callers must not hold the resize latch already.
func (d *Domain) grow(needed uint64) error {
	for !d.resizing.CompareAndSwap(false, true) {
		// Spin: another goroutine is already resizing.
	}
	defer d.resizing.Store(false)

	old := d.slots.Load()
	if needed <= uint64(len(old.cells)) {
		return nil // another goroutine already grew past what we need
	}

	newCap := uint64(len(old.cells))
	if newCap == 0 {
		newCap = defaultDomainCapacity
	}
	for newCap < needed || newCap < 2*uint64(len(old.cells)) {
		newCap *= 2
	}

	next := &domainSlots{cells: make([]atomic.Pointer[threadState], newCap)}
	for i := range old.cells {
		next.cells[i].Store(old.cells[i].Load())
	}
	d.slots.Store(next)
	d.metrics.grows.Inc()
	d.log.Debug("domain grew", "domain", d.id, "capacity", newCap)
	return nil
}

// forEachThread calls fn for every occupied slot in the domain's current
// table. Used by the hazard-pointer scan and the min-active-snapshot
// computation (hazard.go).
func (d *Domain) forEachThread(fn func(*threadState)) {
	slots := d.slots.Load()
	for i := range slots.cells {
		if st := slots.cells[i].Load(); st != nil {
			fn(st)
		}
	}
}
