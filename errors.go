package hazardlist

import "errors"

// Sentinel errors returned by domain, list and iterator operations.
var (
	// ErrNoMem reports an allocation failure. No operation in this package
	// returns it: a failed allocation in Go panics instead of returning an
	// error, so node creation and thread-table growth have no error path.
	ErrNoMem = errors.New("hazardlist: allocation failed")

	// ErrNotFound is returned by Remove when no matching node that is not
	// already logically removed exists, and by RemoveFirst when the list
	// has no visible node at all.
	ErrNotFound = errors.New("hazardlist: element not found")

	// ErrNoThread is returned by any operation that requires a registered
	// handle when called with a nil handle, or a handle bound to a
	// different domain than the one the list belongs to.
	ErrNoThread = errors.New("hazardlist: calling thread not registered with domain")

	// ErrInvalid is returned for nil-argument and other argument errors
	// detected at entry, before any state change.
	ErrInvalid = errors.New("hazardlist: invalid argument")
)
