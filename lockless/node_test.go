package lockless

import "testing"

func TestNodeVisibleAtInsertBoundary(t *testing.T) {
	n := NewNode("A", 1)

	if n.VisibleAt(1) {
		t.Error("node inserted at txn 1 must not be visible to a snapshot of 1 (strict bound)")
	}
	if !n.VisibleAt(2) {
		t.Error("node inserted at txn 1 must be visible to a snapshot of 2")
	}
}

func TestNodeVisibleAtRemoveBoundary(t *testing.T) {
	n := NewNode("A", 1)
	n.MarkRemoved(3)

	if !n.VisibleAt(2) {
		t.Error("node removed at txn 3 must still be visible to a snapshot of 2")
	}
	if n.VisibleAt(3) {
		t.Error("node removed at txn 3 must not be visible to a snapshot of 3 (strict bound)")
	}
	if n.VisibleAt(4) {
		t.Error("node removed at txn 3 must not be visible to a snapshot of 4")
	}
}

func TestNodeNeverRemovedStaysVisible(t *testing.T) {
	n := NewNode("A", 1)
	if !n.VisibleAt(1_000_000) {
		t.Error("a node never removed must remain visible at any snapshot past its insert")
	}
}

func TestNodeRemovedReportsState(t *testing.T) {
	n := NewNode("A", 1)
	if n.Removed() {
		t.Error("freshly inserted node must not report Removed")
	}
	n.MarkRemoved(5)
	if !n.Removed() {
		t.Error("node must report Removed after MarkRemoved")
	}
}

func TestNilNodeVisibleAtIsFalse(t *testing.T) {
	var n *Node[string]
	if n.VisibleAt(10) {
		t.Error("a nil node must never be visible")
	}
}
