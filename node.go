// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package actionchain

import "sync/atomic"

// MaxActionSize is the documented size budget for an action closure. Go gives
// no way to reject an oversized closure at compile time the way a
// systems-language port can reject an oversized inline payload, so this is
// advisory rather than enforced: the package never checks it. A Node holds
// only a reference to its closure, so a closure of any size works and the
// Node recycled through [Mem] is the same size regardless.
const MaxActionSize = 64

// sealedNode is the SEALED sentinel for Node.next. It is a valid, non-nil
// *Node value that is never dereferenced; any distinguishable non-nil
// pointer would do, but using an actual (unused) Node keeps the sentinel
// type-correct without resorting to unsafe pointer tricks.
var sealedNode = &Node{}

// A Node is the per-action record published onto a [Chain]. Exactly one of
// two things destroys a Node after construction: the producer whose
// continueWith observes next already SEALED, or the executor that observes a
// real successor linked into next. The monotonic progression of next (nil ->
// successor -> SEALED, or nil -> SEALED) guarantees that exactly one of these
// observations happens, never both and never neither.
type Node struct {
	next   atomic.Pointer[Node]
	action func()
}

// reset prepares a recycled or freshly allocated Node to carry action. Called
// only by a producer that owns exclusive access to the Node (either because
// it just allocated it, or because it just popped it out of a [Mem]).
func (n *Node) reset(action func()) {
	n.next.Store(nil)
	n.action = action
}

// continueWith is called by the producer that created next immediately after
// publishing next as the new chain tail, linking next as n's successor. n is
// always the previous tail, i.e. the node that lost the race to be "last" the
// moment next's producer called [Chain.tail.Swap].
//
// Returns the Node the caller now owns the destruction of (and may recycle
// into its own [Mem]), or nil if no such Node is available because next's
// executor has not yet finished running n's action.
func (n *Node) continueWith(next *Node) *Node {
	old := n.next.Swap(next)
	if old == nil {
		// n's action has not yet been sealed by an executor. That executor
		// will observe next here when it finishes and take over execution
		// duty for it. We have nothing to reclaim.
		return nil
	}
	// old must be sealedNode: n's action already ran and its executor
	// declined to continue the chain. We now own both destruction of n and
	// the duty to drain starting at next.
	n.destroy()
	runAll(next)
	return n
}

// destroy runs a Node's cleanup. The stored action has already been invoked
// (by runAll) by the time destroy is called; there is nothing left to do
// beyond dropping the reference so the closure's captured state can be
// garbage collected promptly rather than lingering in a recycled Node.
func (n *Node) destroy() {
	n.action = nil
}

// runAll drains the chain starting at w, which must be a non-nil, non-sealed
// Node whose action has not yet executed. It runs w's action, seals w, and
// either returns (because no successor has been linked yet, meaning the next
// producer to link one inherits execution duty) or continues on to w's
// successor, freeing w along the way.
//
// Nodes that runAll destroys (those it finds a successor linked to) are
// always freed rather than recycled: runAll has no [Mem] to recycle into, because the Mem belongs to
// whichever goroutine produced the intervening node, not to the goroutine
// currently executing as the chain's combiner.
//
// If w.action panics, it does so before w.next is sealed, so w is never
// marked SEALED and no later producer will ever take over draining from it.
// This is deliberate: spec compliance requires that actions not propagate
// failures, and a Chain makes no attempt to recover from a violation of that
// contract, exactly as an unrecovered panic in any other goroutine would
// bring down whatever depended on it.
func runAll(w *Node) {
	for {
		w.action()
		old := w.next.Swap(sealedNode)
		if old == nil {
			// Relinquish. w stays allocated; whichever producer's
			// continueWith next observes sealedNode here inherits both
			// destruction of w and execution duty for its own successor.
			return
		}
		w.destroy()
		w = old
	}
}
