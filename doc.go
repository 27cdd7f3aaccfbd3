// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package actionchain provides a concurrent mutual-exclusion primitive that
// serializes caller-supplied actions without ever putting a goroutine to
// sleep on a lock. Instead of blocking on a mutex, each call to [Chain.Run]
// publishes its action onto a lock-free linked chain and either executes a
// (possibly non-empty) prefix of that chain itself, or hands the action off
// to whichever goroutine is already draining the chain on its behalf.
//
// Use a Chain in place of a [sync.Mutex] guarding a small critical section
// under high contention: rather than every contending goroutine taking turns
// acquiring and releasing a lock, exactly one goroutine at a time "combines"
// and runs the work contributed by every goroutine that arrived while it was
// running.
//
// # Allocation
//
// A [Chain.Run] call allocates a new node whenever its [Mem] is empty. A Mem
// is refilled only by a call that finds its predecessor already sealed, so
// after a call that does not, the next call on that Mem allocates.
// [Chain.RunWithMem] accepts a caller-owned [Mem] that
// recycles one node's storage across calls, avoiding allocator traffic on the
// fast path. [Chain.Run] uses a package-wide, per-goroutine [Mem] so that
// callers that do not need explicit control over recycling still benefit from
// it.
//
// # What this package does not do
//
// A Chain never blocks internally, never retries, and never cancels a
// published action. An action, once accepted by Run or RunWithMem, is
// guaranteed to execute exactly once. Panicking actions are not recovered:
// a panic propagates to whichever goroutine happens to be executing the
// chain at the time, exactly as an unrecovered panic in any other goroutine
// would.
package actionchain
