// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"cmp"
	"sort"
	"time"

	"github.com/addrummond/heap"
)

// actionSample is one timed action execution, reported by a worker goroutine
// through sampleQueue to the reporter goroutine.
type actionSample struct {
	WorkerID int
	Seq      int64
	Duration time.Duration
}

func (a *actionSample) Cmp(b *actionSample) int {
	return cmp.Compare(a.Duration, b.Duration)
}

// slowestTracker keeps the N slowest actionSamples seen so far using a
// bounded min-heap: once the heap is at capacity, a new sample only displaces
// the current minimum if it is slower, giving O(log N) maintenance per
// sample instead of sorting the entire stream.
type slowestTracker struct {
	h     heap.Heap[actionSample, heap.Min]
	limit int
}

func newSlowestTracker(limit int) *slowestTracker {
	return &slowestTracker{limit: limit}
}

func (st *slowestTracker) offer(s actionSample) {
	if st.limit <= 0 {
		return
	}
	if st.h.Len() < st.limit {
		heap.PushOrderable(&st.h, s)
		return
	}
	min, ok := heap.Peek(&st.h)
	if !ok || s.Duration <= min.Duration {
		return
	}
	heap.PopOrderable(&st.h)
	heap.PushOrderable(&st.h, s)
}

// sorted drains the tracker and returns its contents slowest-first.
func (st *slowestTracker) sorted() []actionSample {
	out := make([]actionSample, 0, st.h.Len())
	for {
		s, ok := heap.PopOrderable(&st.h)
		if !ok {
			break
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Duration > out[j].Duration })
	return out
}
