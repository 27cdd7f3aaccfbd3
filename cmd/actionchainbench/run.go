// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/caelum-dev/actionchain"
	"github.com/caelum-dev/actionchain/internal/cerr"
	"github.com/caelum-dev/actionchain/internal/nbcq"
	"github.com/caelum-dev/actionchain/internal/state"
	"github.com/caelum-dev/actionchain/internal/timerp"
	"github.com/gammazero/deque"
)

// ErrCountMismatch is returned when the final shared counter does not equal
// threads * actionsPerThread * opsPerAction, meaning the chosen --sync
// method failed to serialize the benchmark's critical section.
const ErrCountMismatch cerr.Error = "actionchainbench: final counter does not match threads * actions * opsPerAction"

type syncMode int

const (
	syncChain syncMode = iota
	syncMutex
	syncNone
)

func parseSyncMode(s string) (syncMode, error) {
	switch s {
	case "chain":
		return syncChain, nil
	case "mutex":
		return syncMutex, nil
	case "none":
		return syncNone, nil
	default:
		return 0, fmt.Errorf("actionchainbench: unknown --sync value %q (want chain, mutex, or none)", s)
	}
}

// Config holds the parsed benchmark flags. Threads, ActionsPerThread, and
// OpsPerAction all accept the same K/M/G suffix grammar at the CLI layer;
// Run itself deals only in resolved integers.
type Config struct {
	Sync             syncMode
	Threads          int64
	ActionsPerThread int64
	OpsPerAction     int64
	ReportPeriod     time.Duration
	TopN             int
}

// Summary is the final set of measurements printed by the benchmark driver.
type Summary struct {
	Threads          int64
	ActionsPerThread int64
	OpsPerAction     int64
	Counter          int64
	WantCounter      int64
	Elapsed          time.Duration
	AllocsPerAction  float64
	Slowest          []actionSample
}

// flushThreshold caps how many samples a worker goroutine buffers locally
// before publishing them to the shared sample queue, bounding both memory
// use and the staleness of the live reporter.
const flushThreshold = 256

// Run drives the benchmark described by cfg to completion. The returned
// error is non-nil exactly when the shared counter, incremented
// opsPerAction times per action and protected (or not) according to
// cfg.Sync, does not equal threads*cfg.ActionsPerThread*cfg.OpsPerAction,
// where threads is cfg.Threads after resolution (the CPU count when it is
// not positive, and 1 for syncNone) -- the oracle that catches a --sync
// method failing to serialize.
func Run(cfg Config) (Summary, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = int64(runtime.NumCPU())
	}
	if cfg.Sync == syncNone {
		// "none" is only meaningful as an uncontended, single-goroutine
		// baseline: the counter it exercises is unsynchronized, so running
		// it across multiple goroutines would be a genuine data race rather
		// than a measurement.
		threads = 1
	}

	var chain *actionchain.Chain
	var mu sync.Mutex
	if cfg.Sync == syncChain {
		chain = actionchain.New()
		defer chain.Close()
	}

	var sampleQueue nbcq.Queue[actionSample]
	var samplePool nbcq.NodePool[actionSample]
	sampleQueue.Init(&samplePool)

	var executed atomic.Int64
	var progress state.DynamicValue[int64]
	progress.Store(0)

	var memStatsBefore, memStatsAfter runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&memStatsBefore)

	start := time.Now()
	done := make(chan struct{})
	slowestCh := make(chan []actionSample, 1)

	go runReporter(cfg, &progress, &sampleQueue, done, slowestCh)

	// counter is deliberately a plain int rather than an atomic: correctness
	// depends entirely on cfg.Sync actually serializing access to it, which
	// is the property this benchmark exists to measure.
	var counter int

	var wg sync.WaitGroup
	wg.Add(int(threads))
	for w := int64(0); w < threads; w++ {
		w := w
		go func() {
			defer wg.Done()
			runWorker(int(w), cfg, chain, &mu, &counter, &executed, &progress, &sampleQueue)
		}()
	}
	wg.Wait()
	close(done)

	elapsed := time.Since(start)
	runtime.ReadMemStats(&memStatsAfter)
	slowest := <-slowestCh

	totalActions := threads * cfg.ActionsPerThread
	var allocsPerAction float64
	if totalActions > 0 {
		allocsPerAction = float64(memStatsAfter.Mallocs-memStatsBefore.Mallocs) / float64(totalActions)
	}

	summary := Summary{
		Threads:          threads,
		ActionsPerThread: cfg.ActionsPerThread,
		OpsPerAction:     cfg.OpsPerAction,
		Counter:          int64(counter),
		WantCounter:      threads * cfg.ActionsPerThread * cfg.OpsPerAction,
		Elapsed:          elapsed,
		AllocsPerAction:  allocsPerAction,
		Slowest:          slowest,
	}
	if summary.Counter != summary.WantCounter {
		return summary, ErrCountMismatch
	}
	return summary, nil
}

func runWorker(
	id int,
	cfg Config,
	chain *actionchain.Chain,
	mu *sync.Mutex,
	counter *int,
	executed *atomic.Int64,
	progress *state.DynamicValue[int64],
	sampleQueue *nbcq.Queue[actionSample],
) {
	var samplePool nbcq.NodePool[actionSample]
	var localBuf deque.Deque[actionSample]
	var mem *actionchain.Mem
	if cfg.Sync == syncChain {
		mem = actionchain.NewMem()
	}

	work := func() {
		for k := int64(0); k < cfg.OpsPerAction; k++ {
			(*counter)++
		}
	}

	flush := func() {
		for localBuf.Len() > 0 {
			sampleQueue.PushBack(&samplePool, localBuf.PopFront())
		}
	}

	for a := int64(0); a < cfg.ActionsPerThread; a++ {
		start := time.Now()
		switch cfg.Sync {
		case syncChain:
			chain.RunWithMem(mem, work)
		case syncMutex:
			mu.Lock()
			work()
			mu.Unlock()
		case syncNone:
			work()
		}
		n := executed.Add(1)
		progress.Store(n)

		localBuf.PushBack(actionSample{WorkerID: id, Seq: n, Duration: time.Since(start)})
		if localBuf.Len() >= flushThreshold {
			flush()
		}
	}
	flush()
}

// runReporter is the sole consumer of sampleQueue: it drains every sample
// published by the worker goroutines into a slowestTracker, printing live
// progress lines along the way, and wakes either on its own timer or as soon
// as progress changes (mirroring the teacher's DynamicValue change-channel
// pattern) so draining keeps up with production even if --report-period is
// long or unset. Once done is closed it performs one final drain and
// publishes the accumulated tracker results on slowestCh.
func runReporter(
	cfg Config,
	progress *state.DynamicValue[int64],
	sampleQueue *nbcq.Queue[actionSample],
	done <-chan struct{},
	slowestCh chan<- []actionSample,
) {
	var samplePool nbcq.NodePool[actionSample]
	tracker := newSlowestTracker(cfg.TopN)
	drain := func() {
		for {
			s, ok := sampleQueue.PopFront(&samplePool)
			if !ok {
				return
			}
			tracker.offer(s)
		}
	}

	var timer *time.Timer
	var timerC <-chan time.Time
	if cfg.ReportPeriod > 0 {
		timer = timerp.Get()
		timer.Reset(cfg.ReportPeriod)
		timerC = timer.C
		defer func() {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timerp.Put(timer)
		}()
	}

	_, changed := progress.Load()
	for {
		select {
		case <-done:
			drain()
			slowestCh <- tracker.sorted()
			return
		case <-changed:
			_, next := progress.Load()
			changed = next
			drain()
		case <-timerC:
			n, _ := progress.Load()
			fmt.Printf("progress.executed=%d\n", n)
			drain()
			timer.Reset(cfg.ReportPeriod)
		}
	}
}
