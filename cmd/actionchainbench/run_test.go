// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunChainMatchesWantCounter(t *testing.T) {
	cfg := Config{
		Sync:             syncChain,
		Threads:          8,
		ActionsPerThread: 2_000,
		OpsPerAction:     4,
		TopN:             5,
	}
	summary, err := Run(cfg)
	require.NoError(t, err)
	require.Equal(t, summary.WantCounter, summary.Counter)
	require.LessOrEqual(t, len(summary.Slowest), cfg.TopN)
}

func TestRunMutexMatchesWantCounter(t *testing.T) {
	cfg := Config{
		Sync:             syncMutex,
		Threads:          8,
		ActionsPerThread: 2_000,
		OpsPerAction:     4,
		TopN:             5,
	}
	summary, err := Run(cfg)
	require.NoError(t, err)
	require.Equal(t, summary.WantCounter, summary.Counter)
}

func TestRunWithReportPeriodStillDrainsAllSamples(t *testing.T) {
	cfg := Config{
		Sync:             syncChain,
		Threads:          4,
		ActionsPerThread: 1_000,
		OpsPerAction:     1,
		ReportPeriod:     time.Millisecond,
		TopN:             3,
	}
	summary, err := Run(cfg)
	require.NoError(t, err)
	require.Equal(t, summary.WantCounter, summary.Counter)
	require.Len(t, summary.Slowest, cfg.TopN)
}

func TestParseActionCountSuffixes(t *testing.T) {
	cases := map[string]int64{
		"500": 500,
		"10K": 10 * 1024,
		"4M":  4 * 1024 * 1024,
		"1g":  1 << 30,
		"2k":  2 * 1024,
	}
	for s, want := range cases {
		got, err := parseActionCount(s)
		require.NoError(t, err)
		require.Equal(t, want, got, "parsing %q", s)
	}
	_, err := parseActionCount("not-a-number")
	require.Error(t, err)
}

func TestParseSyncModeRejectsUnknown(t *testing.T) {
	_, err := parseSyncMode("spinlock")
	require.Error(t, err)
}
