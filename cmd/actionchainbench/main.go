// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command actionchainbench measures the throughput of a [Chain] against the
// alternatives it's meant to replace: a plain sync.Mutex, and no
// synchronization at all (an upper-bound baseline that always runs on a
// single goroutine, whatever --threads says).
//
// [Chain]: https://pkg.go.dev/github.com/caelum-dev/actionchain#Chain
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "actionchainbench",
		Usage: "benchmark actionchain.Chain against mutex and unsynchronized baselines",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sync",
				Usage: "synchronization method: chain, mutex, or none",
				Value: "chain",
			},
			&cli.StringFlag{
				Name:  "threads",
				Usage: "number of concurrent goroutines contributing actions, accepts K/M/G suffixes; 0 means the number of CPUs",
				Value: "0",
			},
			&cli.StringFlag{
				Name:  "ops-per-action",
				Usage: "number of counter increments performed inside each action, accepts K/M/G suffixes",
				Value: "1",
			},
			&cli.StringFlag{
				Name:  "actions",
				Usage: "number of actions each thread runs, accepts K/M/G suffixes (e.g. 10M)",
				Value: "1M",
			},
			&cli.DurationFlag{
				Name:  "report-period",
				Usage: "how often to print a live progress line; 0 disables periodic reporting",
				Value: 0,
			},
			&cli.IntFlag{
				Name:  "top-n",
				Usage: "number of slowest individual actions to report",
				Value: 10,
			},
		},
		Action: runCLI,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(c *cli.Context) error {
	mode, err := parseSyncMode(c.String("sync"))
	if err != nil {
		return err
	}
	threads, err := parseActionCount(c.String("threads"))
	if err != nil {
		return err
	}
	opsPerAction, err := parseActionCount(c.String("ops-per-action"))
	if err != nil {
		return err
	}
	actions, err := parseActionCount(c.String("actions"))
	if err != nil {
		return err
	}

	cfg := Config{
		Sync:             mode,
		Threads:          threads,
		ActionsPerThread: actions,
		OpsPerAction:     opsPerAction,
		ReportPeriod:     c.Duration("report-period"),
		TopN:             c.Int("top-n"),
	}

	summary, err := Run(cfg)
	printSummary(c.String("sync"), summary)
	return err
}

func printSummary(syncName string, s Summary) {
	fmt.Printf("sync=%s threads=%d actions=%d opsPerAction=%d elapsed=%s",
		syncName, s.Threads, s.ActionsPerThread, s.OpsPerAction, s.Elapsed)
	if s.Elapsed > 0 {
		totalActions := s.Threads * s.ActionsPerThread
		fmt.Printf(" actionsPerSec=%.0f", float64(totalActions)/s.Elapsed.Seconds())
	}
	fmt.Printf(" allocsPerAction=%.3f counter=%d wantCounter=%d",
		s.AllocsPerAction, s.Counter, s.WantCounter)
	for i, sample := range s.Slowest {
		fmt.Printf(" slowest[%d].worker=%d slowest[%d].seq=%d slowest[%d].duration=%s",
			i, sample.WorkerID, i, sample.Seq, i, sample.Duration.Round(time.Microsecond))
	}
	fmt.Println()
}
