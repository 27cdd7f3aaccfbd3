// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package actionchainotel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
)

// MetricsRun adds OpenTelemetry count, duration, and panic-count metrics
// around action. Mirrors the teacher's otpsg.MetricsTask, adapted for an
// action shape with no result or error return — a panic is the only failure
// mode, so it is what the error counter tracks.
func MetricsRun(metricName string, action func()) func() {
	return func() {
		meter := otel.GetMeterProvider().Meter("actionchainotel")
		counter, _ := meter.Int64Counter(metricName + ".count")
		duration, _ := meter.Float64Histogram(metricName + ".duration")
		panicCounter, _ := meter.Int64Counter(metricName + ".panics")

		ctx := context.Background()
		counter.Add(ctx, 1)

		start := time.Now()
		didPanic := true
		defer func() {
			duration.Record(ctx, time.Since(start).Seconds())
			if didPanic {
				panicCounter.Add(ctx, 1)
			}
		}()

		action()
		didPanic = false
	}
}
