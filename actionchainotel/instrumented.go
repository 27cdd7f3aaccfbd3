// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package actionchainotel

import "context"

// InstrumentedRun combines LoggedRun, MetricsRun, and TracedRun into a
// single wrapper, applied inside-out exactly as the teacher's
// otpsg.InstrumentedTask combines its own three decorators.
func InstrumentedRun(ctx context.Context, operationName string, action func()) func() {
	logged := LoggedRun(operationName, action)
	metriced := MetricsRun(operationName, logged)
	return TracedRun(ctx, operationName, metriced)
}
