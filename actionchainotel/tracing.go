// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package actionchainotel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
)

// TracedRun wraps action in an OpenTelemetry span started from ctx. A panic
// is recorded on the span as an error before being re-raised, so the
// original panic-propagation contract is preserved; the span is never used
// to swallow it. Mirrors the teacher's otpsg.WithTaskTracing.
func TracedRun(ctx context.Context, operationName string, action func()) func() {
	return func() {
		tracer := otel.Tracer("actionchainotel")
		_, span := tracer.Start(ctx, operationName)
		defer span.End()
		defer func() {
			if r := recover(); r != nil {
				span.RecordError(fmt.Errorf("action panicked: %v", r))
				panic(r)
			}
		}()
		action()
	}
}
