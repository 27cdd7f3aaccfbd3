// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package actionchainotel

import (
	"time"

	"go.uber.org/zap"
)

// LoggedRun adds structured logging around action: start, completion (with
// duration), or a panic (also with duration, logged before the panic
// continues to unwind). Mirrors the teacher's otpsg.LoggedTask.
func LoggedRun(operationName string, action func()) func() {
	return func() {
		logger := zap.L()
		logger.Debug("starting action",
			zap.String("operation", operationName),
			zap.String("component", "actionchainotel"))

		start := time.Now()
		didPanic := true
		defer func() {
			duration := time.Since(start)
			if didPanic {
				logger.Error("action panicked",
					zap.String("operation", operationName),
					zap.String("component", "actionchainotel"),
					zap.Duration("duration", duration))
				return
			}
			logger.Debug("action completed",
				zap.String("operation", operationName),
				zap.String("component", "actionchainotel"),
				zap.Duration("duration", duration))
		}()

		action()
		didPanic = false
	}
}
