// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package actionchainotel adds optional, zero-overhead-when-unused
// instrumentation to actions run through an [actionchain.Chain]: structured
// logging via zap, metrics and tracing via OpenTelemetry. Each decorator
// wraps a func() and returns a new func() with the same panic-propagation
// contract as the original — none of them swallow a panic (TracedRun recovers
// only to record the panic on its span, then re-raises it).
package actionchainotel
