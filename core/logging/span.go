// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package logging

import (
	"context"
	"fmt"
	"runtime/trace"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Span represents a pipeline stage in flight.
type Span struct {
	// only these fields are set automatically
	task     *trace.Task
	start    time.Time
	duration time.Duration

	Stage    string
	Language string
	Keys     int
	Bytes    int
	Error    error
}

// Begin starts timing the span and opens a runtime/trace task for it.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "locallang."+span.Stage)

	return ctx
}

// End stops timing the span.
func (span *Span) End() {
	// only end once
	if span.task != nil {
		span.duration = time.Since(span.start)
		span.task.End()

		span.task = nil
	}
}

// Duration returns how long the span ran.
func (span Span) Duration() time.Duration {
	return span.duration
}

// Log writes the span as a debug event, or as an error event when Error is set.
func (span Span) Log() {
	event := log.Debug()
	if span.Error != nil {
		event = log.Error().Err(span.Error)
	}

	event.Str("sys", "pipeline")
	event.Str("stage", span.Stage)

	if span.Language != "" {
		event.Str("language", span.Language)
	}

	if span.Keys > 0 {
		event.Int("keys", span.Keys)
	}

	if span.Bytes > 0 {
		event.Str("len", HumanizeSize(span.Bytes))
	}

	event.Dur("dur", span.duration)
	event.Send()
}

const (
	bytesInKB = 1024
	bytesInMB = bytesInKB * bytesInKB
	bytesInGB = bytesInMB * bytesInKB
)

// HumanizeSize formats a byte count with a K, M or G suffix.
func HumanizeSize(x int) string {
	if x < bytesInKB {
		return strconv.Itoa(x)
	}

	if x < bytesInMB {
		return fmt.Sprintf("%.2fK", float64(x)/bytesInKB)
	}

	if x < bytesInGB {
		return fmt.Sprintf("%.2fM", float64(x)/bytesInMB)
	}

	return fmt.Sprintf("%.2fG", float64(x)/bytesInGB)
}
