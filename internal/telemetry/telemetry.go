// Package telemetry wraps OpenTelemetry span creation for Northroot's
// journal writes and verifier passes.
//
// Spans are created in start/end pairs wrapping a tracer obtained from a
// package-level getter: one pair per append, one per verify pass, and one
// per event inside a verify pass, built directly on go.opentelemetry.io/otel.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/northroot/northroot"

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartAppendSpan begins a span around a single journal append operation.
func StartAppendSpan(ctx context.Context, journalPath string, eventType string) (context.Context, trace.Span) {
	ctx, span := tracer().Start(ctx, "journal.append")
	span.SetAttributes(
		attribute.String("journal.path", journalPath),
		attribute.String("event.type", eventType),
	)
	return ctx, span
}

// EndAppendSpan closes an append span, recording the error if any.
func EndAppendSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}

// StartVerifySpan begins a span around a full verify pass over a journal.
func StartVerifySpan(ctx context.Context, journalPath string, strict bool) (context.Context, trace.Span) {
	ctx, span := tracer().Start(ctx, "journal.verify")
	span.SetAttributes(
		attribute.String("journal.path", journalPath),
		attribute.Bool("journal.strict", strict),
	)
	return ctx, span
}

// EndVerifySpan closes a verify span, recording the resulting event count
// and verdict tally.
func EndVerifySpan(span trace.Span, eventCount int, violationCount int, err error) {
	span.SetAttributes(
		attribute.Int("journal.event_count", eventCount),
		attribute.Int("journal.violation_count", violationCount),
	)
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}

// StartEventSpan begins a per-event span within a verify pass.
func StartEventSpan(ctx context.Context, eventId string, eventType string) (context.Context, trace.Span) {
	ctx, span := tracer().Start(ctx, "verify."+eventType)
	span.SetAttributes(attribute.String("event.id", eventId))
	return ctx, span
}

// EndEventSpan closes a per-event span, recording its verdict.
func EndEventSpan(span trace.Span, verdict string) {
	span.SetAttributes(attribute.String("event.verdict", verdict))
	span.End()
}
