// Package telemetry wraps Sentry tracing for the assistant.
package telemetry

import (
	"context"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
)

const serviceName = "gridvoice"

// Config holds the Sentry initialization settings.
type Config struct {
	DSN              string
	Environment      string
	TracesSampleRate float64
	Debug            bool
}

// Init initializes Sentry with tracing enabled and returns a shutdown
// function that flushes pending events. An empty DSN yields a no-op
// shutdown; an init failure is logged and the process continues without
// tracing.
func Init(cfg Config) (func(), error) {
	if cfg.DSN == "" {
		return func() {}, nil
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.TracesSampleRate == 0 {
		cfg.TracesSampleRate = 1.0
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		EnableTracing:    true,
		TracesSampleRate: cfg.TracesSampleRate,
		Debug:            cfg.Debug,
		ServerName:       serviceName,
		TracesSampler:    sampler(cfg.TracesSampleRate),
	})
	if err != nil {
		log.Printf("sentry: failed to initialize (continuing without tracing): %v", err)
		return func() {}, nil
	}

	log.Printf("sentry: tracing initialized (environment: %s, sample_rate: %.2f)", cfg.Environment, cfg.TracesSampleRate)
	return func() { sentry.Flush(5 * time.Second) }, nil
}

// sampler excludes health checks and makes child spans inherit the
// parent's sampling decision.
func sampler(rate float64) sentry.TracesSampler {
	return func(ctx sentry.SamplingContext) float64 {
		if ctx.Span.Name == "GET /health" || ctx.Span.Op == "http.server GET /health" {
			return 0.0
		}

		var rootSpanID sentry.SpanID
		if ctx.Span.ParentSpanID != rootSpanID {
			if ctx.Span.Sampled.Bool() {
				return 1.0
			}
			return 0.0
		}
		return rate
	}
}

// SpanAttributes are the attributes assistant spans carry.
type SpanAttributes struct {
	SessionID string
	Intent    string
	Operation string
}

// Span is a narrow handle over a Sentry span; the zero inner value makes
// every method a no-op, so callers never check whether tracing is on.
type Span struct {
	inner *sentry.Span
}

// End finishes the span.
func (s *Span) End() {
	if s.inner != nil {
		s.inner.Finish()
	}
}

// SetError marks the span failed and reports the error.
func (s *Span) SetError(err error) {
	if s.inner == nil {
		return
	}
	s.inner.Status = sentry.SpanStatusInternalError
	CaptureError(s.inner.Context(), err)
}

// Context returns the span's context for propagation into child calls.
func (s *Span) Context() context.Context {
	if s.inner != nil {
		return s.inner.Context()
	}
	return context.Background()
}

// StartSpan opens a child span under the transaction in ctx, or a fresh
// transaction when there is none, and applies attrs.
func StartSpan(ctx context.Context, name string, attrs SpanAttributes) (context.Context, *Span) {
	var span *sentry.Span
	if parent := sentry.SpanFromContext(ctx); parent != nil {
		span = parent.StartChild(name)
	} else {
		span = sentry.StartSpan(ctx, name, sentry.WithTransactionName(name))
	}

	if attrs.SessionID != "" {
		span.SetTag("session_id", attrs.SessionID)
	}
	if attrs.Intent != "" {
		span.SetTag("intent", attrs.Intent)
	}
	if attrs.Operation != "" {
		span.SetData("operation", attrs.Operation)
	}

	return span.Context(), &Span{inner: span}
}

// CaptureError reports err against the hub in ctx, falling back to the
// global hub.
func CaptureError(ctx context.Context, err error) {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}
