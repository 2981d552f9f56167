// Package diag implements the single structured diagnostics sink
// threaded by reference through the layout pipeline (spec §4, §7, §9).
// Recoverable problems (unknown property, unparseable value, overfull
// line, ...) are recorded here and layout continues; fatal problems
// abort the pipeline via a typed Failure instead.
package diag

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Severity distinguishes a recoverable diagnostic from context the sink
// merely records for debugging.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
)

// Entry is one recorded diagnostic.
type Entry struct {
	Severity Severity
	Message  string
	Fields   map[string]string
}

// FailureKind enumerates the fatal-failure categories from spec §7.
type FailureKind string

const (
	InvalidDocument   FailureKind = "InvalidDocument"
	LimitExceeded     FailureKind = "LimitExceeded"
	UnsupportedFeat   FailureKind = "UnsupportedFeature"
	ServiceUnavail    FailureKind = "ServiceUnavailable"
)

// Failure is the typed fatal error the pipeline returns when an
// invariant-breaking condition is hit (spec §7).
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Fatal constructs a *Failure, wrapped so errors.As/Is work normally.
func Fatal(kind FailureKind, format string, args ...any) error {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Sink accumulates recoverable diagnostics and mirrors them to a
// structured logger. It is safe to pass by reference through every
// component of the pipeline (spec §9 "single structured sink passed by
// reference"); it carries no process-wide state (spec §5).
type Sink struct {
	logger  *zap.Logger
	entries []Entry
	errs    error
}

// NewSink wraps a zap logger (typically built by config.LoggingConfig)
// into a diagnostics sink. A nil logger is replaced with zap.NewNop().
func NewSink(logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{logger: logger}
}

// Warn records a recoverable diagnostic (spec §7 "Recoverable
// diagnostic"): unknown property, unparseable value, overfull line, etc.
func (s *Sink) Warn(message string, fields map[string]string) {
	s.record(SeverityWarn, message, fields)
}

// Info records a non-diagnostic trace message.
func (s *Sink) Info(message string, fields map[string]string) {
	s.record(SeverityInfo, message, fields)
}

func (s *Sink) record(sev Severity, message string, fields map[string]string) {
	s.entries = append(s.entries, Entry{Severity: sev, Message: message, Fields: fields})
	zfields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zfields = append(zfields, zap.String(k, v))
	}
	if sev == SeverityWarn {
		s.logger.Warn(message, zfields...)
		s.errs = multierr.Append(s.errs, fmt.Errorf("%s", message))
	} else {
		s.logger.Info(message, zfields...)
	}
}

// Entries returns every diagnostic recorded so far, in order.
func (s *Sink) Entries() []Entry {
	return s.entries
}

// Err returns the accumulated recoverable diagnostics combined via
// go.uber.org/multierr, or nil if there were none. This never aborts a
// pipeline run; it is informational, mirroring spec §7's "layout
// continues using defaults or placeholder boxes".
func (s *Sink) Err() error {
	return s.errs
}
