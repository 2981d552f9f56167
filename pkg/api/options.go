package api

import (
	"go.uber.org/zap"

	"github.com/xsllayout/xsl-layout/internal/pagination"
)

// Options represents configuration for the layout/pagination core
// (spec §6.4's enumerated config surface), grounded on the teacher's
// functional Options/Option pattern (pkg/api/options.go), generalized
// from PDF-rendering toggles (DPI, RenderBackgrounds, DebugDrawBoxes)
// to this module's actual knobs: resource limits, strictness, and the
// diagnostics logger.
type Options struct {
	// Limits bounds pagination work per spec §5 (maxPages,
	// maxNestingDepth, maxIterations).
	Limits pagination.Limits

	// Strict records strict Open-Question handling (false by default).
	// Convert and the page formatter do not read it: a non-lr-tb
	// writing-mode or a structurally-impossible keep-together is laid
	// out the same way whatever its value, and no UnsupportedFeature
	// Failure is raised for either.
	Strict bool

	// Logger receives every diagnostic recorded during a Convert call,
	// mirroring the teacher's Debug-gated fmt.Printf calls but routed
	// through a structured logger instead (see internal/diag).
	Logger *zap.Logger

	// LineBreaking selects greedy first-fit or Knuth-Plass optimum-fit
	// paragraph breaking (spec §6.4 "lineBreaking").
	LineBreaking pagination.LineBreakingMode

	// Hyphenation configures the Liang hyphenator consulted by the
	// paragraph formatter (spec §6.4).
	Hyphenation pagination.HyphenationOptions
}

// Option is a function that modifies Options.
type Option func(*Options)

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	opts := pagination.DefaultFormatterOptions()
	return Options{
		Limits:       pagination.DefaultLimits(),
		Strict:       false,
		Logger:       zap.NewNop(),
		LineBreaking: opts.LineBreaking,
		Hyphenation:  opts.Hyphenation,
	}
}

// WithLimits overrides the resource limits.
func WithLimits(limits pagination.Limits) Option {
	return func(o *Options) { o.Limits = limits }
}

// WithStrict toggles strict Open-Question handling.
func WithStrict(strict bool) Option {
	return func(o *Options) { o.Strict = strict }
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithLineBreaking selects the paragraph line-breaking strategy.
func WithLineBreaking(mode pagination.LineBreakingMode) Option {
	return func(o *Options) { o.LineBreaking = mode }
}

// WithHyphenation configures the Liang hyphenator.
func WithHyphenation(opts pagination.HyphenationOptions) Option {
	return func(o *Options) { o.Hyphenation = opts }
}

// WithOptions returns a new converter with options built by applying
// each Option to the defaults in order.
func WithOptions(opts ...Option) *Converter {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return NewWithOptions(options)
}
