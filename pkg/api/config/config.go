// Package config loads the layout core's configuration surface (spec
// §6.4) from a YAML file, grounded on rupor-github-fb2cng/config/cfg.go's
// yaml.v3 struct-tag pattern (the teacher itself has no such config
// layer — its options are all constructed in Go code via the functional
// Options pattern, so this is enriched from elsewhere in the retrieval
// pack rather than from gompdf).
package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/xsllayout/xsl-layout/internal/pagination"
	"github.com/xsllayout/xsl-layout/pkg/api"
)

// LimitsConfig mirrors pagination.Limits with YAML tags (spec §5
// resource guards).
type LimitsConfig struct {
	MaxPages        int `yaml:"max_pages"`
	MaxNestingDepth int `yaml:"max_nesting_depth"`
	MaxIterations   int `yaml:"max_iterations"`
}

// LoggingConfig configures the zap logger backing the diagnostics sink.
type LoggingConfig struct {
	Level       string `yaml:"level"`       // "debug", "info", "warn", "error"
	Development bool   `yaml:"development"` // console encoder + caller info, vs. JSON production encoder
}

// HyphenationConfig configures the Liang hyphenator (spec §6.4
// "enableHyphenation"/"hyphenationLanguage"/"hyphenationMinLeft"/
// "hyphenationMinRight").
type HyphenationConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Language string `yaml:"language"`
	MinLeft  int    `yaml:"min_left"`
	MinRight int    `yaml:"min_right"`
}

// Config is the full file-level configuration surface (spec §6.4).
type Config struct {
	Strict       bool              `yaml:"strict"`
	Limits       LimitsConfig      `yaml:"limits"`
	Logging      LoggingConfig     `yaml:"logging"`
	LineBreaking string            `yaml:"line_breaking"` // "greedy" or "optimal"
	Hyphenation  HyphenationConfig `yaml:"hyphenation"`
}

// Default returns the configuration matching api.DefaultOptions.
func Default() Config {
	limits := pagination.DefaultLimits()
	hyph := pagination.DefaultHyphenationOptions()
	return Config{
		Strict: false,
		Limits: LimitsConfig{
			MaxPages:        limits.MaxPages,
			MaxNestingDepth: limits.MaxNestingDepth,
			MaxIterations:   limits.MaxIterations,
		},
		Logging:      LoggingConfig{Level: "warn"},
		LineBreaking: "greedy",
		Hyphenation: HyphenationConfig{
			Enabled:  hyph.Enabled,
			Language: hyph.Language,
			MinLeft:  hyph.MinLeft,
			MinRight: hyph.MinRight,
		},
	}
}

// Load reads and parses a YAML configuration file, starting from
// Default() so any field the file omits keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// ToOptions converts a loaded Config into pkg/api.Options, building the
// zap logger per LoggingConfig.
func (c Config) ToOptions() api.Options {
	return api.Options{
		Strict: c.Strict,
		Limits: pagination.Limits{
			MaxPages:        c.Limits.MaxPages,
			MaxNestingDepth: c.Limits.MaxNestingDepth,
			MaxIterations:   c.Limits.MaxIterations,
		},
		Logger:       c.Logging.BuildLogger(),
		LineBreaking: parseLineBreaking(c.LineBreaking),
		Hyphenation: pagination.HyphenationOptions{
			Enabled:  c.Hyphenation.Enabled,
			Language: c.Hyphenation.Language,
			MinLeft:  c.Hyphenation.MinLeft,
			MinRight: c.Hyphenation.MinRight,
		},
	}
}

// parseLineBreaking maps the config string to a pagination mode,
// defaulting to greedy for an empty or unrecognized value rather than
// failing config load over a typo.
func parseLineBreaking(s string) pagination.LineBreakingMode {
	if s == "optimal" {
		return pagination.LineBreakingOptimal
	}
	return pagination.LineBreakingGreedy
}

// BuildLogger constructs a *zap.Logger from the Level/Development
// fields, falling back to zap.NewNop() on an unrecognized level rather
// than failing the whole config load over a logging typo.
func (l LoggingConfig) BuildLogger() *zap.Logger {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return zap.NewNop()
	}
	var zcfg zap.Config
	if l.Development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
