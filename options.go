package henkan

import (
	"log/slog"
	"time"

	"github.com/hupe1980/henkan/dictionary"
	"github.com/hupe1980/henkan/internal/assembler"
	"github.com/hupe1980/henkan/internal/resource"
	"github.com/hupe1980/henkan/userdict"
)

// ScoringConfig holds every score constant used to rank candidates.
type ScoringConfig = assembler.ScoringConfig

// DefaultScoringConfig returns the default scores.
func DefaultScoringConfig() ScoringConfig { return assembler.DefaultScoringConfig() }

// ResourceConfig bounds memory, load concurrency and read throughput.
type ResourceConfig = resource.Config

type options struct {
	logger   *Logger
	metrics  MetricsCollector
	scoring  ScoringConfig
	clock    func() time.Time
	resource ResourceConfig
	layout   dictionary.Layout
	// cacheBytes enables a whole-blob cache in front of the store.
	cacheBytes int64
}

// Option configures New and Open.
type Option func(*options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := henkan.NewJSONLogger(slog.LevelInfo)
//	e, _ := henkan.Open(ctx, store, henkan.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetrics configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &henkan.BasicMetricsCollector{}
//	e, _ := henkan.Open(ctx, store, henkan.WithMetrics(metrics))
//	// ... use e ...
//	stats := metrics.GetStats()
func WithMetrics(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithScoring replaces the default scoring constants.
func WithScoring(cfg ScoringConfig) Option {
	return func(o *options) {
		o.scoring = cfg
	}
}

// WithClock sets the clock date candidates are computed from.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithResourceConfig bounds the memory reserved by optional dictionaries,
// the number of dictionaries decoded concurrently and the store read rate.
func WithResourceConfig(cfg ResourceConfig) Option {
	return func(o *options) {
		o.resource = cfg
	}
}

// WithLayout overrides the file names of the dictionary store.
func WithLayout(l dictionary.Layout) Option {
	return func(o *options) {
		o.layout = l
	}
}

// WithBlobCache keeps up to capacity bytes of raw artifacts in memory so
// that releasing and reloading an optional dictionary skips the store.
// Cached bytes count against the memory budget.
func WithBlobCache(capacity int64) Option {
	return func(o *options) {
		o.cacheBytes = capacity
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
		scoring: DefaultScoringConfig(),
		clock:   time.Now,
		layout:  dictionary.DefaultLayout(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

type queryOptions struct {
	optional []OptionalDictionary
	user     userdict.Repository
	learned  userdict.Repository
}

// QueryOption configures a single Candidates call.
type QueryOption func(*queryOptions)

// WithOptionalDictionaries enables optional dictionaries for the query.
// Dictionaries that are not loaded are skipped.
func WithOptionalDictionaries(ds ...OptionalDictionary) QueryOption {
	return func(o *queryOptions) {
		o.optional = append(o.optional, ds...)
	}
}

// WithUserDictionary consults repo as the user dictionary.
func WithUserDictionary(repo userdict.Repository) QueryOption {
	return func(o *queryOptions) {
		o.user = repo
	}
}

// WithLearnedDictionary consults repo as the learned dictionary.
func WithLearnedDictionary(repo userdict.Repository) QueryOption {
	return func(o *queryOptions) {
		o.learned = repo
	}
}

func applyQueryOptions(optFns []QueryOption) queryOptions {
	var o queryOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
