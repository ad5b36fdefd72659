package allocgo

import (
	"log/slog"

	"github.com/hupe1980/allocgo/pool"
)

type options struct {
	threshold        int
	metricsCollector MetricsCollector
	logger           *Logger
	budget           *Budget
	poolOptions      []pool.Option
}

// Option configures Registry construction.
type Option func(*options)

// WithThreshold configures the routing boundary in bytes: single-object
// requests of at most threshold bytes go to a size-class pool, everything
// else to the general-purpose allocator.
//
// Non-positive values reset to DefaultThreshold.
func WithThreshold(threshold int) Option {
	return func(o *options) {
		if threshold <= 0 {
			threshold = DefaultThreshold
		}
		o.threshold = threshold
	}
}

// WithBudget configures a memory budget shared by every pool the registry
// creates. Region reservations that would exceed the budget fail, and the
// failure propagates out of Acquire unmodified.
//
// Pass nil to run unbudgeted (the default).
func WithBudget(budget *Budget) Option {
	return func(o *options) {
		o.budget = budget
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// allocations.
//
// Example with BasicMetricsCollector:
//
//	metrics := &allocgo.BasicMetricsCollector{}
//	reg := allocgo.NewRegistry(allocgo.WithMetricsCollector(metrics))
//	// ... allocate through reg.Dispatcher() ...
//	stats := metrics.GetStats()
//	fmt.Printf("pooled: %d, heap: %d\n", stats.PoolAllocs, stats.HeapAllocs)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for registry operations.
//
// Example with JSON logging:
//
//	logger := allocgo.NewJSONLogger(slog.LevelInfo)
//	reg := allocgo.NewRegistry(allocgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
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

// WithPoolOptions configures options applied to every pool the registry
// creates.
func WithPoolOptions(optFns ...pool.Option) Option {
	return func(o *options) {
		o.poolOptions = optFns
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		threshold:        DefaultThreshold,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
