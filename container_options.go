package locator

import (
	"go.uber.org/zap"
)

// DefaultMaxDepth bounds the resolution trail of a single call.
const DefaultMaxDepth = 256

// Option configures a Container.
type Option func(*options)

type options struct {
	logger *zap.Logger

	// legacyCacheScope caches a freshly resolved value under the highest
	// cacheable scope holding any producer, not only one for the key.
	legacyCacheScope bool

	// truncateDefaults stops constructor autowiring at the first optional
	// parameter that cannot be resolved.
	truncateDefaults bool

	maxDepth int
}

func defaultOptions() *options {
	return &options{
		logger:   zap.NewNop(),
		maxDepth: DefaultMaxDepth,
	}
}

// WithLogger sets the logger used for debug output. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLegacyCacheScope picks the cache tier for a freshly resolved value by
// looking at whether any key at all has a producer in Request (then Global),
// instead of whether the resolved key has one.
func WithLegacyCacheScope() Option {
	return func(o *options) {
		o.legacyCacheScope = true
	}
}

// WithDefaultTruncation makes constructor autowiring stop at the first
// parameter that cannot be resolved but has a default. That parameter and all
// following ones receive their declared default, or their zero value when
// they have none.
func WithDefaultTruncation() Option {
	return func(o *options) {
		o.truncateDefaults = true
	}
}

// WithMaxDepth bounds how many keys may be in resolution at once on a single
// call path. Values below one are ignored.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}
