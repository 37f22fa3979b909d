package hxcontent

import (
	"go.uber.org/zap"

	"github.com/pthm/hxcontent/lib/cloneid"
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. Operations are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(reg *Registry) {
		if logger != nil {
			reg.logger = logger
		}
	}
}

// WithCounter replaces the process-wide clone id counter used by Normalize.
// Tests use it to get deterministic ids.
func WithCounter(counter *cloneid.Counter) Option {
	return func(reg *Registry) {
		if counter != nil {
			reg.ids = counter
		}
	}
}

// WithCloneAttr overrides the attribute Normalize stamps ("clone-id").
func WithCloneAttr(name string) Option {
	return func(reg *Registry) {
		if name != "" {
			reg.cloneAttr = name
		}
	}
}

// WithContextAttr overrides the attribute StampContexts writes
// ("data-hx-context").
func WithContextAttr(name string) Option {
	return func(reg *Registry) {
		if name != "" {
			reg.contextAttr = name
		}
	}
}
