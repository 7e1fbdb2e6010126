package kernel

import "go.uber.org/zap"

// Config holds kernel construction parameters, set via the same
// functional-options style used throughout the package.
type Config struct {
	// MemoryLimit caps the number of node-table slots a single kernel may
	// allocate. Zero means unlimited.
	MemoryLimit int

	// Logger receives progress diagnostics when ShowMessages(true) is in
	// effect. Defaults to zap.NewNop() so logging is opt-in.
	Logger *zap.Logger
}

// Option configures a Kernel via NewKernel.
type Option func(*Config)

// WithMemoryLimit caps the kernel's node table to at most n slots; a build
// that would exceed this returns ErrExhausted.
func WithMemoryLimit(n int) Option {
	return func(c *Config) { c.MemoryLimit = n }
}

// WithLogger installs a *zap.Logger for builder progress messages.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

func newConfig(opts ...Option) *Config {
	cfg := &Config{Logger: zap.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
