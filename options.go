package digraphzdd

// Option configures a query call, following the same functional-options
// pattern used by kernel.Option.
type Option func(*queryConfig)

type queryConfig struct {
	connected bool
}

func newQueryConfig(opts ...Option) *queryConfig {
	cfg := &queryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithConnected requests that a degree-specified subgraph additionally
// form a single connected component. Only DirectedGraphs consults it; it
// is a no-op on every other query.
func WithConnected(connected bool) Option {
	return func(c *queryConfig) { c.connected = connected }
}
