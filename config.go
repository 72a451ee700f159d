package gqlfilter

// Default grammar settings.
const (
	// DefaultFilterKey is the argument name under which the filter input
	// is exposed on list queries.
	DefaultFilterKey = "filter"

	// DefaultAndKey, DefaultOrKey and DefaultNotKey are the reserved
	// connective keys of the filter grammar.
	DefaultAndKey = "and"
	DefaultOrKey  = "or"
	DefaultNotKey = "not"

	// DefaultLookupSep separates field path segments and the lookup name
	// in flat data keys, e.g. "author__city__eq".
	DefaultLookupSep = "__"

	// DefaultMaxDepth bounds the nesting depth of a filter tree,
	// counting both connectives and relation hops.
	DefaultMaxDepth = 25
)

// Config carries the grammar settings shared by parsing, translation and
// input type generation. The zero value is not usable; use DefaultConfig
// or New, which applies options on top of the defaults.
type Config struct {
	// FilterKey is the query argument name for the filter input.
	FilterKey string

	// AndKey, OrKey and NotKey are the reserved connective keys.
	AndKey string
	OrKey  string
	NotKey string

	// LookupSep separates segments in flat data keys.
	LookupSep string

	// MaxDepth bounds filter tree nesting. Deeper trees are rejected as
	// malformed.
	MaxDepth int
}

// DefaultConfig returns the default grammar settings.
func DefaultConfig() Config {
	return Config{
		FilterKey: DefaultFilterKey,
		AndKey:    DefaultAndKey,
		OrKey:     DefaultOrKey,
		NotKey:    DefaultNotKey,
		LookupSep: DefaultLookupSep,
		MaxDepth:  DefaultMaxDepth,
	}
}

// Option configures a Filters instance.
type Option func(*Config)

// WithFilterKey sets the query argument name for the filter input.
func WithFilterKey(key string) Option {
	return func(c *Config) { c.FilterKey = key }
}

// WithConnectiveKeys sets the reserved AND, OR and NOT keys.
func WithConnectiveKeys(and, or, not string) Option {
	return func(c *Config) {
		c.AndKey, c.OrKey, c.NotKey = and, or, not
	}
}

// WithLookupSep sets the separator used in flat data keys.
func WithLookupSep(sep string) Option {
	return func(c *Config) { c.LookupSep = sep }
}

// WithMaxDepth bounds the nesting depth of accepted filter trees.
func WithMaxDepth(depth int) Option {
	return func(c *Config) { c.MaxDepth = depth }
}

// reserved reports whether key is one of the connective keys.
func (c *Config) reserved(key string) bool {
	return key == c.AndKey || key == c.OrKey || key == c.NotKey
}
