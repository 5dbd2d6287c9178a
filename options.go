package keyswap

import "time"

// DefaultPaddingLength is the width used by MethodPadded when WithPadding is not given.
const DefaultPaddingLength = 4

// Clock supplies the current time to MethodShort.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now returns f().
func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Generator produces the token for a zero-based index. It is used by MethodCustom.
type Generator func(index int) string

// Option configures token generation and dictionary construction.
type Option func(*config)

// config holds the resolved options for a Generate or Build call.
type config struct {
	method  Method
	custom  Generator
	padding int
	prefix  string
	clock   Clock
}

func defaultConfig() config {
	return config{
		method:  MethodAlphabetic,
		padding: DefaultPaddingLength,
		clock:   systemClock{},
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// validate checks the options that can be wrong independently of any key.
func (c *config) validate() error {
	if c.padding < 0 {
		return newConfigError("padding", c.method, "length must not be negative")
	}
	if c.method == MethodCustom && c.custom == nil {
		return newConfigError("generator", c.method, "custom method requires a generator function")
	}
	if c.clock == nil {
		return newConfigError("clock", c.method, "clock must not be nil")
	}
	return nil
}

// WithMethod selects the encoding method. Unknown methods fall back to alphabetic.
func WithMethod(m Method) Option {
	return func(c *config) { c.method = m.resolve() }
}

// WithCustom sets the generator used by MethodCustom. It does not change the method.
func WithCustom(g Generator) Option {
	return func(c *config) { c.custom = g }
}

// WithPadding sets the zero-padding width for MethodPadded.
func WithPadding(n int) Option {
	return func(c *config) { c.padding = n }
}

// WithPrefix prepends s to every generated token.
func WithPrefix(s string) Option {
	return func(c *config) { c.prefix = s }
}

// WithClock sets the time source for MethodShort.
func WithClock(clock Clock) Option {
	return func(c *config) { c.clock = clock }
}
