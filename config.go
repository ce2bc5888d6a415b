package sortedhash

import "fmt"

// Defaults for Config.
const (
	DefaultBucketGrowth = 32
	DefaultGrowthFactor = 2
	DefaultShrinkFactor = 2
	DefaultMaxAlpha     = 64
	DefaultMinSize      = 8
)

// Config holds the tunables of a Table.
type Config struct {
	// BucketGrowth is the number of entries a full bucket grows by.
	BucketGrowth uint32

	// GrowthFactor multiplies the bucket count when the table grows.
	GrowthFactor uint32

	// ShrinkFactor divides the bucket count when the table shrinks.
	ShrinkFactor uint32

	// MaxAlpha is the average bucket depth that makes the next insert grow
	// the table.
	MaxAlpha uint32

	// MinAlpha is the average bucket depth below which a remove shrinks the
	// table. Zero means MaxAlpha/4.
	MinAlpha uint32

	// MinSize is the smallest bucket count the table resizes to.
	MinSize uint32
}

// Option configures a Table.
type Option func(*Config)

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		BucketGrowth: DefaultBucketGrowth,
		GrowthFactor: DefaultGrowthFactor,
		ShrinkFactor: DefaultShrinkFactor,
		MaxAlpha:     DefaultMaxAlpha,
		MinSize:      DefaultMinSize,
	}
}

// WithBucketGrowth sets how many entries a full bucket grows by
func WithBucketGrowth(n uint32) Option {
	return func(c *Config) {
		c.BucketGrowth = n
	}
}

// WithGrowthFactor sets the bucket count multiplier used when growing
func WithGrowthFactor(n uint32) Option {
	return func(c *Config) {
		c.GrowthFactor = n
	}
}

// WithShrinkFactor sets the bucket count divisor used when shrinking
func WithShrinkFactor(n uint32) Option {
	return func(c *Config) {
		c.ShrinkFactor = n
	}
}

// WithMaxAlpha sets the average bucket depth that triggers growth
func WithMaxAlpha(n uint32) Option {
	return func(c *Config) {
		c.MaxAlpha = n
	}
}

// WithMinAlpha sets the average bucket depth below which the table shrinks
func WithMinAlpha(n uint32) Option {
	return func(c *Config) {
		c.MinAlpha = n
	}
}

// WithMinSize sets the smallest bucket count reachable by resizing
func WithMinSize(n uint32) Option {
	return func(c *Config) {
		c.MinSize = n
	}
}

// WithConfig replaces the whole configuration
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

func (c *Config) resolve() error {
	if c.MinAlpha == 0 {
		c.MinAlpha = c.MaxAlpha / 4
	}

	switch {
	case c.BucketGrowth == 0:
		return fmt.Errorf("%w: bucket growth must be positive", ErrInvalidConfig)
	case c.GrowthFactor < 2:
		return fmt.Errorf("%w: growth factor %d is below 2", ErrInvalidConfig, c.GrowthFactor)
	case c.ShrinkFactor < 2:
		return fmt.Errorf("%w: shrink factor %d is below 2", ErrInvalidConfig, c.ShrinkFactor)
	case c.MaxAlpha == 0:
		return fmt.Errorf("%w: max alpha must be positive", ErrInvalidConfig)
	case c.MinAlpha >= c.MaxAlpha:
		return fmt.Errorf("%w: min alpha %d must be below max alpha %d", ErrInvalidConfig, c.MinAlpha, c.MaxAlpha)
	case c.MinSize == 0 || c.MinSize > maxTableSize:
		return fmt.Errorf("%w: min size %d out of range", ErrInvalidConfig, c.MinSize)
	}
	return nil
}
