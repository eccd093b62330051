package chainhash

import (
	"github.com/armon/go-metrics"
	"github.com/sirupsen/logrus"
)

// Config holds the construction-time settings of a Table.
type Config struct {
	// InitialCapacity is the starting bucket count. Must be at least 1.
	InitialCapacity int

	// Logger receives resize events at debug level.
	Logger logrus.FieldLogger

	// Metrics, when set, receives resize counters and size gauges.
	Metrics *metrics.Metrics
}

// Option configures a Table.
type Option func(*Config)

// DefaultConfig returns the settings used when New is given no options.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: DefaultCapacity,
		Logger:          logrus.StandardLogger(),
	}
}

// WithInitialCapacity sets the starting bucket count.
func WithInitialCapacity(n int) Option {
	return func(c *Config) {
		c.InitialCapacity = n
	}
}

// WithLogger sets the logger used for resize events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithMetrics makes the table publish to m after every resize:
//
//	resize          counter, +1 per resize
//	resize_entries  sample, entries rehashed
//	capacity, size  gauges
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

func (c *Config) reportResize(capacity, size, rehashed int) {
	if c.Metrics == nil {
		return
	}
	c.Metrics.IncrCounter([]string{"resize"}, 1)
	c.Metrics.AddSample([]string{"resize_entries"}, float32(rehashed))
	c.Metrics.SetGauge([]string{"capacity"}, float32(capacity))
	c.Metrics.SetGauge([]string{"size"}, float32(size))
}
