// Package workload injects VM-to-VM traffic into a datacenter and collects
// the delivery statistics.
package workload

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a workload config cannot be played.
var ErrInvalidConfig = errors.New("invalid workload config")

// A Mode selects how packets cross the network.
type Mode string

// Modes supported by the player.
const (
	// ModeSwitch sends every packet through the switch engine.
	ModeSwitch Mode = "switch"

	// ModeMatrix delivers every packet after the shortest-path delay between
	// the two hosts.
	ModeMatrix Mode = "matrix"
)

// Config describes the traffic to play.
type Config struct {
	Mode Mode `toml:"mode"`

	// TracePath points to a CSV traffic trace. Random traffic is generated
	// when it is empty.
	TracePath string `toml:"trace"`

	// PacketSize is the packet size, in bytes, used to weight the links of
	// the delay graph in matrix mode.
	PacketSize uint64 `toml:"packet_size"`

	Random RandomConfig `toml:"random"`
}

// RandomConfig describes randomly generated traffic.
type RandomConfig struct {
	Stream   string  `toml:"stream"`
	Flows    int     `toml:"flows"`
	Interval float64 `toml:"interval"`
	MinBytes uint64  `toml:"min_bytes"`
	MaxBytes uint64  `toml:"max_bytes"`
}

// DefaultConfig returns a config that plays 100 random flows through the
// switch engine.
func DefaultConfig() Config {
	return Config{
		Mode:       ModeSwitch,
		PacketSize: 1500,
		Random: RandomConfig{
			Stream:   "workload",
			Flows:    100,
			Interval: 0.001,
			MinBytes: 64,
			MaxBytes: 9000,
		},
	}
}

// WithDefaults fills the fields left at zero with the default values.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()

	if c.Mode == "" {
		c.Mode = d.Mode
	}

	if c.PacketSize == 0 {
		c.PacketSize = d.PacketSize
	}

	if c.Random.Stream == "" {
		c.Random.Stream = d.Random.Stream
	}

	if c.Random.Flows == 0 {
		c.Random.Flows = d.Random.Flows
	}

	if c.Random.Interval == 0 {
		c.Random.Interval = d.Random.Interval
	}

	if c.Random.MaxBytes == 0 {
		c.Random.MinBytes = d.Random.MinBytes
		c.Random.MaxBytes = d.Random.MaxBytes
	}

	return c
}

// Validate checks if the config can be played.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeSwitch, ModeMatrix:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}

	if c.TracePath != "" {
		return nil
	}

	return c.Random.validate()
}

func (c RandomConfig) validate() error {
	if c.Flows < 0 {
		return fmt.Errorf("%w: negative flow count %d", ErrInvalidConfig,
			c.Flows)
	}

	if c.Interval < 0 {
		return fmt.Errorf("%w: negative interval %g", ErrInvalidConfig,
			c.Interval)
	}

	if c.MinBytes > c.MaxBytes {
		return fmt.Errorf("%w: min_bytes %d is larger than max_bytes %d",
			ErrInvalidConfig, c.MinBytes, c.MaxBytes)
	}

	return nil
}
