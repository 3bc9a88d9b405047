package datacenter

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/sarchlab/dcnetsim"
	"github.com/sarchlab/dcnetsim/switching"
	"gitlab.com/akita/akita/v3/sim"
)

// Config describes a three-tier datacenter. Zero switch parameters keep the
// defaults of the switch level.
type Config struct {
	Name      string         `toml:"name"`
	Topology  TopologyConfig `toml:"topology"`
	Root      SwitchConfig   `toml:"root"`
	Aggregate SwitchConfig   `toml:"aggregate"`
	Edge      SwitchConfig   `toml:"edge"`
}

// TopologyConfig sets the fan-out of every level of the tree.
type TopologyConfig struct {
	Aggregates        int `toml:"aggregates"`
	EdgesPerAggregate int `toml:"edges_per_aggregate"`
	HostsPerEdge      int `toml:"hosts_per_edge"`
	VMsPerHost        int `toml:"vms_per_host"`
}

// SwitchConfig overrides the parameters of the switches of one level.
// Bandwidths are in megabits per second, the switching delay in seconds.
type SwitchConfig struct {
	Ports             int     `toml:"ports"`
	UplinkBandwidth   float64 `toml:"uplink_bandwidth"`
	DownlinkBandwidth float64 `toml:"downlink_bandwidth"`
	SwitchingDelay    float64 `toml:"switching_delay"`
}

// DefaultConfig returns a small datacenter with two aggregate switches.
func DefaultConfig() Config {
	return Config{
		Name: "DC",
		Topology: TopologyConfig{
			Aggregates:        2,
			EdgesPerAggregate: 2,
			HostsPerEdge:      2,
			VMsPerHost:        2,
		},
	}
}

// LoadConfig reads a datacenter config from a TOML file, fills the zero
// fields with the defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	var c Config

	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config keys %v", undecoded)
	}

	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// WithDefaults fills the zero fields of the topology from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()

	if c.Name == "" {
		c.Name = d.Name
	}

	if c.Topology.Aggregates == 0 {
		c.Topology.Aggregates = d.Topology.Aggregates
	}

	if c.Topology.EdgesPerAggregate == 0 {
		c.Topology.EdgesPerAggregate = d.Topology.EdgesPerAggregate
	}

	if c.Topology.HostsPerEdge == 0 {
		c.Topology.HostsPerEdge = d.Topology.HostsPerEdge
	}

	if c.Topology.VMsPerHost == 0 {
		c.Topology.VMsPerHost = d.Topology.VMsPerHost
	}

	return c
}

// Validate rejects negative counts and switch parameters.
func (c Config) Validate() error {
	counts := []struct {
		name string
		v    int
	}{
		{"aggregates", c.Topology.Aggregates},
		{"edges per aggregate", c.Topology.EdgesPerAggregate},
		{"hosts per edge", c.Topology.HostsPerEdge},
		{"vms per host", c.Topology.VMsPerHost},
	}
	for _, count := range counts {
		err := dcnetsim.CheckNonNegative(count.name, float64(count.v))
		if err != nil {
			return err
		}
	}

	if err := c.Root.validate(); err != nil {
		return fmt.Errorf("root switch: %w", err)
	}

	if err := c.Aggregate.validate(); err != nil {
		return fmt.Errorf("aggregate switch: %w", err)
	}

	if err := c.Edge.validate(); err != nil {
		return fmt.Errorf("edge switch: %w", err)
	}

	return nil
}

func (c SwitchConfig) validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"ports", float64(c.Ports)},
		{"uplink bandwidth", c.UplinkBandwidth},
		{"downlink bandwidth", c.DownlinkBandwidth},
		{"switching delay", c.SwitchingDelay},
	}

	for _, check := range checks {
		if err := dcnetsim.CheckNonNegative(check.name, check.v); err != nil {
			return err
		}
	}

	return nil
}

// apply sets the non-zero parameters on the switch.
func (c SwitchConfig) apply(s *switching.Switch) error {
	if c.Ports != 0 {
		if err := s.SetPorts(c.Ports); err != nil {
			return err
		}
	}

	if c.UplinkBandwidth != 0 {
		if err := s.SetUplinkBandwidth(c.UplinkBandwidth); err != nil {
			return err
		}
	}

	if c.DownlinkBandwidth != 0 {
		if err := s.SetDownlinkBandwidth(c.DownlinkBandwidth); err != nil {
			return err
		}
	}

	if c.SwitchingDelay != 0 {
		err := s.SetSwitchingDelay(sim.VTimeInSec(c.SwitchingDelay))
		if err != nil {
			return err
		}
	}

	return nil
}
