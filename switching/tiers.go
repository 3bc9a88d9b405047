package switching

import (
	"github.com/sarchlab/dcnetsim"
	"gitlab.com/akita/akita/v3/sim"
)

// Default parameters of the three switch levels. Bandwidths are in megabits
// per second. The uplink of a level matches the downlink of the level above.
const (
	EdgePorts             = 4
	EdgeDownlinkBandwidth = 100 * 8
	EdgeUplinkBandwidth   = AggregateDownlinkBandwidth
	EdgeSwitchingDelay    = sim.VTimeInSec(0.00157)

	AggregatePorts             = 1
	AggregateDownlinkBandwidth = 1024 * 8
	AggregateUplinkBandwidth   = RootDownlinkBandwidth
	AggregateSwitchingDelay    = sim.VTimeInSec(0.00245)

	RootPorts             = 1
	RootDownlinkBandwidth = 40 * 1024 * 8
	RootSwitchingDelay    = sim.VTimeInSec(0.00285)
)

// NewEdgeSwitch creates an edge switch with the default edge parameters.
func NewEdgeSwitch(
	name string,
	es sim.EventScheduler,
	tt sim.TimeTeller,
	dc dcnetsim.Datacenter,
) *Switch {
	s := newSwitch(name, EdgeRouter{}, es, tt, dc)
	s.ports = EdgePorts
	s.downlinkBandwidth = EdgeDownlinkBandwidth
	s.uplinkBandwidth = EdgeUplinkBandwidth
	s.switchingDelay = EdgeSwitchingDelay

	return s
}

// NewAggregateSwitch creates an aggregate switch with the default aggregate
// parameters.
func NewAggregateSwitch(
	name string,
	es sim.EventScheduler,
	tt sim.TimeTeller,
	dc dcnetsim.Datacenter,
) *Switch {
	s := newSwitch(name, AggregateRouter{}, es, tt, dc)
	s.ports = AggregatePorts
	s.downlinkBandwidth = AggregateDownlinkBandwidth
	s.uplinkBandwidth = AggregateUplinkBandwidth
	s.switchingDelay = AggregateSwitchingDelay

	return s
}

// NewRootSwitch creates a root switch with the default root parameters. The
// root has no uplink.
func NewRootSwitch(
	name string,
	es sim.EventScheduler,
	tt sim.TimeTeller,
	dc dcnetsim.Datacenter,
) *Switch {
	s := newSwitch(name, RootRouter{}, es, tt, dc)
	s.ports = RootPorts
	s.downlinkBandwidth = RootDownlinkBandwidth
	s.switchingDelay = RootSwitchingDelay

	return s
}
