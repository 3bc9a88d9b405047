package switching

import (
	"fmt"

	"github.com/sarchlab/dcnetsim"
	"golang.org/x/exp/slices"
)

// QueueKind identifies which queue of a switch a packet joins.
type QueueKind int

// QueueKind constants. NoQueue means the packet cannot be routed.
const (
	NoQueue QueueKind = iota
	DownlinkQueue
	UplinkQueue
	HostQueue
)

func (k QueueKind) String() string {
	switch k {
	case DownlinkQueue:
		return "downlink"
	case UplinkQueue:
		return "uplink"
	case HostQueue:
		return "host"
	default:
		return "none"
	}
}

// A Route is the decision a Router makes for an arriving packet.
type Route struct {
	Queue QueueKind

	// Switch is the neighbor of a DownlinkQueue or UplinkQueue route.
	Switch dcnetsim.Switch

	// Host is the destination of a HostQueue route.
	Host dcnetsim.Host

	// Reason explains a NoQueue route.
	Reason string
}

func noRoute(format string, args ...any) Route {
	return Route{Queue: NoQueue, Reason: fmt.Sprintf(format, args...)}
}

// A Neighborhood is the part of a switch a Router may inspect.
type Neighborhood interface {
	UplinkSwitches() []dcnetsim.Switch
	DownlinkSwitches() []dcnetsim.Switch
	Hosts() []dcnetsim.Host
}

// A Router decides where a packet arriving at a switch goes next. Routers are
// stateless; the switch they serve is described by the Neighborhood.
type Router interface {
	Level() dcnetsim.Level
	RouteUp(n Neighborhood, pkt *dcnetsim.HostPacket) Route
	RouteDown(n Neighborhood, pkt *dcnetsim.HostPacket) Route
}

// RouterFor returns the router of a switch level.
func RouterFor(level dcnetsim.Level) (Router, error) {
	switch level {
	case dcnetsim.LevelRoot:
		return RootRouter{}, nil
	case dcnetsim.LevelAggregate:
		return AggregateRouter{}, nil
	case dcnetsim.LevelEdge:
		return EdgeRouter{}, nil
	default:
		return nil, fmt.Errorf("no router for level %s", level)
	}
}

func destinationHost(pkt *dcnetsim.HostPacket) dcnetsim.Host {
	vm := pkt.DestinationVM()
	if vm == nil {
		return dcnetsim.NullHost
	}

	host := vm.Host()
	if host == nil {
		return dcnetsim.NullHost
	}

	return host
}

func destinationEdge(pkt *dcnetsim.HostPacket) dcnetsim.Switch {
	edge := destinationHost(pkt).EdgeSwitch()
	if edge == nil {
		return dcnetsim.NullSwitch
	}

	return edge
}

func firstUplink(n Neighborhood) (dcnetsim.Switch, bool) {
	uplinks := n.UplinkSwitches()
	if len(uplinks) == 0 {
		return nil, false
	}

	return uplinks[0], true
}

// EdgeRouter routes packets at an edge switch, the level hosts connect to.
type EdgeRouter struct{}

// Level returns LevelEdge.
func (EdgeRouter) Level() dcnetsim.Level {
	return dcnetsim.LevelEdge
}

// RouteUp keeps host-to-host traffic local when both hosts are connected to
// the same edge switch and sends everything else to the aggregate switch.
func (EdgeRouter) RouteUp(n Neighborhood, pkt *dcnetsim.HostPacket) Route {
	host := destinationHost(pkt)
	if host == dcnetsim.NullHost {
		return noRoute("destination VM of packet %s has no host", pkt.ID())
	}

	if slices.Contains(n.Hosts(), host) {
		return Route{Queue: HostQueue, Host: host}
	}

	uplink, ok := firstUplink(n)
	if !ok {
		return noRoute("edge switch has no uplink for packet %s", pkt.ID())
	}

	return Route{Queue: UplinkQueue, Switch: uplink}
}

// RouteDown delivers the packet to the host that runs the destination VM.
func (EdgeRouter) RouteDown(n Neighborhood, pkt *dcnetsim.HostPacket) Route {
	host := destinationHost(pkt)
	if host == dcnetsim.NullHost {
		return noRoute("destination VM of packet %s has no host", pkt.ID())
	}

	return Route{Queue: HostQueue, Host: host}
}

// AggregateRouter routes packets at an aggregate switch.
type AggregateRouter struct{}

// Level returns LevelAggregate.
func (AggregateRouter) Level() dcnetsim.Level {
	return dcnetsim.LevelAggregate
}

// RouteUp sends the packet straight down when the destination edge switch is
// one of the aggregate switch's own downlinks, and up to the root otherwise.
func (AggregateRouter) RouteUp(
	n Neighborhood,
	pkt *dcnetsim.HostPacket,
) Route {
	edge := destinationEdge(pkt)
	if edge == dcnetsim.NullSwitch {
		return noRoute("destination host of packet %s has no edge switch",
			pkt.ID())
	}

	if slices.Contains(n.DownlinkSwitches(), edge) {
		return Route{Queue: DownlinkQueue, Switch: edge}
	}

	uplink, ok := firstUplink(n)
	if !ok {
		return noRoute("aggregate switch has no uplink for packet %s", pkt.ID())
	}

	return Route{Queue: UplinkQueue, Switch: uplink}
}

// RouteDown sends the packet to the edge switch that serves the destination
// host.
func (AggregateRouter) RouteDown(
	n Neighborhood,
	pkt *dcnetsim.HostPacket,
) Route {
	edge := destinationEdge(pkt)
	if edge == dcnetsim.NullSwitch {
		return noRoute("destination host of packet %s has no edge switch",
			pkt.ID())
	}

	return Route{Queue: DownlinkQueue, Switch: edge}
}

// RootRouter routes packets at the root switch.
type RootRouter struct{}

// Level returns LevelRoot.
func (RootRouter) Level() dcnetsim.Level {
	return dcnetsim.LevelRoot
}

// RouteUp finds the aggregate switch that has the destination edge switch
// among its downlinks.
func (RootRouter) RouteUp(n Neighborhood, pkt *dcnetsim.HostPacket) Route {
	edge := destinationEdge(pkt)

	for _, aggregate := range n.DownlinkSwitches() {
		if slices.Contains(aggregate.DownlinkSwitches(), edge) {
			return Route{Queue: DownlinkQueue, Switch: aggregate}
		}
	}

	return noRoute("no aggregate switch is connected to edge switch %s",
		edge.Name())
}

// RouteDown never finds a route, nothing sits above the root.
func (RootRouter) RouteDown(n Neighborhood, pkt *dcnetsim.HostPacket) Route {
	return noRoute("root switch cannot receive packet %s from above", pkt.ID())
}
