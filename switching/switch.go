// Package switching provides the packet-forwarding engine shared by the
// root, aggregate and edge switches of a datacenter network.
package switching

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/sarchlab/dcnetsim"
	"github.com/sirupsen/logrus"
	"gitlab.com/akita/akita/v3/sim"
	"golang.org/x/exp/slices"
)

var (
	// ErrIllegalState is returned when a switch receives an event it does not
	// know or an event without the expected packet.
	ErrIllegalState = errors.New("illegal state")

	// ErrIllegalNeighbor is returned when two switches of levels that cannot
	// be adjacent are wired together.
	ErrIllegalNeighbor = errors.New("illegal neighbor")

	// ErrNotEdgeSwitch is returned when a host is connected to a switch that
	// is not an edge switch.
	ErrNotEdgeSwitch = errors.New("hosts can only connect to edge switches")

	// ErrNilRouter is returned when a switch is created without a router.
	ErrNilRouter = errors.New("switch requires a router")
)

// Hook positions of a switch.
var (
	// HookPosForward marks the start of a forward pass. The item is the
	// switch.
	HookPosForward = &sim.HookPos{Name: "Switch Forward"}

	// HookPosPacketDropped marks a packet that cannot be routed. The item is
	// the packet and the detail is the reason.
	HookPosPacketDropped = &sim.HookPos{Name: "Switch Packet Dropped"}

	// HookPosHostDelivery marks a packet handed to a host. The item is the
	// packet.
	HookPosHostDelivery = &sim.HookPos{Name: "Switch Host Delivery"}
)

// A Switch queues arriving packets and forwards them in batches, one
// switching delay after the latest arrival. Where a packet is queued is
// decided by the Router the switch is created with.
type Switch struct {
	sim.HookableBase
	sim.EventScheduler
	sim.TimeTeller

	name       string
	router     Router
	datacenter dcnetsim.Datacenter
	log        logrus.FieldLogger

	ports             int
	uplinkBandwidth   float64
	downlinkBandwidth float64
	switchingDelay    sim.VTimeInSec

	uplinks   []dcnetsim.Switch
	downlinks []dcnetsim.Switch
	hosts     []dcnetsim.Host

	directory   sim.Handler
	datacenters []dcnetsim.Datacenter

	downlinkQueues *packetQueues[dcnetsim.Switch]
	uplinkQueues   *packetQueues[dcnetsim.Switch]
	hostQueues     *packetQueues[dcnetsim.Host]
	pendingForward *forwardEvent
}

// NewSwitch creates a switch that routes packets with the given router. All
// the parameters start at zero.
func NewSwitch(
	name string,
	router Router,
	es sim.EventScheduler,
	tt sim.TimeTeller,
	dc dcnetsim.Datacenter,
) (*Switch, error) {
	if router == nil {
		return nil, fmt.Errorf("%w: %s", ErrNilRouter, name)
	}

	return newSwitch(name, router, es, tt, dc), nil
}

func newSwitch(
	name string,
	router Router,
	es sim.EventScheduler,
	tt sim.TimeTeller,
	dc dcnetsim.Datacenter,
) *Switch {
	s := &Switch{
		EventScheduler: es,
		TimeTeller:     tt,
		name:           name,
		router:         router,
		datacenter:     dc,
		downlinkQueues: newPacketQueues[dcnetsim.Switch](),
		uplinkQueues:   newPacketQueues[dcnetsim.Switch](),
		hostQueues:     newPacketQueues[dcnetsim.Host](),
	}

	s.SetLogger(logrus.StandardLogger())

	return s
}

// SetLogger replaces the logger of the switch.
func (s *Switch) SetLogger(l logrus.FieldLogger) {
	s.log = l.WithFields(logrus.Fields{
		"switch": s.name,
		"level":  s.Level().String(),
	})
}

// SetDirectory sets the handler that answers the registration request sent
// at startup.
func (s *Switch) SetDirectory(directory sim.Handler) {
	s.directory = directory
}

// Name returns the name of the switch.
func (s *Switch) Name() string {
	return s.name
}

// Level returns the level of the switch in the hierarchy.
func (s *Switch) Level() dcnetsim.Level {
	return s.router.Level()
}

// Datacenter returns the datacenter that owns the switch.
func (s *Switch) Datacenter() dcnetsim.Datacenter {
	return s.datacenter
}

// RegisteredDatacenters returns the datacenter listing received after
// startup.
func (s *Switch) RegisteredDatacenters() []dcnetsim.Datacenter {
	return slices.Clone(s.datacenters)
}

// UplinkBandwidth returns the uplink bandwidth in megabits per second.
func (s *Switch) UplinkBandwidth() float64 {
	return s.uplinkBandwidth
}

// SetUplinkBandwidth sets the uplink bandwidth in megabits per second.
func (s *Switch) SetUplinkBandwidth(bw float64) error {
	if err := dcnetsim.CheckNonNegative("uplink bandwidth", bw); err != nil {
		return err
	}

	s.uplinkBandwidth = bw

	return nil
}

// DownlinkBandwidth returns the downlink bandwidth in megabits per second.
func (s *Switch) DownlinkBandwidth() float64 {
	return s.downlinkBandwidth
}

// SetDownlinkBandwidth sets the downlink bandwidth in megabits per second.
func (s *Switch) SetDownlinkBandwidth(bw float64) error {
	if err := dcnetsim.CheckNonNegative("downlink bandwidth", bw); err != nil {
		return err
	}

	s.downlinkBandwidth = bw

	return nil
}

// Ports returns the number of ports.
func (s *Switch) Ports() int {
	return s.ports
}

// SetPorts sets the number of ports.
func (s *Switch) SetPorts(ports int) error {
	if err := dcnetsim.CheckNonNegative("ports", float64(ports)); err != nil {
		return err
	}

	s.ports = ports

	return nil
}

// SwitchingDelay returns the time the switch needs to process packets.
func (s *Switch) SwitchingDelay() sim.VTimeInSec {
	return s.switchingDelay
}

// SetSwitchingDelay sets the time the switch needs to process packets.
func (s *Switch) SetSwitchingDelay(delay sim.VTimeInSec) error {
	err := dcnetsim.CheckNonNegative("switching delay", float64(delay))
	if err != nil {
		return err
	}

	s.switchingDelay = delay

	return nil
}

// UplinkSwitches returns a copy of the uplink neighbors.
func (s *Switch) UplinkSwitches() []dcnetsim.Switch {
	return slices.Clone(s.uplinks)
}

// DownlinkSwitches returns a copy of the downlink neighbors.
func (s *Switch) DownlinkSwitches() []dcnetsim.Switch {
	return slices.Clone(s.downlinks)
}

// Hosts returns a copy of the hosts connected to the switch.
func (s *Switch) Hosts() []dcnetsim.Host {
	return slices.Clone(s.hosts)
}

// UplinkTransferDelay returns the time to send the packet up while
// simultaneous packets share the uplink.
func (s *Switch) UplinkTransferDelay(
	pkt *dcnetsim.HostPacket,
	simultaneous int,
) sim.VTimeInSec {
	return TransferDelay(pkt.Size(), s.uplinkBandwidth, simultaneous)
}

// DownlinkTransferDelay returns the time to send the packet down while
// simultaneous packets share the downlink.
func (s *Switch) DownlinkTransferDelay(
	pkt *dcnetsim.HostPacket,
	simultaneous int,
) sim.VTimeInSec {
	return TransferDelay(pkt.Size(), s.downlinkBandwidth, simultaneous)
}

// AddUplinkSwitch adds a neighbor one level closer to the root.
func (s *Switch) AddUplinkSwitch(sw dcnetsim.Switch) error {
	if sw.Level() == dcnetsim.LevelNone || sw.Level().Below() != s.Level() {
		return fmt.Errorf("%w: %s switch %s cannot be the uplink of %s switch %s",
			ErrIllegalNeighbor, sw.Level(), sw.Name(), s.Level(), s.name)
	}

	if !slices.Contains(s.uplinks, sw) {
		s.uplinks = append(s.uplinks, sw)
	}

	return nil
}

// AddDownlinkSwitch adds a neighbor one level closer to the hosts.
func (s *Switch) AddDownlinkSwitch(sw dcnetsim.Switch) error {
	if sw.Level() == dcnetsim.LevelNone || s.Level().Below() != sw.Level() {
		return fmt.Errorf("%w: %s switch %s cannot be the downlink of %s switch %s",
			ErrIllegalNeighbor, sw.Level(), sw.Name(), s.Level(), s.name)
	}

	if !slices.Contains(s.downlinks, sw) {
		s.downlinks = append(s.downlinks, sw)
	}

	return nil
}

// Connect wires lower below upper in both directions.
func Connect(upper, lower *Switch) error {
	if err := upper.AddDownlinkSwitch(lower); err != nil {
		return err
	}

	return lower.AddUplinkSwitch(upper)
}

// ConnectHost connects a host to the edge switch and links the host back to
// the switch.
func (s *Switch) ConnectHost(host dcnetsim.Host) error {
	if s.Level() != dcnetsim.LevelEdge {
		return fmt.Errorf("%w: %s is a %s switch",
			ErrNotEdgeSwitch, s.name, s.Level())
	}

	if !slices.Contains(s.hosts, host) {
		s.hosts = append(s.hosts, host)
	}

	host.SetEdgeSwitch(s)

	return nil
}

// DisconnectHost removes the host from the switch. It returns false if the
// host was not connected.
func (s *Switch) DisconnectHost(host dcnetsim.Host) bool {
	idx := slices.Index(s.hosts, host)
	if idx < 0 {
		return false
	}

	s.hosts = slices.Delete(s.hosts, idx, idx+1)

	if host.EdgeSwitch() == dcnetsim.Switch(s) {
		host.SetEdgeSwitch(dcnetsim.NullSwitch)
	}

	return true
}

// QueuedPackets returns the number of packets waiting for the next forward
// pass.
func (s *Switch) QueuedPackets() int {
	return s.downlinkQueues.numPackets() +
		s.uplinkQueues.numPackets() +
		s.hostQueues.numPackets()
}

// Handle processes the events of the switch.
func (s *Switch) Handle(e sim.Event) error {
	switch e := e.(type) {
	case StartupEvent:
		s.startup()
	case RegistrationResponseEvent:
		s.datacenters = e.datacenters
		s.log.WithField("datacenters", len(e.datacenters)).
			Debug("registered with topology directory")
	case UpEvent:
		return s.receive(e.packet, true)
	case DownEvent:
		return s.receive(e.packet, false)
	case *forwardEvent:
		s.handleForward(e)
	case hostDeliveryEvent:
		return s.deliverToHost(e)
	default:
		return fmt.Errorf("%w: switch %s cannot handle event type %s",
			ErrIllegalState, s.name, reflect.TypeOf(e))
	}

	return nil
}

func (s *Switch) startup() {
	if s.directory == nil {
		return
	}

	s.Schedule(RegistrationRequestEvent{
		time:      s.CurrentTime(),
		handler:   s.directory,
		requester: s,
	})
}

func (s *Switch) receive(pkt *dcnetsim.HostPacket, fromBelow bool) error {
	if pkt == nil || pkt.VMPacket == nil {
		return fmt.Errorf("%w: switch %s received an event without a packet",
			ErrIllegalState, s.name)
	}

	s.scheduleForward()

	var route Route
	if fromBelow {
		route = s.router.RouteUp(s, pkt)
	} else {
		route = s.router.RouteDown(s, pkt)
	}

	s.enqueue(pkt, route)

	return nil
}

func (s *Switch) enqueue(pkt *dcnetsim.HostPacket, route Route) {
	switch route.Queue {
	case DownlinkQueue:
		s.downlinkQueues.add(route.Switch, pkt)
	case UplinkQueue:
		s.uplinkQueues.add(route.Switch, pkt)
	case HostQueue:
		pkt.Destination = route.Host
		s.hostQueues.add(route.Host, pkt)
	default:
		s.drop(pkt, route.Reason)
	}
}

func (s *Switch) drop(pkt *dcnetsim.HostPacket, reason string) {
	s.log.WithField("packet", pkt.ID()).Errorf("dropping packet: %s", reason)

	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosPacketDropped,
		Item:   pkt,
		Detail: reason,
	})
}

// scheduleForward replaces the pending forward event, if any, so that
// packets arriving within one switching delay share a forward pass.
func (s *Switch) scheduleForward() {
	if s.pendingForward != nil {
		s.pendingForward.cancelled = true
	}

	s.pendingForward = &forwardEvent{
		time:    s.CurrentTime() + s.switchingDelay,
		handler: s,
	}
	s.Schedule(s.pendingForward)
}

func (s *Switch) handleForward(e *forwardEvent) {
	if e.cancelled {
		return
	}

	s.pendingForward = nil
	s.forward()
}

func (s *Switch) forward() {
	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosForward,
		Item:   s,
	})

	now := s.CurrentTime()

	for _, batch := range s.downlinkQueues.take() {
		for _, pkt := range batch.packets {
			delay := s.DownlinkTransferDelay(pkt, len(batch.packets))
			if s.unreachable(pkt, delay) {
				continue
			}

			s.Schedule(NewDownEvent(now+delay, batch.key, pkt))
		}
	}

	for _, batch := range s.uplinkQueues.take() {
		for _, pkt := range batch.packets {
			delay := s.UplinkTransferDelay(pkt, len(batch.packets))
			if s.unreachable(pkt, delay) {
				continue
			}

			s.Schedule(NewUpEvent(now+delay, batch.key, pkt))
		}
	}

	for _, batch := range s.hostQueues.take() {
		for _, pkt := range batch.packets {
			delay := s.DownlinkTransferDelay(pkt, len(batch.packets))
			if s.unreachable(pkt, delay) {
				continue
			}

			s.Schedule(hostDeliveryEvent{
				time:    now + delay,
				handler: s,
				host:    batch.key,
				packet:  pkt,
			})
		}
	}

	s.log.WithField("time", now).Debug("forward pass done")
}

func (s *Switch) unreachable(
	pkt *dcnetsim.HostPacket,
	delay sim.VTimeInSec,
) bool {
	if !math.IsInf(float64(delay), 1) {
		return false
	}

	s.drop(pkt, "link has no bandwidth")

	return true
}

func (s *Switch) deliverToHost(e hostDeliveryEvent) error {
	if e.packet == nil || e.host == nil {
		return fmt.Errorf("%w: switch %s has a host delivery without a packet",
			ErrIllegalState, s.name)
	}

	e.packet.RecvTime = s.CurrentTime()
	e.host.AddReceivedNetworkPacket(e.packet)

	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosHostDelivery,
		Item:   e.packet,
	})

	return nil
}
