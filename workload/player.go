package workload

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/sarchlab/dcnetsim"
	"github.com/sarchlab/dcnetsim/datacenter"
	"github.com/sarchlab/dcnetsim/delaymatrix"
	"github.com/sarchlab/dcnetsim/switching"
	"github.com/sirupsen/logrus"
	"gitlab.com/akita/akita/v3/sim"
)

// ErrUnknownVM is returned when a trace names a VM the datacenter does not
// have.
var ErrUnknownVM = errors.New("unknown VM")

// Hook positions of the player. The item is the packet.
var (
	HookPosInject   = &sim.HookPos{Name: "Player Inject"}
	HookPosDelivery = &sim.HookPos{Name: "Player Delivery"}
)

// An injectEvent starts one flow of the trace.
type injectEvent struct {
	time    sim.VTimeInSec
	handler *Player
	flow    int
}

// Time returns the time of the event.
func (e injectEvent) Time() sim.VTimeInSec {
	return e.time
}

// Handler returns the handler of the event.
func (e injectEvent) Handler() sim.Handler {
	return e.handler
}

// IsSecondary always returns false.
func (e injectEvent) IsSecondary() bool {
	return false
}

// A matrixDeliveryEvent hands a packet to its host once the path delay has
// elapsed.
type matrixDeliveryEvent struct {
	time    sim.VTimeInSec
	handler *Player
	host    *datacenter.Host
	packet  *dcnetsim.HostPacket
}

// Time returns the time of the event.
func (e matrixDeliveryEvent) Time() sim.VTimeInSec {
	return e.time
}

// Handler returns the handler of the event.
func (e matrixDeliveryEvent) Handler() sim.Handler {
	return e.handler
}

// IsSecondary always returns false.
func (e matrixDeliveryEvent) IsSecondary() bool {
	return false
}

// Stats summarizes a played trace.
type Stats struct {
	Injected  int
	Delivered int
	Bytes     uint64

	TotalLatency sim.VTimeInSec
	MaxLatency   sim.VTimeInSec
}

// Undelivered returns the number of injected packets that never reached
// their host.
func (s Stats) Undelivered() int {
	return s.Injected - s.Delivered
}

// MeanLatency returns the average latency of the delivered packets.
func (s Stats) MeanLatency() sim.VTimeInSec {
	if s.Delivered == 0 {
		return 0
	}

	return s.TotalLatency / sim.VTimeInSec(s.Delivered)
}

// A Player injects the flows of a trace into a datacenter. By default the
// packets go through the switches. With a delay matrix, they are delivered
// after the shortest-path delay between the source and destination hosts.
type Player struct {
	*sim.ComponentBase

	sim.TimeTeller
	sim.EventScheduler

	dc     *datacenter.Datacenter
	matrix *delaymatrix.DelayMatrix
	log    logrus.FieldLogger

	trace      Trace
	nextTaskID int
	stats      Stats
}

// NewPlayer creates a player that plays traffic in the given datacenter.
func NewPlayer(
	name string,
	tt sim.TimeTeller,
	es sim.EventScheduler,
	dc *datacenter.Datacenter,
) *Player {
	p := &Player{
		TimeTeller:     tt,
		EventScheduler: es,
		dc:             dc,
	}

	p.ComponentBase = sim.NewComponentBase(name)
	p.SetLogger(logrus.StandardLogger())

	return p
}

// SetLogger replaces the logger of the player.
func (p *Player) SetLogger(l logrus.FieldLogger) {
	p.log = l.WithField("player", p.Name())
}

// UseDelayMatrix switches the player to matrix mode. The node i of the matrix
// must be the host i of the datacenter.
func (p *Player) UseDelayMatrix(m *delaymatrix.DelayMatrix) {
	p.matrix = m
}

// Play checks the trace against the datacenter and schedules the injection
// of every flow. The player becomes the packet receiver of every host.
func (p *Player) Play(trace Trace) error {
	for i, flow := range trace {
		if err := p.checkFlow(flow); err != nil {
			return fmt.Errorf("flow %d: %w", i, err)
		}
	}

	p.dc.SetReceiver(p)

	offset := len(p.trace)
	p.trace = append(p.trace, trace...)

	for i, flow := range trace {
		p.Schedule(injectEvent{
			time:    flow.Time,
			handler: p,
			flow:    offset + i,
		})
	}

	return nil
}

func (p *Player) checkFlow(flow Flow) error {
	for _, vm := range []int{flow.Src, flow.Dst} {
		if vm < 0 || vm >= len(p.dc.VMs) {
			return fmt.Errorf("%w: %d, the datacenter has %d VMs",
				ErrUnknownVM, vm, len(p.dc.VMs))
		}
	}

	return nil
}

// Stats returns the statistics collected so far.
func (p *Player) Stats() Stats {
	return p.stats
}

// Handle processes the events of the player.
func (p *Player) Handle(e sim.Event) error {
	switch e := e.(type) {
	case injectEvent:
		return p.inject(e)
	case matrixDeliveryEvent:
		p.deliverByMatrix(e)
	default:
		return fmt.Errorf("%w: player %s cannot handle event type %s",
			switching.ErrIllegalState, p.Name(), reflect.TypeOf(e))
	}

	return nil
}

func (p *Player) inject(e injectEvent) error {
	flow := p.trace[e.flow]
	src := p.dc.VMs[flow.Src]
	dst := p.dc.VMs[flow.Dst]

	vmPkt, err := dcnetsim.NewVMPacket(src, dst, flow.Bytes,
		p.newTask(e.flow, flow.Src), p.newTask(e.flow, flow.Dst))
	if err != nil {
		return err
	}

	now := p.CurrentTime()
	vmPkt.SendTime = now

	pkt := dcnetsim.NewHostPacket(src.Host(), vmPkt)
	pkt.SendTime = now

	p.stats.Injected++
	p.stats.Bytes += flow.Bytes

	p.InvokeHook(sim.HookCtx{
		Domain: p,
		Pos:    HookPosInject,
		Item:   pkt,
	})

	if p.matrix != nil {
		p.sendByMatrix(pkt, dst)
		return nil
	}

	edge := pkt.Source.EdgeSwitch()
	if edge == dcnetsim.NullSwitch {
		p.log.WithField("packet", pkt.ID()).
			Warnf("VM %d is not on a connected host", flow.Src)
		return nil
	}

	p.Schedule(switching.NewUpEvent(now, edge, pkt))

	return nil
}

func (p *Player) newTask(flow, vm int) *Task {
	t := &Task{id: p.nextTaskID, flow: flow, vm: vm}
	p.nextTaskID++

	return t
}

func (p *Player) sendByMatrix(pkt *dcnetsim.HostPacket, dst *datacenter.VM) {
	dstHost, ok := dst.Host().(*datacenter.Host)
	if !ok || pkt.Source == dcnetsim.NullHost {
		p.log.WithField("packet", pkt.ID()).
			Warn("packet endpoints are not placed on hosts")
		return
	}

	delay, err := p.matrix.Delay(pkt.Source.ID(), dstHost.ID())
	if err != nil {
		p.log.WithField("packet", pkt.ID()).WithError(err).
			Warn("cannot look up path delay")
		return
	}

	if delay >= delaymatrix.NoLink {
		p.log.WithField("packet", pkt.ID()).
			Warnf("host %d cannot reach host %d",
				pkt.Source.ID(), dstHost.ID())
		return
	}

	p.Schedule(matrixDeliveryEvent{
		time:    p.CurrentTime() + sim.VTimeInSec(delay),
		handler: p,
		host:    dstHost,
		packet:  pkt,
	})
}

func (p *Player) deliverByMatrix(e matrixDeliveryEvent) {
	e.packet.Destination = e.host
	e.packet.RecvTime = p.CurrentTime()
	e.host.AddReceivedNetworkPacket(e.packet)
}

// ReceivePacket records a packet that reached its host.
func (p *Player) ReceivePacket(
	host *datacenter.Host,
	pkt *dcnetsim.HostPacket,
) {
	latency := pkt.RecvTime - pkt.SendTime

	p.stats.Delivered++
	p.stats.TotalLatency += latency
	if latency > p.stats.MaxLatency {
		p.stats.MaxLatency = latency
	}

	p.log.WithFields(logrus.Fields{
		"packet":  pkt.ID(),
		"host":    host.ID(),
		"latency": float64(latency),
	}).Debug("packet delivered")

	p.InvokeHook(sim.HookCtx{
		Domain: p,
		Pos:    HookPosDelivery,
		Item:   pkt,
	})
}
