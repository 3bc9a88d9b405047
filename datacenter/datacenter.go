// Package datacenter assembles hosts, VMs and root/aggregate/edge switches
// into a three-tier datacenter network.
package datacenter

import (
	"fmt"
	"math"
	"reflect"

	"github.com/sarchlab/dcnetsim"
	"github.com/sarchlab/dcnetsim/delaymatrix"
	"github.com/sarchlab/dcnetsim/switching"
	"github.com/sirupsen/logrus"
	"gitlab.com/akita/akita/v3/sim"
	"golang.org/x/exp/slices"
)

// A Datacenter owns a tree of switches with hosts at the leaves.
type Datacenter struct {
	name string

	Root       *switching.Switch
	Aggregates []*switching.Switch
	Edges      []*switching.Switch
	Hosts      []*Host
	VMs        []*VM
}

// Build creates the datacenter described by the config.
func Build(
	cfg Config,
	es sim.EventScheduler,
	tt sim.TimeTeller,
) (*Datacenter, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Datacenter{name: cfg.Name}

	d.Root = switching.NewRootSwitch(cfg.Name+".Root", es, tt, d)
	if err := cfg.Root.apply(d.Root); err != nil {
		return nil, err
	}

	for a := 0; a < cfg.Topology.Aggregates; a++ {
		agg, err := d.addAggregate(cfg, a, es, tt)
		if err != nil {
			return nil, err
		}

		for e := 0; e < cfg.Topology.EdgesPerAggregate; e++ {
			err := d.addEdge(cfg, agg, a*cfg.Topology.EdgesPerAggregate+e, es, tt)
			if err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}

func (d *Datacenter) addAggregate(
	cfg Config,
	index int,
	es sim.EventScheduler,
	tt sim.TimeTeller,
) (*switching.Switch, error) {
	name := fmt.Sprintf("%s.Aggregate[%d]", cfg.Name, index)
	agg := switching.NewAggregateSwitch(name, es, tt, d)

	if err := cfg.Aggregate.apply(agg); err != nil {
		return nil, err
	}

	if err := switching.Connect(d.Root, agg); err != nil {
		return nil, err
	}

	d.Aggregates = append(d.Aggregates, agg)

	return agg, nil
}

func (d *Datacenter) addEdge(
	cfg Config,
	agg *switching.Switch,
	index int,
	es sim.EventScheduler,
	tt sim.TimeTeller,
) error {
	name := fmt.Sprintf("%s.Edge[%d]", cfg.Name, index)
	edge := switching.NewEdgeSwitch(name, es, tt, d)

	if err := cfg.Edge.apply(edge); err != nil {
		return err
	}

	if err := switching.Connect(agg, edge); err != nil {
		return err
	}

	d.Edges = append(d.Edges, edge)

	for h := 0; h < cfg.Topology.HostsPerEdge; h++ {
		host := NewHost(len(d.Hosts))
		if err := edge.ConnectHost(host); err != nil {
			return err
		}

		d.Hosts = append(d.Hosts, host)

		for v := 0; v < cfg.Topology.VMsPerHost; v++ {
			vm := NewVM(len(d.VMs))
			host.AddVM(vm)
			d.VMs = append(d.VMs, vm)
		}
	}

	return nil
}

// Name returns the name of the datacenter.
func (d *Datacenter) Name() string {
	return d.name
}

// Switches returns every switch, root first and edge switches last.
func (d *Datacenter) Switches() []*switching.Switch {
	switches := []*switching.Switch{d.Root}
	switches = append(switches, d.Aggregates...)
	switches = append(switches, d.Edges...)

	return switches
}

// SetLogger sets the logger of every switch.
func (d *Datacenter) SetLogger(l logrus.FieldLogger) {
	for _, s := range d.Switches() {
		s.SetLogger(l)
	}
}

// SetReceiver sets the packet receiver of every host.
func (d *Datacenter) SetReceiver(r PacketReceiver) {
	for _, h := range d.Hosts {
		h.SetReceiver(r)
	}
}

// Start schedules the startup of every switch. Switches register with the
// directory if it is not nil.
func (d *Datacenter) Start(
	es sim.EventScheduler,
	now sim.VTimeInSec,
	directory *Directory,
) {
	for _, s := range d.Switches() {
		if directory != nil {
			s.SetDirectory(directory)
		}

		es.Schedule(switching.NewStartupEvent(now, s))
	}
}

// DelayGraph describes the datacenter as a directed topology graph. Hosts
// are the nodes 0 to len(Hosts)-1, followed by the edge, aggregate and root
// switches. A link costs what a lone packet of packetSize bytes pays to cross
// it in the switch network: the transfer over the link and then the
// switching delay of the switch it enters. Links without bandwidth are left
// out.
func (d *Datacenter) DelayGraph(packetSize uint64) delaymatrix.Graph {
	pkt := dcnetsim.NewHostPacket(nil, &dcnetsim.VMPacket{Size: packetSize})

	nodes := make(map[*switching.Switch]int)
	next := len(d.Hosts)
	ordered := append(slices.Clone(d.Edges), d.Aggregates...)
	for _, s := range append(ordered, d.Root) {
		nodes[s] = next
		next++
	}

	g := delaymatrix.Graph{NumNodes: next, Directed: true}
	link := func(src, dst int, delay sim.VTimeInSec) {
		if math.IsInf(float64(delay), 1) {
			return
		}

		g.Links = append(g.Links, delaymatrix.Link{
			Src:   src,
			Dst:   dst,
			Delay: float64(delay),
		})
	}

	for i, h := range d.Hosts {
		edge, ok := h.EdgeSwitch().(*switching.Switch)
		if !ok {
			continue
		}

		link(i, nodes[edge], edge.SwitchingDelay())
		link(nodes[edge], i, edge.DownlinkTransferDelay(pkt, 1))
	}

	for _, upper := range append([]*switching.Switch{d.Root}, d.Aggregates...) {
		for _, lower := range upper.DownlinkSwitches() {
			lowerSwitch := lower.(*switching.Switch)

			link(nodes[lowerSwitch], nodes[upper],
				lowerSwitch.UplinkTransferDelay(pkt, 1)+upper.SwitchingDelay())
			link(nodes[upper], nodes[lowerSwitch],
				upper.DownlinkTransferDelay(pkt, 1)+lowerSwitch.SwitchingDelay())
		}
	}

	return g
}

// A Directory keeps the datacenter listing and answers the registration
// requests that switches send at startup.
type Directory struct {
	sim.EventScheduler

	datacenters []dcnetsim.Datacenter
	registered  []*switching.Switch
}

// NewDirectory creates a directory that lists the given datacenters.
func NewDirectory(
	es sim.EventScheduler,
	datacenters ...dcnetsim.Datacenter,
) *Directory {
	return &Directory{
		EventScheduler: es,
		datacenters:    datacenters,
	}
}

// Registered returns the switches that registered so far.
func (d *Directory) Registered() []*switching.Switch {
	return slices.Clone(d.registered)
}

// Handle answers registration requests.
func (d *Directory) Handle(e sim.Event) error {
	switch e := e.(type) {
	case switching.RegistrationRequestEvent:
		d.registered = append(d.registered, e.Requester())

		listing := make([]dcnetsim.Datacenter, len(d.datacenters))
		copy(listing, d.datacenters)

		d.Schedule(switching.NewRegistrationResponseEvent(
			e.Time(), e.Requester(), listing))
	default:
		return fmt.Errorf("%w: directory cannot handle event type %s",
			switching.ErrIllegalState, reflect.TypeOf(e))
	}

	return nil
}
