package switching

import (
	"github.com/sarchlab/dcnetsim"
	"gitlab.com/akita/akita/v3/sim"
)

// A StartupEvent activates a switch for the first time.
type StartupEvent struct {
	time    sim.VTimeInSec
	handler *Switch
}

// NewStartupEvent creates a StartupEvent for the switch.
func NewStartupEvent(t sim.VTimeInSec, sw *Switch) StartupEvent {
	return StartupEvent{time: t, handler: sw}
}

// Time returns the time of the event.
func (e StartupEvent) Time() sim.VTimeInSec {
	return e.time
}

// Handler returns the handler of the event.
func (e StartupEvent) Handler() sim.Handler {
	return e.handler
}

// IsSecondary always returns false.
func (e StartupEvent) IsSecondary() bool {
	return false
}

// A RegistrationRequestEvent asks a topology directory for the datacenter
// listing on behalf of a switch.
type RegistrationRequestEvent struct {
	time      sim.VTimeInSec
	handler   sim.Handler
	requester *Switch
}

// Time returns the time of the event.
func (e RegistrationRequestEvent) Time() sim.VTimeInSec {
	return e.time
}

// Handler returns the handler of the event.
func (e RegistrationRequestEvent) Handler() sim.Handler {
	return e.handler
}

// IsSecondary always returns false.
func (e RegistrationRequestEvent) IsSecondary() bool {
	return false
}

// Requester returns the switch that sent the request.
func (e RegistrationRequestEvent) Requester() *Switch {
	return e.requester
}

// A RegistrationResponseEvent carries the datacenter listing back to a switch.
type RegistrationResponseEvent struct {
	time        sim.VTimeInSec
	handler     *Switch
	datacenters []dcnetsim.Datacenter
}

// NewRegistrationResponseEvent creates the answer to a registration request.
func NewRegistrationResponseEvent(
	t sim.VTimeInSec,
	sw *Switch,
	datacenters []dcnetsim.Datacenter,
) RegistrationResponseEvent {
	return RegistrationResponseEvent{
		time:        t,
		handler:     sw,
		datacenters: datacenters,
	}
}

// Time returns the time of the event.
func (e RegistrationResponseEvent) Time() sim.VTimeInSec {
	return e.time
}

// Handler returns the handler of the event.
func (e RegistrationResponseEvent) Handler() sim.Handler {
	return e.handler
}

// IsSecondary always returns false.
func (e RegistrationResponseEvent) IsSecondary() bool {
	return false
}

// An UpEvent delivers a packet that arrives from below, either from a
// downlink switch or from a directly connected host.
type UpEvent struct {
	time    sim.VTimeInSec
	handler sim.Handler
	packet  *dcnetsim.HostPacket
}

// NewUpEvent creates an UpEvent that delivers pkt to the handler.
func NewUpEvent(
	t sim.VTimeInSec,
	handler sim.Handler,
	pkt *dcnetsim.HostPacket,
) UpEvent {
	return UpEvent{time: t, handler: handler, packet: pkt}
}

// Time returns the time of the event.
func (e UpEvent) Time() sim.VTimeInSec {
	return e.time
}

// Handler returns the handler of the event.
func (e UpEvent) Handler() sim.Handler {
	return e.handler
}

// IsSecondary always returns false.
func (e UpEvent) IsSecondary() bool {
	return false
}

// Packet returns the packet carried by the event.
func (e UpEvent) Packet() *dcnetsim.HostPacket {
	return e.packet
}

// A DownEvent delivers a packet that arrives from an uplink switch.
type DownEvent struct {
	time    sim.VTimeInSec
	handler sim.Handler
	packet  *dcnetsim.HostPacket
}

// NewDownEvent creates a DownEvent that delivers pkt to the handler.
func NewDownEvent(
	t sim.VTimeInSec,
	handler sim.Handler,
	pkt *dcnetsim.HostPacket,
) DownEvent {
	return DownEvent{time: t, handler: handler, packet: pkt}
}

// Time returns the time of the event.
func (e DownEvent) Time() sim.VTimeInSec {
	return e.time
}

// Handler returns the handler of the event.
func (e DownEvent) Handler() sim.Handler {
	return e.handler
}

// IsSecondary always returns false.
func (e DownEvent) IsSecondary() bool {
	return false
}

// Packet returns the packet carried by the event.
func (e DownEvent) Packet() *dcnetsim.HostPacket {
	return e.packet
}

// A forwardEvent fires when the switching delay after the latest arrival has
// passed. A cancelled forwardEvent is discarded when delivered.
type forwardEvent struct {
	time      sim.VTimeInSec
	handler   *Switch
	cancelled bool
}

func (e *forwardEvent) Time() sim.VTimeInSec {
	return e.time
}

func (e *forwardEvent) Handler() sim.Handler {
	return e.handler
}

func (e *forwardEvent) IsSecondary() bool {
	return false
}

// A hostDeliveryEvent hands a packet to a host connected to the switch.
type hostDeliveryEvent struct {
	time    sim.VTimeInSec
	handler *Switch
	host    dcnetsim.Host
	packet  *dcnetsim.HostPacket
}

func (e hostDeliveryEvent) Time() sim.VTimeInSec {
	return e.time
}

func (e hostDeliveryEvent) Handler() sim.Handler {
	return e.handler
}

func (e hostDeliveryEvent) IsSecondary() bool {
	return false
}
