package dcnetsim

// A VM is a virtual machine that sends and receives packets. Only the part of
// the compute model that the network needs is exposed here.
type VM interface {
	ID() int

	// Host returns the physical host that currently runs the VM.
	Host() Host
}

// A Host is a physical machine connected to an edge switch.
type Host interface {
	ID() int

	// EdgeSwitch returns the switch the host is connected to, or NullSwitch.
	EdgeSwitch() Switch
	SetEdgeSwitch(sw Switch)

	// AddReceivedNetworkPacket hands a packet that reached the host to the
	// compute model.
	AddReceivedNetworkPacket(pkt *HostPacket)
}

// A Task is the unit of work that sends or receives a VMPacket.
type Task interface {
	ID() int
}

// A Datacenter owns switches and hosts.
type Datacenter interface {
	Name() string
}

// NullHost is the host of a packet whose destination is not yet resolved.
var NullHost Host = nullHost{}

type nullHost struct{}

func (nullHost) ID() int                              { return -1 }
func (nullHost) EdgeSwitch() Switch                   { return NullSwitch }
func (nullHost) SetEdgeSwitch(Switch)                 {}
func (nullHost) AddReceivedNetworkPacket(*HostPacket) {}
