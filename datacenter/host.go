package datacenter

import (
	"github.com/sarchlab/dcnetsim"
	"golang.org/x/exp/slices"
)

// A PacketReceiver is notified when a packet reaches a host.
type PacketReceiver interface {
	ReceivePacket(host *Host, pkt *dcnetsim.HostPacket)
}

// A Host is a physical machine that runs VMs and is connected to one edge
// switch.
type Host struct {
	id       int
	edge     dcnetsim.Switch
	vms      []*VM
	received []*dcnetsim.HostPacket
	receiver PacketReceiver
}

// NewHost creates a host that is not connected to any switch.
func NewHost(id int) *Host {
	return &Host{
		id:   id,
		edge: dcnetsim.NullSwitch,
	}
}

// ID returns the ID of the host.
func (h *Host) ID() int {
	return h.id
}

// EdgeSwitch returns the edge switch of the host, NullSwitch if the host is
// not connected.
func (h *Host) EdgeSwitch() dcnetsim.Switch {
	return h.edge
}

// SetEdgeSwitch links the host to its edge switch.
func (h *Host) SetEdgeSwitch(sw dcnetsim.Switch) {
	if sw == nil {
		sw = dcnetsim.NullSwitch
	}

	h.edge = sw
}

// SetReceiver sets who is notified of received packets.
func (h *Host) SetReceiver(r PacketReceiver) {
	h.receiver = r
}

// AddReceivedNetworkPacket records a packet that reached the host.
func (h *Host) AddReceivedNetworkPacket(pkt *dcnetsim.HostPacket) {
	pkt.VMPacket.RecvTime = pkt.RecvTime
	h.received = append(h.received, pkt)

	if h.receiver != nil {
		h.receiver.ReceivePacket(h, pkt)
	}
}

// ReceivedPackets returns the packets received so far.
func (h *Host) ReceivedPackets() []*dcnetsim.HostPacket {
	return slices.Clone(h.received)
}

// VMs returns the VMs running on the host.
func (h *Host) VMs() []*VM {
	return slices.Clone(h.vms)
}

// AddVM places a VM on the host, removing it from its previous host.
func (h *Host) AddVM(vm *VM) {
	if vm.host != nil {
		vm.host.RemoveVM(vm)
	}

	h.vms = append(h.vms, vm)
	vm.host = h
}

// RemoveVM removes a VM from the host.
func (h *Host) RemoveVM(vm *VM) {
	idx := slices.Index(h.vms, vm)
	if idx < 0 {
		return
	}

	h.vms = slices.Delete(h.vms, idx, idx+1)
	vm.host = nil
}

// A VM is a virtual machine placed on a Host.
type VM struct {
	id   int
	host *Host
}

// NewVM creates a VM that is not placed on any host.
func NewVM(id int) *VM {
	return &VM{id: id}
}

// ID returns the ID of the VM.
func (vm *VM) ID() int {
	return vm.id
}

// Host returns the host of the VM, NullHost if it is not placed.
func (vm *VM) Host() dcnetsim.Host {
	if vm.host == nil {
		return dcnetsim.NullHost
	}

	return vm.host
}
