// Package dcnetsim provides the value types and collaborator contracts of a
// simulator that models packet transfers inside a datacenter network.
package dcnetsim

import (
	"errors"

	"gitlab.com/akita/akita/v3/sim"
)

// ErrNilTask is returned when a packet is created without a sender or a
// receiver task.
var ErrNilTask = errors.New("packet requires both a sender and a receiver task")

// A VMPacket represents the transfer of data from one VM to another. It is
// produced by a sending task and consumed by a receiving task.
type VMPacket struct {
	ID string

	Source      VM
	Destination VM
	Size        uint64

	Sender   Task
	Receiver Task

	SendTime sim.VTimeInSec
	RecvTime sim.VTimeInSec
}

// NewVMPacket creates a new VMPacket carrying size bytes.
func NewVMPacket(
	src, dst VM,
	size uint64,
	sender, receiver Task,
) (*VMPacket, error) {
	if sender == nil || receiver == nil {
		return nil, ErrNilTask
	}

	p := &VMPacket{
		ID:          sim.GetIDGenerator().Generate(),
		Source:      src,
		Destination: dst,
		Size:        size,
		Sender:      sender,
		Receiver:    receiver,
	}

	return p, nil
}

// A HostPacket wraps a VMPacket while it is relayed between physical hosts.
// The destination starts as NullHost and is resolved by the edge switch that
// serves the destination VM.
type HostPacket struct {
	VMPacket *VMPacket

	Source      Host
	Destination Host

	SendTime sim.VTimeInSec
	RecvTime sim.VTimeInSec
}

// NewHostPacket wraps a VMPacket that leaves the given host.
func NewHostPacket(src Host, pkt *VMPacket) *HostPacket {
	return &HostPacket{
		VMPacket:    pkt,
		Source:      src,
		Destination: NullHost,
	}
}

// ID returns the ID of the wrapped VMPacket.
func (p *HostPacket) ID() string {
	return p.VMPacket.ID
}

// Size returns the number of bytes carried by the packet.
func (p *HostPacket) Size() uint64 {
	return p.VMPacket.Size
}

// DestinationVM returns the VM the packet is ultimately addressed to.
func (p *HostPacket) DestinationVM() VM {
	return p.VMPacket.Destination
}

// HasDestination tells if a switch has already resolved the destination host.
func (p *HostPacket) HasDestination() bool {
	return p.Destination != nil && p.Destination != NullHost
}
