package dcnetsim

import (
	"errors"
	"fmt"

	"gitlab.com/akita/akita/v3/sim"
)

// ErrNegativeValue is returned when a switch parameter is set to a negative
// value.
var ErrNegativeValue = errors.New("value must not be negative")

// Level is the position of a switch in the root/aggregate/edge hierarchy.
type Level int

// Level constants. LevelNone is only reported by NullSwitch.
const (
	LevelNone Level = iota - 1
	LevelRoot
	LevelAggregate
	LevelEdge
)

func (l Level) String() string {
	switch l {
	case LevelRoot:
		return "root"
	case LevelAggregate:
		return "aggregate"
	case LevelEdge:
		return "edge"
	default:
		return "none"
	}
}

// Below returns the level that is allowed directly below l.
func (l Level) Below() Level {
	switch l {
	case LevelRoot:
		return LevelAggregate
	case LevelAggregate:
		return LevelEdge
	default:
		return LevelNone
	}
}

// A Switch is what the rest of the simulation can see of a network switch.
// Bandwidths are in megabits per second.
type Switch interface {
	sim.Handler

	Name() string
	Level() Level
	Datacenter() Datacenter

	UplinkBandwidth() float64
	SetUplinkBandwidth(bw float64) error
	DownlinkBandwidth() float64
	SetDownlinkBandwidth(bw float64) error
	Ports() int
	SetPorts(ports int) error
	SwitchingDelay() sim.VTimeInSec
	SetSwitchingDelay(delay sim.VTimeInSec) error

	UplinkSwitches() []Switch
	DownlinkSwitches() []Switch

	// UplinkTransferDelay returns the time needed to send the packet to an
	// uplink switch while simultaneous packets share the link equally.
	UplinkTransferDelay(pkt *HostPacket, simultaneous int) sim.VTimeInSec

	// DownlinkTransferDelay is the downlink counterpart of
	// UplinkTransferDelay.
	DownlinkTransferDelay(pkt *HostPacket, simultaneous int) sim.VTimeInSec
}

// CheckNonNegative returns ErrNegativeValue, annotated with the parameter
// name, if v is negative.
func CheckNonNegative(name string, v float64) error {
	if v < 0 {
		return fmt.Errorf("%s %v: %w", name, v, ErrNegativeValue)
	}

	return nil
}

// NullSwitch stands in wherever a switch reference must not be nil, for
// example the edge switch of a host that is not connected yet.
var NullSwitch Switch = nullSwitch{}

type nullSwitch struct{}

func (nullSwitch) Handle(sim.Event) error                 { return nil }
func (nullSwitch) Name() string                           { return "NullSwitch" }
func (nullSwitch) Level() Level                           { return LevelNone }
func (nullSwitch) Datacenter() Datacenter                 { return nil }
func (nullSwitch) UplinkBandwidth() float64               { return 0 }
func (nullSwitch) SetUplinkBandwidth(float64) error       { return nil }
func (nullSwitch) DownlinkBandwidth() float64             { return 0 }
func (nullSwitch) SetDownlinkBandwidth(float64) error     { return nil }
func (nullSwitch) Ports() int                             { return 0 }
func (nullSwitch) SetPorts(int) error                     { return nil }
func (nullSwitch) SwitchingDelay() sim.VTimeInSec         { return 0 }
func (nullSwitch) SetSwitchingDelay(sim.VTimeInSec) error { return nil }
func (nullSwitch) UplinkSwitches() []Switch               { return nil }
func (nullSwitch) DownlinkSwitches() []Switch             { return nil }

func (nullSwitch) UplinkTransferDelay(*HostPacket, int) sim.VTimeInSec {
	return 0
}

func (nullSwitch) DownlinkTransferDelay(*HostPacket, int) sim.VTimeInSec {
	return 0
}
