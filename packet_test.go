package dcnetsim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type task int

func (t task) ID() int { return int(t) }

var _ = Describe("Packets", func() {
	It("should require both tasks", func() {
		_, err := NewVMPacket(nil, nil, 10, task(1), nil)
		Expect(err).To(MatchError(ErrNilTask))

		_, err = NewVMPacket(nil, nil, 10, nil, task(1))
		Expect(err).To(MatchError(ErrNilTask))
	})

	It("should give every packet its own ID", func() {
		a, err := NewVMPacket(nil, nil, 10, task(1), task(2))
		Expect(err).ToNot(HaveOccurred())
		b, err := NewVMPacket(nil, nil, 10, task(1), task(2))
		Expect(err).ToNot(HaveOccurred())

		Expect(a.ID).ToNot(BeEmpty())
		Expect(a.ID).ToNot(Equal(b.ID))
	})

	It("should take size and ID from the wrapped packet", func() {
		vmPkt, err := NewVMPacket(nil, nil, 1500, task(1), task(2))
		Expect(err).ToNot(HaveOccurred())

		pkt := NewHostPacket(NullHost, vmPkt)

		Expect(pkt.Size()).To(Equal(uint64(1500)))
		Expect(pkt.ID()).To(Equal(vmPkt.ID))
		Expect(pkt.Destination).To(Equal(NullHost))
		Expect(pkt.HasDestination()).To(BeFalse())
		Expect(pkt.DestinationVM()).To(BeNil())
	})
})

var _ = Describe("Switch contract", func() {
	It("should order the levels from the root down", func() {
		Expect(LevelRoot.Below()).To(Equal(LevelAggregate))
		Expect(LevelAggregate.Below()).To(Equal(LevelEdge))
		Expect(LevelEdge.Below()).To(Equal(LevelNone))
		Expect(LevelAggregate.String()).To(Equal("aggregate"))
		Expect(LevelNone.String()).To(Equal("none"))
	})

	It("should reject negative values", func() {
		Expect(CheckNonNegative("ports", 0)).To(Succeed())

		err := CheckNonNegative("ports", -1)
		Expect(err).To(MatchError(ErrNegativeValue))
		Expect(err.Error()).To(ContainSubstring("ports"))
	})

	It("should make the null objects safe to use", func() {
		Expect(NullSwitch.Level()).To(Equal(LevelNone))
		Expect(NullSwitch.Handle(nil)).To(Succeed())
		Expect(NullSwitch.UplinkTransferDelay(nil, 1)).To(BeZero())
		Expect(NullSwitch.UplinkSwitches()).To(BeEmpty())
		Expect(NullHost.EdgeSwitch()).To(Equal(NullSwitch))
		Expect(NullHost.ID()).To(Equal(-1))
	})
})
