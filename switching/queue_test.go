package switching

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/dcnetsim"
)

var _ = Describe("packetQueues", func() {
	var (
		queues     *packetQueues[string]
		pkt1, pkt2 *dcnetsim.HostPacket
	)

	BeforeEach(func() {
		queues = newPacketQueues[string]()
		pkt1 = &dcnetsim.HostPacket{VMPacket: &dcnetsim.VMPacket{ID: "1"}}
		pkt2 = &dcnetsim.HostPacket{VMPacket: &dcnetsim.VMPacket{ID: "2"}}
	})

	It("should create an empty list on first access", func() {
		list := queues.get("a")

		Expect(list).ToNot(BeNil())
		Expect(list).To(BeEmpty())

		batches := queues.take()
		Expect(batches).To(HaveLen(1))
		Expect(batches[0].key).To(Equal("a"))
		Expect(batches[0].packets).To(BeEmpty())
	})

	It("should keep keys in insertion order", func() {
		queues.add("b", pkt1)
		queues.add("a", pkt2)
		queues.add("b", pkt2)

		Expect(queues.get("b")).To(Equal([]*dcnetsim.HostPacket{pkt1, pkt2}))
		Expect(queues.numPackets()).To(Equal(3))

		batches := queues.take()
		Expect(batches).To(HaveLen(2))
		Expect(batches[0].key).To(Equal("b"))
		Expect(batches[0].packets).To(Equal([]*dcnetsim.HostPacket{pkt1, pkt2}))
		Expect(batches[1].key).To(Equal("a"))
		Expect(batches[1].packets).To(Equal([]*dcnetsim.HostPacket{pkt2}))
	})

	It("should empty the queues when taken", func() {
		queues.add("b", pkt1)
		queues.add("a", pkt2)

		batches := queues.take()

		Expect(batches).To(HaveLen(2))
		Expect(batches[0].key).To(Equal("b"))
		Expect(batches[0].packets).To(ConsistOf(pkt1))
		Expect(batches[1].key).To(Equal("a"))
		Expect(queues.numPackets()).To(Equal(0))
		Expect(queues.take()).To(BeEmpty())
	})
})
