package switching

import (
	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/dcnetsim"
)

type fakeNeighborhood struct {
	uplinks   []dcnetsim.Switch
	downlinks []dcnetsim.Switch
	hosts     []dcnetsim.Host
}

func (n fakeNeighborhood) UplinkSwitches() []dcnetsim.Switch   { return n.uplinks }
func (n fakeNeighborhood) DownlinkSwitches() []dcnetsim.Switch { return n.downlinks }
func (n fakeNeighborhood) Hosts() []dcnetsim.Host              { return n.hosts }

func packetTo(vm dcnetsim.VM) *dcnetsim.HostPacket {
	return dcnetsim.NewHostPacket(nil, &dcnetsim.VMPacket{
		ID:          "pkt",
		Destination: vm,
		Size:        1000,
	})
}

var _ = Describe("Routers", func() {
	var (
		mockCtrl       *gomock.Controller
		root           *Switch
		agg0, agg1     *Switch
		edge0, edge1   *Switch
		edge2          *Switch
		host0, host1   *MockHost
		host2          *MockHost
		vm0, vm1, vm2  *MockVM
		pktTo0, pktTo1 *dcnetsim.HostPacket
		pktTo2         *dcnetsim.HostPacket
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())

		root = NewRootSwitch("Root", nil, nil, nil)
		agg0 = NewAggregateSwitch("Agg0", nil, nil, nil)
		agg1 = NewAggregateSwitch("Agg1", nil, nil, nil)
		edge0 = NewEdgeSwitch("Edge0", nil, nil, nil)
		edge1 = NewEdgeSwitch("Edge1", nil, nil, nil)
		edge2 = NewEdgeSwitch("Edge2", nil, nil, nil)

		Expect(Connect(root, agg0)).To(Succeed())
		Expect(Connect(root, agg1)).To(Succeed())
		Expect(Connect(agg0, edge0)).To(Succeed())
		Expect(Connect(agg0, edge1)).To(Succeed())
		Expect(Connect(agg1, edge2)).To(Succeed())

		host0 = NewMockHost(mockCtrl)
		host1 = NewMockHost(mockCtrl)
		host2 = NewMockHost(mockCtrl)
		host0.EXPECT().EdgeSwitch().Return(edge0).AnyTimes()
		host1.EXPECT().EdgeSwitch().Return(edge1).AnyTimes()
		host2.EXPECT().EdgeSwitch().Return(edge2).AnyTimes()

		vm0 = NewMockVM(mockCtrl)
		vm1 = NewMockVM(mockCtrl)
		vm2 = NewMockVM(mockCtrl)
		vm0.EXPECT().Host().Return(host0).AnyTimes()
		vm1.EXPECT().Host().Return(host1).AnyTimes()
		vm2.EXPECT().Host().Return(host2).AnyTimes()

		pktTo0 = packetTo(vm0)
		pktTo1 = packetTo(vm1)
		pktTo2 = packetTo(vm2)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("EdgeRouter", func() {
		var n fakeNeighborhood

		BeforeEach(func() {
			n = fakeNeighborhood{
				uplinks: []dcnetsim.Switch{agg0},
				hosts:   []dcnetsim.Host{host0},
			}
		})

		It("should keep traffic between local hosts local", func() {
			route := EdgeRouter{}.RouteUp(n, pktTo0)

			Expect(route.Queue).To(Equal(HostQueue))
			Expect(route.Host).To(BeIdenticalTo(host0))
		})

		It("should send traffic for remote hosts up", func() {
			route := EdgeRouter{}.RouteUp(n, pktTo1)

			Expect(route.Queue).To(Equal(UplinkQueue))
			Expect(route.Switch).To(BeIdenticalTo(agg0))
		})

		It("should not route up without an uplink", func() {
			n.uplinks = nil

			route := EdgeRouter{}.RouteUp(n, pktTo1)

			Expect(route.Queue).To(Equal(NoQueue))
			Expect(route.Reason).ToNot(BeEmpty())
		})

		It("should deliver packets from above to the destination host", func() {
			route := EdgeRouter{}.RouteDown(n, pktTo0)

			Expect(route.Queue).To(Equal(HostQueue))
			Expect(route.Host).To(BeIdenticalTo(host0))
		})

		It("should not route packets whose VM has no host", func() {
			homeless := NewMockVM(mockCtrl)
			homeless.EXPECT().Host().Return(nil).AnyTimes()

			route := EdgeRouter{}.RouteDown(n, packetTo(homeless))

			Expect(route.Queue).To(Equal(NoQueue))
		})
	})

	Context("AggregateRouter", func() {
		It("should not go to the root between its own edge switches", func() {
			route := AggregateRouter{}.RouteUp(agg0, pktTo1)

			Expect(route.Queue).To(Equal(DownlinkQueue))
			Expect(route.Switch).To(BeIdenticalTo(edge1))
		})

		It("should send traffic for other edge switches to the root", func() {
			route := AggregateRouter{}.RouteUp(agg0, pktTo2)

			Expect(route.Queue).To(Equal(UplinkQueue))
			Expect(route.Switch).To(BeIdenticalTo(root))
		})

		It("should send packets from the root to the serving edge switch", func() {
			route := AggregateRouter{}.RouteDown(agg1, pktTo2)

			Expect(route.Queue).To(Equal(DownlinkQueue))
			Expect(route.Switch).To(BeIdenticalTo(edge2))
		})
	})

	Context("RootRouter", func() {
		It("should find the aggregate switch of the destination", func() {
			route := RootRouter{}.RouteUp(root, pktTo2)

			Expect(route.Queue).To(Equal(DownlinkQueue))
			Expect(route.Switch).To(BeIdenticalTo(agg1))
		})

		It("should fail when no aggregate switch reaches the edge switch", func() {
			orphanEdge := NewEdgeSwitch("Orphan", nil, nil, nil)
			orphanHost := NewMockHost(mockCtrl)
			orphanHost.EXPECT().EdgeSwitch().Return(orphanEdge).AnyTimes()
			orphanVM := NewMockVM(mockCtrl)
			orphanVM.EXPECT().Host().Return(orphanHost).AnyTimes()

			route := RootRouter{}.RouteUp(root, packetTo(orphanVM))

			Expect(route.Queue).To(Equal(NoQueue))
			Expect(route.Reason).To(ContainSubstring("Orphan"))
		})

		It("should not accept packets from above", func() {
			route := RootRouter{}.RouteDown(root, pktTo0)

			Expect(route.Queue).To(Equal(NoQueue))
		})
	})

	It("should pick the router of each level", func() {
		for _, level := range []dcnetsim.Level{
			dcnetsim.LevelRoot,
			dcnetsim.LevelAggregate,
			dcnetsim.LevelEdge,
		} {
			router, err := RouterFor(level)
			Expect(err).ToNot(HaveOccurred())
			Expect(router.Level()).To(Equal(level))
		}

		_, err := RouterFor(dcnetsim.LevelNone)
		Expect(err).To(HaveOccurred())
	})
})
