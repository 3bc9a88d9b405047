package switching

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gitlab.com/akita/akita/v3/sim"
)

var _ = Describe("TransferDelay", func() {
	It("should convert bytes to decimal megabits", func() {
		Expect(BytesToMegabits(1000000)).To(BeNumerically("~", 8, 1e-12))
	})

	It("should use the full bandwidth for zero or one packet", func() {
		Expect(TransferDelay(1000000, 100, 0)).
			To(Equal(TransferDelay(1000000, 100, 1)))
		Expect(float64(TransferDelay(1000000, 100, 1))).
			To(BeNumerically("~", 0.08, 1e-12))
	})

	It("should share the bandwidth among simultaneous packets", func() {
		single := TransferDelay(1000000, 100, 1)
		shared := TransferDelay(1000000, 100, 4)

		Expect(float64(shared)).To(BeNumerically("~", 0.32, 1e-12))
		Expect(float64(shared)).To(BeNumerically("~", 4*float64(single), 1e-12))
	})

	It("should not decrease when more packets share the link", func() {
		prev := TransferDelay(1500, 800, 0)
		for k := 1; k < 64; k++ {
			d := TransferDelay(1500, 800, k)
			Expect(d).To(BeNumerically(">=", prev))
			prev = d
		}
	})

	It("should take no time for an empty packet", func() {
		Expect(TransferDelay(0, 0, 3)).To(Equal(sim.VTimeInSec(0)))
	})

	It("should never finish on a link without bandwidth", func() {
		Expect(math.IsInf(float64(TransferDelay(10, 0, 1)), 1)).To(BeTrue())
	})
})
