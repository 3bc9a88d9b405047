package workload

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Generator", func() {
	It("should generate flows between distinct VMs", func() {
		cfg := DefaultConfig().Random
		cfg.Stream = "generator-test"
		cfg.Flows = 500

		trace, err := NewGenerator(cfg).Generate(4)

		Expect(err).ToNot(HaveOccurred())
		Expect(trace).To(HaveLen(500))

		for i, flow := range trace {
			Expect(flow.Src).To(BeNumerically(">=", 0))
			Expect(flow.Src).To(BeNumerically("<", 4))
			Expect(flow.Dst).To(BeNumerically(">=", 0))
			Expect(flow.Dst).To(BeNumerically("<", 4))
			Expect(flow.Dst).ToNot(Equal(flow.Src))
			Expect(flow.Bytes).To(BeNumerically(">=", cfg.MinBytes))
			Expect(flow.Bytes).To(BeNumerically("<=", cfg.MaxBytes))

			if i > 0 {
				Expect(flow.Time).To(BeNumerically(">=", trace[i-1].Time))
			}
		}
	})

	It("should use a fixed size when the range is empty", func() {
		cfg := DefaultConfig().Random
		cfg.Flows = 10
		cfg.MinBytes = 128
		cfg.MaxBytes = 128

		trace, err := NewGenerator(cfg).Generate(2)

		Expect(err).ToNot(HaveOccurred())
		for _, flow := range trace {
			Expect(flow.Bytes).To(Equal(uint64(128)))
		}
	})

	It("should need two VMs", func() {
		cfg := DefaultConfig().Random

		_, err := NewGenerator(cfg).Generate(1)

		Expect(err).To(MatchError(ErrInvalidConfig))
	})
})
