package switching

import (
	"math"

	"gitlab.com/akita/akita/v3/sim"
)

const (
	bitsPerByte    = 8
	bitsPerMegabit = 1e6
)

// BytesToMegabits converts a byte count to (decimal) megabits.
func BytesToMegabits(bytes uint64) float64 {
	return float64(bytes) * bitsPerByte / bitsPerMegabit
}

// TransferDelay returns the time needed to push size bytes through a link of
// the given bandwidth (megabits per second) when simultaneous packets share
// the link equally. Zero or one simultaneous packets get the full bandwidth.
// A link without bandwidth never completes a non-empty transfer.
func TransferDelay(
	size uint64,
	bandwidth float64,
	simultaneous int,
) sim.VTimeInSec {
	if size == 0 {
		return 0
	}

	effective := bandwidth
	if simultaneous > 1 {
		effective = bandwidth / float64(simultaneous)
	}

	if effective <= 0 {
		return sim.VTimeInSec(math.Inf(1))
	}

	return sim.VTimeInSec(BytesToMegabits(size) / effective)
}
