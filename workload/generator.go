package workload

import (
	"fmt"
	"math"

	"github.com/iti/rngstream"
	"gitlab.com/akita/akita/v3/sim"
)

// A Generator creates random traffic. Flows arrive as a Poisson process and
// pick a source and a different destination VM uniformly.
type Generator struct {
	cfg RandomConfig
	rng *rngstream.RngStream
}

// NewGenerator creates a generator that draws from its own random stream.
func NewGenerator(cfg RandomConfig) *Generator {
	return &Generator{
		cfg: cfg,
		rng: rngstream.New(cfg.Stream),
	}
}

// Generate creates a trace among numVMs VMs.
func (g *Generator) Generate(numVMs int) (Trace, error) {
	if err := g.cfg.validate(); err != nil {
		return nil, err
	}

	if numVMs < 2 && g.cfg.Flows > 0 {
		return nil, fmt.Errorf("%w: random traffic needs at least 2 VMs, got %d",
			ErrInvalidConfig, numVMs)
	}

	trace := make(Trace, 0, g.cfg.Flows)
	now := 0.0

	for i := 0; i < g.cfg.Flows; i++ {
		now += g.interarrival()

		src := g.rng.RandInt(0, numVMs-1)
		dst := g.rng.RandInt(0, numVMs-2)
		if dst >= src {
			dst++
		}

		trace = append(trace, Flow{
			Time:  sim.VTimeInSec(now),
			Src:   src,
			Dst:   dst,
			Bytes: g.size(),
		})
	}

	return trace, nil
}

func (g *Generator) interarrival() float64 {
	return -g.cfg.Interval * math.Log(1-g.rng.RandU01())
}

func (g *Generator) size() uint64 {
	span := g.cfg.MaxBytes - g.cfg.MinBytes
	if span == 0 {
		return g.cfg.MinBytes
	}

	offset := uint64(g.rng.RandU01() * float64(span+1))
	if offset > span {
		offset = span
	}

	return g.cfg.MinBytes + offset
}
