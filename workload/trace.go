package workload

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gitlab.com/akita/akita/v3/sim"
	"golang.org/x/exp/slices"
)

// A Flow is one VM-to-VM transfer of a traffic trace.
type Flow struct {
	Time  sim.VTimeInSec
	Src   int
	Dst   int
	Bytes uint64
}

// A Trace is a list of flows ordered by time.
type Trace []Flow

// A TraceLoader loads a traffic trace from a CSV file. The first line is a
// header and every other line reads "time,src_vm,dst_vm,bytes".
type TraceLoader struct {
	Path string
}

// Load reads the trace file.
func (l *TraceLoader) Load() (Trace, error) {
	absPath, err := filepath.Abs(l.Path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadTrace(f)
}

// ReadTrace reads a CSV traffic trace. Flows are sorted by time, keeping the
// file order of flows that start together.
func ReadTrace(r io.Reader) (Trace, error) {
	reader := csv.NewReader(r)
	reader.Comma = ','
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = 4

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	trace := make(Trace, 0, len(records))

	for i, record := range records {
		if i == 0 {
			continue
		}

		flow, err := parseFlow(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		trace = append(trace, flow)
	}

	slices.SortStableFunc(trace, func(a, b Flow) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		default:
			return 0
		}
	})

	return trace, nil
}

func parseFlow(record []string) (Flow, error) {
	t, err := strconv.ParseFloat(record[0], 64)
	if err != nil {
		return Flow{}, err
	}

	if t < 0 {
		return Flow{}, fmt.Errorf("%w: negative time %g", ErrInvalidConfig, t)
	}

	src, err := strconv.Atoi(record[1])
	if err != nil {
		return Flow{}, err
	}

	dst, err := strconv.Atoi(record[2])
	if err != nil {
		return Flow{}, err
	}

	bytes, err := strconv.ParseUint(record[3], 10, 64)
	if err != nil {
		return Flow{}, err
	}

	return Flow{
		Time:  sim.VTimeInSec(t),
		Src:   src,
		Dst:   dst,
		Bytes: bytes,
	}, nil
}
