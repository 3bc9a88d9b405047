package delaymatrix

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// NoLink is the delay between two nodes that are not connected. It is a
// finite sentinel so that sums saturate at NoLink instead of wrapping.
const NoLink = math.MaxFloat64

var (
	// ErrIndexOutOfRange is returned when a node index does not exist.
	ErrIndexOutOfRange = errors.New("node index out of range")

	// ErrUnreachable is returned when no path connects two nodes.
	ErrUnreachable = errors.New("node unreachable")
)

// A DelayMatrix holds the minimum delay between every ordered pair of nodes
// of a graph and the predecessors needed to rebuild the shortest paths. It
// does not change after it is built.
type DelayMatrix struct {
	numNodes int
	delays   *mat.Dense
	preds    [][]int
}

// New builds the delay matrix of a graph.
func New(g Graph) (*DelayMatrix, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	dist, preds := FloydWarshall(directDelays(g))

	m := &DelayMatrix{
		numNodes: g.NumNodes,
		delays:   mat.NewDense(g.NumNodes, g.NumNodes, nil),
		preds:    preds,
	}

	for i, row := range dist {
		m.delays.SetRow(i, row)
	}

	return m, nil
}

// directDelays returns the matrix of direct link delays, NoLink where two
// nodes are not adjacent. Parallel links keep the smallest delay.
func directDelays(g Graph) [][]float64 {
	d := newSquare(g.NumNodes, NoLink)
	for i := range d {
		d[i][i] = 0
	}

	for _, l := range g.Links {
		if l.Src == l.Dst {
			continue
		}

		d[l.Src][l.Dst] = math.Min(d[l.Src][l.Dst], l.Delay)
		if !g.Directed {
			d[l.Dst][l.Src] = math.Min(d[l.Dst][l.Src], l.Delay)
		}
	}

	return d
}

// FloydWarshall computes all-pairs shortest delays from a matrix of direct
// delays, where NoLink marks absent links. It returns the distances and the
// predecessor of j on the shortest path from i in preds[i][j], -1 if there
// is none. The input is not modified.
func FloydWarshall(direct [][]float64) (dist [][]float64, preds [][]int) {
	n := len(direct)

	prevDist := newSquare(n, NoLink)
	prevPreds := newSquarePreds(n)

	for i := 0; i < n; i++ {
		copy(prevDist[i], direct[i])

		for j := 0; j < n; j++ {
			if i != j && direct[i][j] < NoLink {
				prevPreds[i][j] = i
			}
		}
	}

	nextDist := newSquare(n, NoLink)
	nextPreds := newSquarePreds(n)

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				nextDist[i][j] = prevDist[i][j]
				nextPreds[i][j] = prevPreds[i][j]

				if i == j {
					continue
				}

				through := addDelays(prevDist[i][k], prevDist[k][j])
				if through < prevDist[i][j] {
					nextDist[i][j] = through
					nextPreds[i][j] = prevPreds[k][j]
				}
			}
		}

		prevDist, nextDist = nextDist, prevDist
		prevPreds, nextPreds = nextPreds, prevPreds
	}

	return prevDist, prevPreds
}

// addDelays adds two delays, saturating at NoLink.
func addDelays(a, b float64) float64 {
	if a >= NoLink || b >= NoLink {
		return NoLink
	}

	return math.Min(a+b, NoLink)
}

func newSquare(n int, fill float64) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			m[i][j] = fill
		}
	}

	return m
}

func newSquarePreds(n int) [][]int {
	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
		for j := range m[i] {
			m[i][j] = -1
		}
	}

	return m
}

// NumNodes returns the number of nodes of the graph.
func (m *DelayMatrix) NumNodes() int {
	return m.numNodes
}

func (m *DelayMatrix) checkIndex(idx int) error {
	if idx < 0 || idx >= m.numNodes {
		return fmt.Errorf("%w: %d not in [0, %d)",
			ErrIndexOutOfRange, idx, m.numNodes)
	}

	return nil
}

// Delay returns the minimum delay from src to dst. It returns NoLink if dst
// cannot be reached from src, and 0 when src equals dst.
func (m *DelayMatrix) Delay(src, dst int) (float64, error) {
	if err := m.checkIndex(src); err != nil {
		return 0, err
	}

	if err := m.checkIndex(dst); err != nil {
		return 0, err
	}

	return m.delays.At(src, dst), nil
}

// Reachable tells if a path leads from src to dst.
func (m *DelayMatrix) Reachable(src, dst int) (bool, error) {
	d, err := m.Delay(src, dst)
	if err != nil {
		return false, err
	}

	return d < NoLink, nil
}

// Path returns the nodes of the shortest path from src to dst, both
// included.
func (m *DelayMatrix) Path(src, dst int) ([]int, error) {
	reachable, err := m.Reachable(src, dst)
	if err != nil {
		return nil, err
	}

	if !reachable {
		return nil, fmt.Errorf("%w: %d from %d", ErrUnreachable, dst, src)
	}

	path := []int{dst}
	for node := dst; node != src; {
		node = m.preds[src][node]
		if node < 0 || len(path) > m.numNodes {
			return nil, fmt.Errorf("%w: broken predecessor chain %d -> %d",
				ErrUnreachable, src, dst)
		}

		path = append(path, node)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// Delays returns a copy of the whole delay matrix.
func (m *DelayMatrix) Delays() *mat.Dense {
	return mat.DenseCopyOf(m.delays)
}

func (m *DelayMatrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m.delays, mat.Squeeze()))
}
